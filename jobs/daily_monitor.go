package jobs

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fenn-labs/ipo-monitor/models"
	"github.com/fenn-labs/ipo-monitor/services"
	"github.com/fenn-labs/ipo-monitor/shared"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// fetchTimeout bounds the single upstream calendar read per run.
const fetchTimeout = 30 * time.Second

// CalendarSource provides the raw IPO records for one target date.
type CalendarSource interface {
	FetchSameDayIPOs(ctx context.Context, date string) ([]models.IPORecord, error)
}

// Notifier delivers a rendered report to the configured recipient.
type Notifier interface {
	Send(subject, textBody, htmlBody string) error
}

// DailyMonitorJob is the pipeline driver: resolve date, fetch the
// calendar, analyze, render, notify, then print the console summary.
// It is synchronous and linear; the first stage failure aborts the run
// and surfaces the error to the trigger. The job holds no cross-run
// state - dedupe belongs to the scheduler.
type DailyMonitorJob struct {
	Source   CalendarSource
	Analyzer *services.AnalyzerService
	Reports  *services.ReportService
	Notifier Notifier
	RunLog   *services.RunLogService

	location       *time.Location
	console        io.Writer
	serviceMetrics *shared.ServiceMetrics
}

// NewDailyMonitorJob wires the pipeline stages together.
func NewDailyMonitorJob(source CalendarSource, analyzer *services.AnalyzerService, reports *services.ReportService, notifier Notifier, runLog *services.RunLogService, location *time.Location) *DailyMonitorJob {
	return &DailyMonitorJob{
		Source:         source,
		Analyzer:       analyzer,
		Reports:        reports,
		Notifier:       notifier,
		RunLog:         runLog,
		location:       location,
		console:        os.Stdout,
		serviceMetrics: shared.NewServiceMetrics("Daily_Monitor_Job"),
	}
}

// SetConsole redirects the operational console output (used in tests).
func (j *DailyMonitorJob) SetConsole(w io.Writer) {
	j.console = w
}

// Run executes one pipeline run for today in the report timezone.
func (j *DailyMonitorJob) Run() (models.RunReport, error) {
	return j.RunForDate(shared.TodayInReportZone(j.location))
}

// RunForDate executes one pipeline run for an explicit target date.
func (j *DailyMonitorJob) RunForDate(date string) (models.RunReport, error) {
	start := time.Now()
	report := models.RunReport{
		RunID:     uuid.New(),
		Date:      date,
		StartedAt: start,
	}

	logger := logrus.WithFields(logrus.Fields{
		"run_id": report.RunID,
		"date":   date,
	})
	logger.Info("Starting daily IPO monitor run")

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	records, err := j.Source.FetchSameDayIPOs(ctx, date)
	if err != nil {
		return j.fail(report, start, fmt.Errorf("fetching IPO calendar: %w", err))
	}

	qualified, usListings, stats := j.Analyzer.Analyze(records)
	report.Stats = stats

	textBody := j.Reports.BuildTextReport(qualified, date, stats)
	htmlBody, err := j.Reports.BuildHTMLReport(usListings, date, stats)
	if err != nil {
		return j.fail(report, start, fmt.Errorf("rendering report: %w", err))
	}

	subject := j.Reports.Subject(date, len(qualified))
	report.Subject = subject
	report.TextBody = textBody
	for _, q := range qualified {
		symbol := q.Record.Symbol
		if symbol == "" {
			symbol = "UNKNOWN"
		}
		report.QualifiedSymbols = append(report.QualifiedSymbols, symbol)
	}

	if err := j.Notifier.Send(subject, textBody, htmlBody); err != nil {
		return j.fail(report, start, fmt.Errorf("sending report: %w", err))
	}

	// Operational console summary, after the notifier has accepted the
	// message: the subject line, then one symbol per qualified record.
	fmt.Fprintln(j.console, subject)
	for _, symbol := range report.QualifiedSymbols {
		fmt.Fprintln(j.console, symbol)
	}

	report.FinishedAt = time.Now()
	j.RunLog.Append(report)
	j.serviceMetrics.RecordRequest(true, time.Since(start))
	j.serviceMetrics.LogSummary()

	logger.WithFields(logrus.Fields{
		"total_seen":        stats.TotalSeen,
		"us_exchange_count": stats.USExchangeCount,
		"qualified_count":   stats.QualifiedCount,
		"duration":          time.Since(start),
	}).Info("Daily IPO monitor run completed")

	return report, nil
}

// fail finalizes a run report for an aborted run. No partial report is
// ever sent; the error propagates to the trigger.
func (j *DailyMonitorJob) fail(report models.RunReport, start time.Time, err error) (models.RunReport, error) {
	report.Error = err.Error()
	report.FinishedAt = time.Now()
	j.RunLog.Append(report)
	j.serviceMetrics.RecordRequest(false, time.Since(start))

	logrus.WithFields(logrus.Fields{
		"run_id": report.RunID,
		"date":   report.Date,
	}).Errorf("Daily IPO monitor run failed: %v", err)

	return report, err
}

// GetServiceMetrics returns the current job metrics
func (j *DailyMonitorJob) GetServiceMetrics() *shared.ServiceMetrics {
	return j.serviceMetrics
}
