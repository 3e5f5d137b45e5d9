package jobs

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fenn-labs/ipo-monitor/models"
	"github.com/fenn-labs/ipo-monitor/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCalendarSource struct {
	records []models.IPORecord
	err     error
	dates   []string
}

func (f *fakeCalendarSource) FetchSameDayIPOs(_ context.Context, date string) ([]models.IPORecord, error) {
	f.dates = append(f.dates, date)
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

type fakeNotifier struct {
	err      error
	subjects []string
	texts    []string
	htmls    []string
}

func (f *fakeNotifier) Send(subject, textBody, htmlBody string) error {
	if f.err != nil {
		return f.err
	}
	f.subjects = append(f.subjects, subject)
	f.texts = append(f.texts, textBody)
	f.htmls = append(f.htmls, htmlBody)
	return nil
}

func newTestJob(source CalendarSource, notifier Notifier) (*DailyMonitorJob, *services.RunLogService, *bytes.Buffer) {
	utility := services.NewUtilityService()
	runLog := services.NewRunLogService()
	job := NewDailyMonitorJob(
		source,
		services.NewAnalyzerService(utility),
		services.NewReportService(utility),
		notifier,
		runLog,
		time.FixedZone("GST", 4*60*60),
	)

	console := &bytes.Buffer{}
	job.SetConsole(console)
	return job, runLog, console
}

func TestRunForDateHappyPath(t *testing.T) {
	source := &fakeCalendarSource{records: []models.IPORecord{
		{Symbol: "BIGX", Name: "Big Exchange Inc", Exchange: "NASDAQ", Price: "20-22", NumberOfShares: "20,000,000"},
		{Symbol: "TINY", Name: "Tiny Co", Exchange: "NYSE", Price: "10", NumberOfShares: "1,000,000"},
		{Symbol: "LOND", Name: "London Listing", Exchange: "LSE", Price: "50", NumberOfShares: "100,000,000"},
	}}
	notifier := &fakeNotifier{}
	job, runLog, console := newTestJob(source, notifier)

	report, err := job.RunForDate("2024-05-01")
	require.NoError(t, err)

	assert.Equal(t, []string{"2024-05-01"}, source.dates)
	assert.Equal(t, "IPO Monitor 2024-05-01 - 1 qualifying IPO(s)", report.Subject)
	assert.Equal(t, []string{"BIGX"}, report.QualifiedSymbols)
	assert.Equal(t, 3, report.Stats.TotalSeen)
	assert.Equal(t, 2, report.Stats.USExchangeCount)
	assert.True(t, report.Succeeded())

	// Notifier got the rendered bodies.
	require.Len(t, notifier.subjects, 1)
	assert.Equal(t, report.Subject, notifier.subjects[0])
	assert.Contains(t, notifier.texts[0], "- BIGX | Big Exchange Inc | USD 440,000,000")
	assert.Contains(t, notifier.htmls[0], "TINY")

	// Console: subject line then one symbol per qualified record.
	lines := strings.Split(strings.TrimSpace(console.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, report.Subject, lines[0])
	assert.Equal(t, "BIGX", lines[1])

	// Run is recorded in the run log.
	latest, ok := runLog.Latest()
	require.True(t, ok)
	assert.Equal(t, report.RunID, latest.RunID)
}

func TestRunForDateEmptyCalendar(t *testing.T) {
	source := &fakeCalendarSource{}
	notifier := &fakeNotifier{}
	job, _, console := newTestJob(source, notifier)

	report, err := job.RunForDate("2024-05-01")
	require.NoError(t, err)

	assert.Equal(t, "IPO Monitor 2024-05-01 - 0 qualifying IPO(s)", report.Subject)
	assert.Empty(t, report.QualifiedSymbols)
	require.Len(t, notifier.texts, 1)
	assert.Contains(t, notifier.texts[0], "No U.S. same-day IPOs")

	lines := strings.Split(strings.TrimSpace(console.String()), "\n")
	assert.Equal(t, []string{report.Subject}, lines)
}

func TestRunForDateFetchFailureAbortsBeforeNotify(t *testing.T) {
	source := &fakeCalendarSource{err: errors.New("upstream down")}
	notifier := &fakeNotifier{}
	job, runLog, console := newTestJob(source, notifier)

	report, err := job.RunForDate("2024-05-01")
	require.Error(t, err)

	// No partial report is ever sent and nothing hits the console.
	assert.Empty(t, notifier.subjects)
	assert.Empty(t, console.String())
	assert.False(t, report.Succeeded())

	latest, ok := runLog.Latest()
	require.True(t, ok)
	assert.Contains(t, latest.Error, "upstream down")
}

func TestRunForDateNotifierFailurePropagates(t *testing.T) {
	source := &fakeCalendarSource{}
	notifier := &fakeNotifier{err: errors.New("smtp auth failed")}
	job, runLog, console := newTestJob(source, notifier)

	_, err := job.RunForDate("2024-05-01")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "smtp auth failed")

	assert.Empty(t, console.String())
	latest, ok := runLog.Latest()
	require.True(t, ok)
	assert.False(t, latest.Succeeded())
}

func TestRunForDatePlaceholderSymbolOnConsole(t *testing.T) {
	source := &fakeCalendarSource{records: []models.IPORecord{
		{Name: "Nameless Giant", Exchange: "NYSE", Price: "30", NumberOfShares: "10,000,000"},
	}}
	notifier := &fakeNotifier{}
	job, _, console := newTestJob(source, notifier)

	report, err := job.RunForDate("2024-05-01")
	require.NoError(t, err)

	assert.Equal(t, []string{"UNKNOWN"}, report.QualifiedSymbols)
	assert.Contains(t, console.String(), "UNKNOWN")
}
