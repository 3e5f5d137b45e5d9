package jobs

import (
	"sync"
	"time"

	"github.com/fenn-labs/ipo-monitor/models"
	"github.com/fenn-labs/ipo-monitor/shared"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// dailySpec fires at 09:00 in the scheduler's location.
const dailySpec = "0 9 * * *"

// DailyScheduler triggers the monitor job once per calendar day in the
// report timezone. It owns the dedupe marker the core pipeline must not
// carry: at most one concurrent execution, and no re-run for a date
// once a run has completed successfully for it. Failed runs leave the
// marker unset so a manual trigger can retry the same day.
type DailyScheduler struct {
	job      *DailyMonitorJob
	location *time.Location
	cron     *cron.Cron

	mutex       sync.Mutex
	running     bool
	lastRunDate string
}

// NewDailyScheduler creates a scheduler bound to the report timezone.
func NewDailyScheduler(job *DailyMonitorJob, location *time.Location) *DailyScheduler {
	return &DailyScheduler{
		job:      job,
		location: location,
	}
}

// Start registers the daily cron entry and begins scheduling.
func (s *DailyScheduler) Start() error {
	s.cron = cron.New(cron.WithLocation(s.location))
	if _, err := s.cron.AddFunc(dailySpec, s.triggerScheduled); err != nil {
		return err
	}
	s.cron.Start()

	logrus.WithFields(logrus.Fields{
		"spec":     dailySpec,
		"timezone": s.location.String(),
	}).Info("Daily IPO monitor scheduler started")
	return nil
}

// Stop halts scheduling. Already-running invocations finish.
func (s *DailyScheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *DailyScheduler) triggerScheduled() {
	date := shared.TodayInReportZone(s.location)
	if _, skipped, err := s.TryRun(date); err != nil {
		logrus.Errorf("Scheduled IPO monitor run for %s failed: %v", date, err)
	} else if skipped {
		logrus.WithField("date", date).Info("Scheduled run skipped, already completed for date")
	}
}

// TryRun executes the pipeline for the given date unless a run is in
// flight or a run already completed for that date. It reports whether
// the run was skipped.
func (s *DailyScheduler) TryRun(date string) (models.RunReport, bool, error) {
	s.mutex.Lock()
	if s.running || s.lastRunDate == date {
		s.mutex.Unlock()
		return models.RunReport{}, true, nil
	}
	s.running = true
	s.mutex.Unlock()

	report, err := s.job.RunForDate(date)

	s.mutex.Lock()
	s.running = false
	if err == nil {
		s.lastRunDate = date
	}
	s.mutex.Unlock()

	return report, false, err
}

// LastRunDate returns the dedupe marker: the most recent date with a
// completed run, or empty if none this process lifetime.
func (s *DailyScheduler) LastRunDate() string {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.lastRunDate
}

// NextRun returns the next scheduled fire time, zero if not started.
func (s *DailyScheduler) NextRun() time.Time {
	if s.cron == nil {
		return time.Time{}
	}

	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}
