package services

import (
	"sync"

	"github.com/fenn-labs/ipo-monitor/models"
	"github.com/sirupsen/logrus"
)

// defaultRunLogSize bounds the in-memory run history. One entry per
// daily run keeps roughly a month of operational context.
const defaultRunLogSize = 30

// RunLogService is a bounded, mutex-guarded in-memory store of recent
// pipeline run reports. It backs the status API only; nothing is
// persisted across restarts.
type RunLogService struct {
	maxSize int
	mutex   sync.RWMutex
	reports []models.RunReport
}

// NewRunLogService creates a run log with the default capacity.
func NewRunLogService() *RunLogService {
	return &RunLogService{maxSize: defaultRunLogSize}
}

// Append records a completed (or failed) run, evicting the oldest
// entry once the log is full.
func (s *RunLogService) Append(report models.RunReport) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.reports = append(s.reports, report)
	if len(s.reports) > s.maxSize {
		s.reports = s.reports[len(s.reports)-s.maxSize:]
	}

	logrus.WithFields(logrus.Fields{
		"run_id":    report.RunID,
		"date":      report.Date,
		"succeeded": report.Succeeded(),
		"log_size":  len(s.reports),
	}).Debug("Recorded run report")
}

// Latest returns the most recent run report, if any.
func (s *RunLogService) Latest() (models.RunReport, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if len(s.reports) == 0 {
		return models.RunReport{}, false
	}
	return s.reports[len(s.reports)-1], true
}

// Recent returns up to n most recent run reports, newest first.
// Non-positive n yields an empty slice.
func (s *RunLogService) Recent(n int) []models.RunReport {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if n < 0 {
		n = 0
	}
	if n > len(s.reports) {
		n = len(s.reports)
	}

	out := make([]models.RunReport, 0, n)
	for i := len(s.reports) - 1; i >= len(s.reports)-n; i-- {
		out = append(out, s.reports[i])
	}
	return out
}

// Len returns the number of stored reports.
func (s *RunLogService) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.reports)
}
