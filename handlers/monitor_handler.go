package handlers

import (
	"time"

	"github.com/fenn-labs/ipo-monitor/jobs"
	"github.com/fenn-labs/ipo-monitor/services"
	"github.com/fenn-labs/ipo-monitor/shared"
	"github.com/gofiber/fiber/v2"
)

// defaultHistoryLimit caps run history responses when no limit is given.
const defaultHistoryLimit = 10

// MonitorHandler exposes operational visibility over the daily monitor:
// scheduler state, run metrics, and the recent run reports.
type MonitorHandler struct {
	scheduler *jobs.DailyScheduler
	job       *jobs.DailyMonitorJob
	runLog    *services.RunLogService
	location  *time.Location
}

// NewMonitorHandler creates the handler with its injected services.
func NewMonitorHandler(scheduler *jobs.DailyScheduler, job *jobs.DailyMonitorJob, runLog *services.RunLogService, location *time.Location) *MonitorHandler {
	return &MonitorHandler{
		scheduler: scheduler,
		job:       job,
		runLog:    runLog,
		location:  location,
	}
}

// GetStatus returns scheduler state and pipeline run metrics.
func (h *MonitorHandler) GetStatus(c *fiber.Ctx) error {
	metrics := h.job.GetServiceMetrics().GetSnapshot()

	var nextRun interface{}
	if t := h.scheduler.NextRun(); !t.IsZero() {
		nextRun = t
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"last_run_date": h.scheduler.LastRunDate(),
			"next_run":      nextRun,
			"timezone":      h.location.String(),
			"runs_recorded": h.runLog.Len(),
			"success_rate":  h.job.GetServiceMetrics().GetSuccessRate(),
			"metrics":       metrics,
		},
	})
}

// GetLatestReport returns the most recent run report from the run log.
func (h *MonitorHandler) GetLatestReport(c *fiber.Ctx) error {
	report, ok := h.runLog.Latest()
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "no runs recorded yet",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    report,
	})
}

// GetReportHistory returns recent run reports, newest first. The
// optional limit query parameter bounds the response.
func (h *MonitorHandler) GetReportHistory(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", defaultHistoryLimit)
	reports := h.runLog.Recent(limit)

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"count":   len(reports),
			"reports": reports,
		},
	})
}

// ResetMetrics zeroes the job metrics counters.
func (h *MonitorHandler) ResetMetrics(c *fiber.Ctx) error {
	h.job.GetServiceMetrics().Reset()

	return c.JSON(fiber.Map{
		"success": true,
		"message": "metrics reset",
	})
}

// TriggerRun runs the pipeline for today unless a run is in flight or
// today's run already completed.
func (h *MonitorHandler) TriggerRun(c *fiber.Ctx) error {
	date := shared.TodayInReportZone(h.location)

	report, skipped, err := h.scheduler.TryRun(date)
	if skipped {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false,
			"error":   "run already completed or in progress for " + date,
		})
	}
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
			"data":    report,
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    report,
	})
}
