package shared

import (
	"time"

	"github.com/sirupsen/logrus"
)

// reportZoneName is the named timezone the monitor reports in.
const reportZoneName = "Asia/Dubai"

// reportZoneOffsetSeconds is the fixed UTC+4 offset used when the zone
// database is unavailable (e.g. stripped-down containers).
const reportZoneOffsetSeconds = 4 * 60 * 60

// ReportLocation resolves the report timezone. Resolution strategy:
// prefer the named zone database entry, fall back to a fixed UTC+4
// offset. Both resolve to the same offset; Dubai does not observe DST.
func ReportLocation() *time.Location {
	loc, err := time.LoadLocation(reportZoneName)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"zone":  reportZoneName,
			"error": err,
		}).Warn("Zone database lookup failed, using fixed UTC+4 offset")
		return time.FixedZone("GST", reportZoneOffsetSeconds)
	}
	return loc
}

// TodayInReportZone returns the current date in the report timezone
// formatted as YYYY-MM-DD. This is the pipeline's target date and the
// scheduler's dedupe key.
func TodayInReportZone(loc *time.Location) string {
	return time.Now().In(loc).Format("2006-01-02")
}
