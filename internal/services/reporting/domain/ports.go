// Package domain defines the reporting channel contract
package domain

import (
	"time"

	"classwatch/internal/core/violation"
)

// ReporterPort is the fire-and-forget delivery surface consumed by the
// monitor loop. Calls never block on delivery and never return errors:
// a failed delivery is logged and dropped, and one attempt's failure
// cannot affect another's
type ReporterPort interface {
	ReportViolation(ev violation.Event)
	ReportAttendance(subject string, at time.Time)
	ReportEnvironment(temp, humidity float64)
}
