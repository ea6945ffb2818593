// Package health exposes the sentinel's current state over HTTP.
package health

import (
	"time"

	"github.com/vietddude/sentinel/internal/core/domain"
)

// Status represents the overall health state of the monitored node pair.
type Status string

const (
	StatusStarting Status = "starting"
	StatusHealthy  Status = "healthy"
	StatusDegraded Status = "degraded"
	StatusCritical Status = "critical"
)

// Report is the full state snapshot served on /health/detailed.
type Report struct {
	Status         Status             `json:"status"`
	Verdict        domain.VerdictKind `json:"verdict,omitempty"`
	LocalHeight    *uint64            `json:"local_height,omitempty"`
	RemoteHeight   *uint64            `json:"remote_height,omitempty"`
	BlockLag       uint64             `json:"block_lag"`
	LocalError     string             `json:"local_error,omitempty"`
	RemoteError    string             `json:"remote_error,omitempty"`
	InAlert        bool               `json:"in_alert"`
	AlertKind      domain.VerdictKind `json:"alert_kind,omitempty"`
	AlertSince     *time.Time         `json:"alert_since,omitempty"`
	LastNotifiedAt *time.Time         `json:"last_notified_at,omitempty"`
	ObservedAt     time.Time          `json:"observed_at"`
	Cycles         uint64             `json:"cycles"`
}

// statusFor maps a verdict to an aggregate status. A missing reference node
// degrades the report; a lagging or unreachable local node is critical.
func statusFor(kind domain.VerdictKind) Status {
	switch kind {
	case domain.VerdictHealthy:
		return StatusHealthy
	case domain.VerdictRemoteUnreachable:
		return StatusDegraded
	default:
		return StatusCritical
	}
}
