package monitor

import "github.com/vietddude/sentinel/internal/core/domain"

// Evaluate derives a health verdict from one snapshot. Local node health is
// the primary concern: a local failure wins over a remote one. A local node
// ahead of the remote reference counts as zero lag. Lag exactly equal to the
// threshold is still healthy; only strictly greater lag triggers an alert.
func Evaluate(snap domain.Snapshot, lagThreshold uint64) domain.Verdict {
	if !snap.Local.OK() {
		return domain.Verdict{Kind: domain.VerdictLocalUnreachable}
	}
	if !snap.Remote.OK() {
		return domain.Verdict{Kind: domain.VerdictRemoteUnreachable}
	}

	if snap.Remote.Height <= snap.Local.Height {
		return domain.Verdict{Kind: domain.VerdictHealthy}
	}

	lag := snap.Remote.Height - snap.Local.Height
	if lag > lagThreshold {
		return domain.Verdict{Kind: domain.VerdictLagging, BlocksBehind: lag}
	}
	return domain.Verdict{Kind: domain.VerdictHealthy}
}
