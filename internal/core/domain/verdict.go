package domain

// VerdictKind classifies node health for one polling cycle.
type VerdictKind string

const (
	VerdictHealthy           VerdictKind = "healthy"
	VerdictLagging           VerdictKind = "lagging"
	VerdictLocalUnreachable  VerdictKind = "local_unreachable"
	VerdictRemoteUnreachable VerdictKind = "remote_unreachable"
)

// Verdict is the per-cycle health classification. BlocksBehind is only
// meaningful when Kind is VerdictLagging.
type Verdict struct {
	Kind         VerdictKind
	BlocksBehind uint64
}

// Healthy reports whether the verdict carries no alert condition.
func (v Verdict) Healthy() bool {
	return v.Kind == VerdictHealthy
}
