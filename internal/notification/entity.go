// AngelaMos | 2026
// entity.go

package notification

// Send targets. A user may hold several device tokens (one per
// device); the newest is treated as current. "token" is accepted as
// an alias of "single" for callers that name the target after the
// field they fill in.
const (
	TargetSingle = "single"
	TargetToken  = "token"
	TargetTopic  = "topic"
	TargetAll    = "all"
)
