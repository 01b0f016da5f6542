package proposal

import "errors"

var (
	// ErrEmptyDistribution is returned when a conditioned parent-set query
	// has no satisfying candidates. During reversal proposals this signals
	// that the enumeration stage produced an incomplete table relative to
	// the move's acyclicity constraints; drivers must treat the move as
	// infeasible rather than retry.
	ErrEmptyDistribution = errors.New("no parent set satisfies the condition")

	// ErrUnknownParentSet is returned by lookups for a parent set absent
	// from a distribution's table, which indicates a fan-in or enumeration
	// mismatch upstream.
	ErrUnknownParentSet = errors.New("parent set not in distribution table")

	// ErrNoMoves is returned when every configured move has an empty
	// neighborhood in the current state. The driver decides whether this
	// is fatal or a no-op step.
	ErrNoMoves = errors.New("no moves available from the current state")

	// ErrFanInViolation is returned by [Proposal.Sample] when a node in
	// the input state has more parents than the configured fan-in. This is
	// a caller misconfiguration and always fatal.
	ErrFanInViolation = errors.New("state violates the configured fan-in")
)
