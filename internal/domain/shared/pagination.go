package shared

const (
	// DefaultPageLimit is applied when the client does not send a limit.
	DefaultPageLimit = 100
	// MaxPageLimit is the hard cap; larger limits are clamped, not rejected.
	MaxPageLimit = 1000
)

// Page holds normalized pagination parameters.
type Page struct {
	Limit  int
	Offset int
}

// NewPage normalizes raw limit/offset values. A non-positive limit falls
// back to the default, a limit above the cap clamps to the cap, and a
// negative offset resets to zero.
func NewPage(limit, offset int) Page {
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	return Page{Limit: limit, Offset: offset}
}
