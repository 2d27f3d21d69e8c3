package types

// Unresolved-fragment reason constants.
const (
	// ReasonNoMatch means neither an exact nor an approximate match
	// at or above the threshold was found for the fragment.
	ReasonNoMatch = "no_match"

	// ReasonCapacity means the fragment was dropped because the result
	// already held the maximum number of resolved cards.
	ReasonCapacity = "capacity"
)

// UnresolvedFragment is a piece of user text that did not contribute a card
// to the resolution, together with the reason it was left out.
type UnresolvedFragment struct {
	Fragment string `json:"fragment"`
	Reason   string `json:"reason"` // "no_match" or "capacity"
}

// Resolution is the outcome of matching one user message against the catalog.
// An empty Resolved list is a valid outcome, not an error; callers decide how
// to react to it. Resolved never contains duplicate ids.
type Resolution struct {
	Resolved   []int                `json:"resolved"` // Card ids, in input order
	Unresolved []UnresolvedFragment `json:"unresolved,omitempty"`
	Locale     Locale               `json:"locale"` // Locale used for matching
}

// Empty reports whether no fragment resolved to a card.
func (r Resolution) Empty() bool {
	return len(r.Resolved) == 0
}

// Partial reports whether some fragments resolved and some did not.
// The caller, not the resolver, decides whether a partial result proceeds.
func (r Resolution) Partial() bool {
	return len(r.Resolved) > 0 && len(r.Unresolved) > 0
}

// UnresolvedFragments returns just the fragment strings, preserving order.
func (r Resolution) UnresolvedFragments() []string {
	if len(r.Unresolved) == 0 {
		return nil
	}
	out := make([]string, len(r.Unresolved))
	for i, u := range r.Unresolved {
		out[i] = u.Fragment
	}
	return out
}
