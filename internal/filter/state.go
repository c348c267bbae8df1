// Package filter holds the session filter state and the pure functions that
// derive the visible, ordered record set from it.
package filter

// AllTag is the sentinel selection meaning "no tag restriction". The
// selection set is always non-empty and is either exactly {AllTag} or a set
// of real tags that never contains the sentinel.
const AllTag = "ALL"

// State is the session-scoped filter settings. A single instance is owned
// by the UI controller and mutated only by user interaction on the event
// loop; it is never persisted.
type State struct {
	SelectedTags     map[string]bool
	ShowPast         bool
	ShowApproxFuture bool
	MinH5            *int
	MinRating        string
	NameFilter       string
}

// NewState returns the default filter settings: all tags, hide past, show
// approximate-future, no thresholds.
func NewState() *State {
	return &State{
		SelectedTags:     map[string]bool{AllTag: true},
		ShowApproxFuture: true,
	}
}

// AllSelected reports whether the sentinel is active.
func (s *State) AllSelected() bool {
	return s.SelectedTags[AllTag]
}

// TagSelected reports whether a specific tag is in the selection.
func (s *State) TagSelected(tag string) bool {
	return s.SelectedTags[tag]
}

// SelectAll clears every specific selection and restores the sentinel.
func (s *State) SelectAll() {
	s.SelectedTags = map[string]bool{AllTag: true}
}

// ToggleTag flips one real tag's membership. Selecting a tag removes the
// sentinel first; emptying the selection restores it, so the invariant that
// the set is either {ALL} or non-empty real tags holds at all times.
func (s *State) ToggleTag(tag string) {
	if tag == AllTag {
		s.SelectAll()
		return
	}

	delete(s.SelectedTags, AllTag)
	if s.SelectedTags[tag] {
		delete(s.SelectedTags, tag)
	} else {
		s.SelectedTags[tag] = true
	}

	if len(s.SelectedTags) == 0 {
		s.SelectedTags[AllTag] = true
	}
}
