package spellindex

import "spelltome/internal/host"

// ViewState remembers where the user was looking: the active category, the
// selected group tab, and the current page of every group. It survives panel
// show/hide so reopening lands on the same view, and is mutated only by
// explicit navigation.
type ViewState struct {
	Category    host.Category
	Group       int
	pageByGroup map[int]int
}

// NewViewState starts on the first group of the player category, page 1.
func NewViewState() *ViewState {
	return &ViewState{Category: host.CategoryPlayer, pageByGroup: make(map[int]int)}
}

// Page returns the remembered page for a group, defaulting to 1.
func (v *ViewState) Page(group int) int {
	if p, ok := v.pageByGroup[group]; ok {
		return p
	}
	return 1
}

// SetPage records the page for a group. Pages below 1 are a caller bug;
// clamping against the index maximum is the caller's job after a rebuild.
func (v *ViewState) SetPage(group, page int) {
	if page < 1 {
		panic("spellindex: SetPage requires page >= 1")
	}
	v.pageByGroup[group] = page
}
