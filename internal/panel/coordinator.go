package panel

import (
	"spelltome/internal/host"
	"spelltome/internal/lockdown"
)

// State is the coordinator's view of which spellbook is on screen.
type State int

const (
	BothHidden State = iota
	OwnVisible
	ShadowedVisible
)

// String returns the string representation of a state
func (s State) String() string {
	switch s {
	case BothHidden:
		return "both-hidden"
	case OwnVisible:
		return "own-visible"
	case ShadowedVisible:
		return "shadowed-visible"
	default:
		return "unknown"
	}
}

// OwnPanel is the addon's compact panel as the coordinator drives it.
type OwnPanel interface {
	Open(cat host.Category)
	Hide()
	IsShown() bool
}

// Coordinator arbitrates open/close requests between the compact panel and
// the host's built-in one, keeps the two mutually exclusive, and mirrors
// per-group new-ability flash state into the built-in panel's presentation
// widgets. It never writes the built-in panel's internals; all influence
// goes through its public Toggle entry point and its flash handles.
type Coordinator struct {
	gate     *lockdown.Gate
	own      OwnPanel
	shadowed host.ShadowedPanel
	groups   int

	flash   map[int]bool
	lastCat host.Category

	// One-shot: the next open request is intentionally routed to the
	// shadowed panel instead of being intercepted.
	allowNextShadowed bool

	// Restore intent recorded on the lockdown closing edge. At most one of
	// the two panel flags is set, mirroring the exclusivity invariant.
	restoreOwn      bool
	restoreShadowed bool
	restoreCat      host.Category
}

// NewCoordinator wires the two panels together. groups is the number of
// player group tabs carrying flash widgets.
func NewCoordinator(gate *lockdown.Gate, own OwnPanel, shadowed host.ShadowedPanel, groups int) *Coordinator {
	if gate == nil || own == nil || shadowed == nil {
		panic("panel: NewCoordinator requires gate, own and shadowed panels")
	}
	return &Coordinator{
		gate:     gate,
		own:      own,
		shadowed: shadowed,
		groups:   groups,
		flash:    make(map[int]bool),
	}
}

// State reports which panel is currently visible. Both visible at once is a
// bug by construction.
func (c *Coordinator) State() State {
	switch {
	case c.own.IsShown():
		return OwnVisible
	case c.shadowed.IsShown():
		return ShadowedVisible
	default:
		return BothHidden
	}
}

// RequestOpen routes an open request to whichever panel should win it. The
// loser is forced hidden first so the two are never visible together. No-op
// under lockdown; entering lockdown already closed everything and the user
// gets the panel back when it lifts.
func (c *Coordinator) RequestOpen(cat host.Category) {
	if c.gate.InCombat() {
		return
	}
	c.lastCat = cat

	if c.allowNextShadowed {
		c.allowNextShadowed = false
		if c.own.IsShown() {
			c.own.Hide()
		}
		if !c.shadowed.IsShown() || c.shadowed.Category() != cat {
			c.shadowed.Toggle(cat)
		}
		c.SyncFlashToShadowed()
		return
	}

	c.hideShadowed()
	c.own.Open(cat)
}

// RequestClose hides whichever panel is visible.
func (c *Coordinator) RequestClose() {
	if c.own.IsShown() {
		c.own.Hide()
	}
	c.hideShadowed()
}

// hideShadowed closes the shadowed panel through its public toggle. Toggling
// with anything but the panel's currently shown category would switch it
// instead of closing it, so the category must be read back, never assumed.
func (c *Coordinator) hideShadowed() {
	if c.shadowed.IsShown() {
		c.shadowed.Toggle(c.shadowed.Category())
	}
}

// AllowNextOpenToShadowed arms the one-shot routing flag: the next open
// request goes to the host's built-in panel instead of the compact one.
func (c *Coordinator) AllowNextOpenToShadowed() {
	c.allowNextShadowed = true
}

// HandleLockdown is the coordinator's gate observer. The closing edge forces
// both panels hidden, remembering which one was up and on which category; the
// opening edge restores that panel. A shadowed restore re-arms the one-shot
// flag and goes back through RequestOpen, so it takes the same sanctioned
// route as any other shadowed open. The game registers the event queue's
// observer ahead of this one, so by the time the restore runs every buffered
// event has been replayed.
func (c *Coordinator) HandleLockdown(locked bool) {
	if locked {
		c.restoreOwn = c.own.IsShown()
		c.restoreShadowed = !c.restoreOwn && c.shadowed.IsShown()
		if c.restoreOwn {
			c.restoreCat = c.lastCat
		} else if c.restoreShadowed {
			c.restoreCat = c.shadowed.Category()
		}
		if c.own.IsShown() {
			c.own.Hide()
		}
		c.hideShadowed()
		return
	}
	switch {
	case c.restoreOwn:
		c.restoreOwn = false
		c.own.Open(c.restoreCat)
	case c.restoreShadowed:
		c.restoreShadowed = false
		c.allowNextShadowed = true
		c.RequestOpen(c.restoreCat)
	}
}

// NotifyNewAbility records a pending new-ability flash for a group and
// mirrors it to the shadowed panel.
func (c *Coordinator) NotifyNewAbility(group int) {
	if group < 0 || group >= c.groups {
		panic("panel: NotifyNewAbility group out of range")
	}
	c.flash[group] = true
	c.SyncFlashToShadowed()
}

// GroupViewed clears the pending flash for a group the user just looked at.
func (c *Coordinator) GroupViewed(group int) {
	if group < 0 || group >= c.groups {
		panic("panel: GroupViewed group out of range")
	}
	if c.flash[group] {
		c.flash[group] = false
		c.SyncFlashToShadowed()
	}
}

// IsFlashPending reports the pending flash flag for a group.
func (c *Coordinator) IsFlashPending(group int) bool {
	return c.flash[group]
}

// SyncFlashToShadowed pushes the pending-flash set onto the shadowed panel's
// tab flash widgets. Presentation only; the panel's internal state is never
// touched.
func (c *Coordinator) SyncFlashToShadowed() {
	for group, pending := range c.flash {
		c.shadowed.FlashHandle(group).SetFlash(pending)
	}
}
