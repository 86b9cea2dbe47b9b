package host

import "spelltome/internal/widget"

// Category selects one of the two top-level ability collections.
type Category int

const (
	CategoryPlayer Category = iota
	CategoryCompanion
)

// String returns the string representation of a category
func (c Category) String() string {
	switch c {
	case CategoryPlayer:
		return "player"
	case CategoryCompanion:
		return "companion"
	default:
		return "unknown"
	}
}

// SlotID is a host-assigned ability slot number, 1-based within a category.
// Slot numbering can shift whenever the host reshuffles known abilities, so
// remembered SlotIDs must be forgotten on any event that may renumber.
type SlotID int

// NoSlot is the sentinel for "no spell in this slot".
const NoSlot SlotID = 0

// Event names delivered by the host. COMBAT_START / COMBAT_END are
// edge-triggered; SPELL_COOLDOWN_TICK and SPELL_CAST_CHANGED arrive at high
// frequency and carry arguments their handlers ignore.
const (
	EventCombatStart   = "COMBAT_START"
	EventCombatEnd     = "COMBAT_END"
	EventCooldownTick  = "SPELL_COOLDOWN_TICK"
	EventCastChanged   = "SPELL_CAST_CHANGED"
	EventAbilityLearnt = "ABILITY_LEARNED"
	EventSlotsChanged  = "SLOTS_CHANGED"
)

// SpellDisplay is what the host reports for one ability slot.
type SpellDisplay struct {
	Name       string
	SubName    string // rank text, e.g. "Rank 3"
	Icon       string
	OnCooldown bool
}

// SpellOracle answers display queries for ability slots. It is the only way
// this system learns about spells; nothing here caches its answers across a
// SLOTS_CHANGED event.
type SpellOracle interface {
	// QuerySpellDisplay returns the display data for a slot, or ok=false if
	// the slot holds no spell.
	QuerySpellDisplay(slot SlotID, cat Category) (SpellDisplay, bool)
	// QueryCategoryRange returns the slot offset preceding the first slot of
	// the group and the number of raw slots in it. Group is ignored for the
	// companion category, which is a single flat range.
	QueryCategoryRange(cat Category, group int) (start, count int)
	// GroupCount returns the number of groups in a category.
	GroupCount(cat Category) int
	// GroupName returns the display name of a group.
	GroupName(cat Category, group int) string
}

// SoundPlayer plays named UI sound cues.
type SoundPlayer interface {
	Play(cue string)
}

// ShadowedPanel is the host's own built-in spellbook, which this system
// visually replaces but must stay interoperable with. It may only be driven
// through its public Toggle entry point and inspected through its state
// flags; its internals are off limits. The one sanctioned write surface is
// its presentation-layer flash widgets.
//
// Toggle is category-sensitive: with the shown category it closes the panel,
// with any other it switches and stays open. Closing it therefore requires
// reading Category first.
type ShadowedPanel interface {
	Toggle(cat Category)
	IsShown() bool
	// Category reports which collection the panel is showing. Meaningful
	// only while IsShown.
	Category() Category
	// FlashHandle returns the notification widget for a group tab. Writing
	// its flash state is allowed; the panel's own bookkeeping is not.
	FlashHandle(group int) *widget.Handle
}

// Listener receives host event deliveries. A nil slice means no arguments.
type Listener func(event string, args []any)
