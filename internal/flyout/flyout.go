package flyout

import (
	"fmt"

	"spelltome/internal/host"
	"spelltome/internal/lockdown"
	"spelltome/internal/widget"
)

// Flyout is the secondary popup listing every rank of a multi-rank spell.
// It remembers the last rank range it was configured for so a repeated
// request does not clobber per-button state applied after the initial
// assignment, and it forgets that range whenever host slot numbering may
// have shifted.
type Flyout struct {
	gate    *lockdown.Gate
	oracle  host.SpellOracle
	panel   *widget.Handle
	anchor  *widget.Handle
	buttons []*widget.Handle
	slots   []host.SlotID // slot behind each visible button

	// remembered configuration
	haveRange bool
	lowest    host.SlotID
	highest   host.SlotID
	category  host.Category
}

// New creates a hidden flyout with capacity rank buttons.
func New(gate *lockdown.Gate, oracle host.SpellOracle, capacity int) *Flyout {
	if gate == nil || oracle == nil {
		panic("flyout: New requires a gate and an oracle")
	}
	if capacity < 1 {
		panic("flyout: New requires capacity >= 1")
	}
	f := &Flyout{
		gate:   gate,
		oracle: oracle,
		panel:  widget.New("RankFlyout"),
		slots:  make([]host.SlotID, capacity),
	}
	for i := 0; i < capacity; i++ {
		f.buttons = append(f.buttons, widget.New(fmt.Sprintf("RankFlyoutButton%d", i+1)))
	}
	return f
}

// ShowRange configures the flyout for the slots [lowest, highest] and shows
// it next to anchor. No-op while combat lockdown is active. An unchanged
// (lowest, highest, category) triple preserves per-button disabled states; a
// changed one treats every button as freshly enabled.
func (f *Flyout) ShowRange(anchor *widget.Handle, lowest, highest host.SlotID, cat host.Category) {
	if lowest < 1 || highest < lowest {
		panic("flyout: ShowRange requires 1 <= lowest <= highest")
	}
	if f.gate.InCombat() {
		return
	}

	changed := !f.haveRange || lowest != f.lowest || highest != f.highest || cat != f.category

	count := int(highest-lowest) + 1
	if count > len(f.buttons) {
		count = len(f.buttons)
	}
	for i := 0; i < count; i++ {
		slot := lowest + host.SlotID(i)
		btn := f.buttons[i]
		f.slots[i] = slot

		disp, ok := f.oracle.QuerySpellDisplay(slot, cat)
		if !ok {
			// Resolution failure: inert placeholder showing the raw id so
			// the inconsistency stays diagnosable.
			btn.SetLabel(fmt.Sprintf("#%d", slot))
			btn.SetSubLabel("")
			btn.SetIcon("")
			btn.SetShaded(false)
			btn.Disable()
			f.slots[i] = host.NoSlot
		} else {
			btn.SetLabel(disp.Name)
			btn.SetSubLabel(disp.SubName)
			btn.SetIcon(disp.Icon)
			btn.SetShaded(disp.OnCooldown)
			if changed {
				btn.Enable()
			}
		}
		btn.Show()
	}
	// Leftover buttons from a previous, larger range must not stay clickable.
	for i := count; i < len(f.buttons); i++ {
		f.buttons[i].Disable()
		f.buttons[i].Hide()
		f.slots[i] = host.NoSlot
	}

	f.anchor = anchor
	f.haveRange = true
	f.lowest = lowest
	f.highest = highest
	f.category = cat
	f.panel.Show()
}

// Close hides the flyout but keeps the remembered range, so reopening the
// same spell skips the rebuild.
func (f *Flyout) Close() {
	f.panel.Hide()
}

// CloseAndForget hides the flyout and erases the remembered range. Required
// after any event that may have renumbered host slots: the next ShowRange
// must treat its input as changed rather than trust stale offsets.
func (f *Flyout) CloseAndForget() {
	f.panel.Hide()
	f.haveRange = false
}

// IsShown reports flyout visibility.
func (f *Flyout) IsShown() bool {
	return f.panel.IsShown()
}

// Anchor returns the widget the flyout was opened against, or nil.
func (f *Flyout) Anchor() *widget.Handle {
	return f.anchor
}

// Buttons exposes the rank buttons for rendering.
func (f *Flyout) Buttons() []*widget.Handle {
	return f.buttons
}

// SlotFor resolves a 0-based button position to the spell slot behind it,
// or NoSlot when the button holds nothing resolvable.
func (f *Flyout) SlotFor(button int) host.SlotID {
	if button < 0 || button >= len(f.slots) {
		panic("flyout: SlotFor button out of range")
	}
	return f.slots[button]
}
