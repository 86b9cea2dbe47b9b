package host

import (
	"fmt"

	"spelltome/internal/widget"
)

// BuiltinPanel simulates the host's stock spellbook panel: the one this
// system shadows. The addon side sees it only through the ShadowedPanel
// interface; everything else in here is the panel's own business.
type BuiltinPanel struct {
	shown    bool
	category Category
	flash    []*widget.Handle
	sound    SoundPlayer
	openCue  string
	closeCue string
}

// NewBuiltinPanel creates a hidden stock panel with one flash widget per
// player group tab.
func NewBuiltinPanel(groups int, sound SoundPlayer, openCue, closeCue string) *BuiltinPanel {
	p := &BuiltinPanel{sound: sound, openCue: openCue, closeCue: closeCue}
	for i := 0; i < groups; i++ {
		p.flash = append(p.flash, widget.New(fmt.Sprintf("BuiltinPanelTabFlash%d", i+1)))
	}
	return p
}

// Toggle is the panel's public open/close entry point.
func (p *BuiltinPanel) Toggle(cat Category) {
	if p.shown && cat == p.category {
		p.shown = false
		if p.sound != nil {
			p.sound.Play(p.closeCue)
		}
		return
	}
	p.shown = true
	p.category = cat
	if p.sound != nil {
		p.sound.Play(p.openCue)
	}
}

// IsShown implements ShadowedPanel.
func (p *BuiltinPanel) IsShown() bool {
	return p.shown
}

// Category returns which collection the panel is currently showing.
func (p *BuiltinPanel) Category() Category {
	return p.category
}

// FlashHandle implements ShadowedPanel.
func (p *BuiltinPanel) FlashHandle(group int) *widget.Handle {
	if group < 0 || group >= len(p.flash) {
		panic("host: FlashHandle group out of range")
	}
	return p.flash[group]
}
