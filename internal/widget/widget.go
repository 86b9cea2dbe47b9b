package widget

// Handle is the opaque state of one UI widget. The renderer reads it every
// frame; game logic mutates it through the methods below and never touches
// host internals directly. Handles are created once at panel construction
// and addressed by stable integer keys, never looked up by name at runtime.
type Handle struct {
	name    string
	visible bool
	enabled bool
	label   string
	sub     string
	icon    string
	flash   bool
	shaded  bool
}

// New creates a hidden, enabled handle. The name is diagnostic only.
func New(name string) *Handle {
	return &Handle{name: name, enabled: true}
}

// Name returns the diagnostic name given at creation.
func (h *Handle) Name() string { return h.name }

// Show makes the widget visible.
func (h *Handle) Show() { h.visible = true }

// Hide makes the widget invisible.
func (h *Handle) Hide() { h.visible = false }

// IsShown reports visibility.
func (h *Handle) IsShown() bool { return h.visible }

// Enable marks the widget interactive.
func (h *Handle) Enable() { h.enabled = true }

// Disable marks the widget inert; the renderer grays it out.
func (h *Handle) Disable() { h.enabled = false }

// IsEnabled reports interactivity.
func (h *Handle) IsEnabled() bool { return h.enabled }

// SetLabel sets the primary text (spell name, or a raw id placeholder when
// the host data is inconsistent).
func (h *Handle) SetLabel(s string) { h.label = s }

// Label returns the primary text.
func (h *Handle) Label() string { return h.label }

// SetSubLabel sets the secondary text (rank line).
func (h *Handle) SetSubLabel(s string) { h.sub = s }

// SubLabel returns the secondary text.
func (h *Handle) SubLabel() string { return h.sub }

// SetIcon sets the texture key.
func (h *Handle) SetIcon(s string) { h.icon = s }

// Icon returns the texture key.
func (h *Handle) Icon() string { return h.icon }

// SetFlash toggles the new-ability notification glow.
func (h *Handle) SetFlash(on bool) { h.flash = on }

// IsFlashing reports the notification glow.
func (h *Handle) IsFlashing() bool { return h.flash }

// SetShaded toggles the cooldown tint.
func (h *Handle) SetShaded(on bool) { h.shaded = on }

// IsShaded reports the cooldown tint.
func (h *Handle) IsShaded() bool { return h.shaded }
