package book

import (
	"fmt"

	"spelltome/internal/config"
	"spelltome/internal/eventq"
	"spelltome/internal/flyout"
	"spelltome/internal/host"
	"spelltome/internal/lockdown"
	"spelltome/internal/panel"
	"spelltome/internal/spellindex"
	"spelltome/internal/widget"
)

// buttonSlot is what one on-page button currently resolves to.
type buttonSlot struct {
	rep    host.SlotID
	lowest host.SlotID
	ok     bool
}

// Book is the compact spellbook panel: a paged grid of highest-rank-only
// spell buttons plus group tabs. It implements panel.OwnPanel for the
// coordinator and eventq.Handler for replayed host events.
type Book struct {
	cfg    *config.Config
	gate   *lockdown.Gate
	oracle host.SpellOracle
	sound  host.SoundPlayer
	fly    *flyout.Flyout
	coord  *panel.Coordinator

	index *spellindex.Index
	view  *spellindex.ViewState

	panel        *widget.Handle
	spellButtons []*widget.Handle
	tabButtons   []*widget.Handle
	prevButton   *widget.Handle
	nextButton   *widget.Handle
	slots        []buttonSlot
}

// New creates a hidden compact panel. The coordinator is attached later via
// SetCoordinator because it needs the book to exist first.
func New(cfg *config.Config, gate *lockdown.Gate, oracle host.SpellOracle, sound host.SoundPlayer, fly *flyout.Flyout) *Book {
	if cfg == nil || gate == nil || oracle == nil || fly == nil {
		panic("book: New requires config, gate, oracle and flyout")
	}
	b := &Book{
		cfg:        cfg,
		gate:       gate,
		oracle:     oracle,
		sound:      sound,
		fly:        fly,
		index:      spellindex.New(oracle, cfg.GetSpellsPerPage()),
		view:       spellindex.NewViewState(),
		panel:      widget.New("SpellBook"),
		prevButton: widget.New("SpellBookPrevPage"),
		nextButton: widget.New("SpellBookNextPage"),
		slots:      make([]buttonSlot, cfg.GetSpellsPerPage()),
	}
	for i := 0; i < cfg.GetSpellsPerPage(); i++ {
		b.spellButtons = append(b.spellButtons, widget.New(fmt.Sprintf("SpellBookButton%d", i+1)))
	}
	for g := 0; g < oracle.GroupCount(host.CategoryPlayer); g++ {
		b.tabButtons = append(b.tabButtons, widget.New(fmt.Sprintf("SpellBookTab%d", g+1)))
	}
	return b
}

// SetCoordinator attaches the panel coordinator.
func (b *Book) SetCoordinator(c *panel.Coordinator) {
	b.coord = c
}

// Open implements panel.OwnPanel. No-op under lockdown.
func (b *Book) Open(cat host.Category) {
	if b.gate.InCombat() {
		return
	}
	wasShown := b.panel.IsShown()
	b.view.Category = cat
	if cat == host.CategoryCompanion {
		b.view.Group = 0
	}
	b.markGroupViewed()
	b.Refresh()
	b.panel.Show()
	if !wasShown && b.sound != nil {
		b.sound.Play(b.cfg.Sounds.Open)
	}
}

// Hide implements panel.OwnPanel. The flyout closes with its parent.
func (b *Book) Hide() {
	if !b.panel.IsShown() {
		return
	}
	b.panel.Hide()
	b.fly.Close()
	if b.sound != nil {
		b.sound.Play(b.cfg.Sounds.Close)
	}
}

// IsShown implements panel.OwnPanel.
func (b *Book) IsShown() bool {
	return b.panel.IsShown()
}

// Panel exposes the root handle for rendering.
func (b *Book) Panel() *widget.Handle {
	return b.panel
}

// SpellButtons exposes the grid buttons for rendering.
func (b *Book) SpellButtons() []*widget.Handle {
	return b.spellButtons
}

// TabButtons exposes the group tab buttons for rendering.
func (b *Book) TabButtons() []*widget.Handle {
	return b.tabButtons
}

// PageButtons exposes the prev/next page buttons for rendering.
func (b *Book) PageButtons() (prev, next *widget.Handle) {
	return b.prevButton, b.nextButton
}

// View returns the active view state.
func (b *Book) View() *spellindex.ViewState {
	return b.view
}

// Page returns the current page and the page count for the active group.
func (b *Book) Page() (page, maxPage int) {
	return b.view.Page(b.activeGroup()), b.index.MaxPage()
}

// activeGroup returns the group key used for paging: companion pages are
// remembered separately from every player group.
func (b *Book) activeGroup() int {
	if b.view.Category == host.CategoryCompanion {
		return -1
	}
	return b.view.Group
}

// SelectGroup switches the visible player group tab.
func (b *Book) SelectGroup(group int) {
	if group < 0 || group >= len(b.tabButtons) {
		panic("book: SelectGroup group out of range")
	}
	if b.gate.InCombat() {
		return
	}
	b.view.Group = group
	b.fly.Close()
	b.markGroupViewed()
	b.Refresh()
}

// NextPage advances one page, with the page-turn cue when it actually moved.
func (b *Book) NextPage() {
	b.turnPage(1)
}

// PrevPage goes back one page.
func (b *Book) PrevPage() {
	b.turnPage(-1)
}

func (b *Book) turnPage(delta int) {
	if b.gate.InCombat() {
		return
	}
	group := b.activeGroup()
	page := b.index.ClampPage(b.view.Page(group) + delta)
	if page == b.view.Page(group) {
		return
	}
	b.view.SetPage(group, page)
	b.fly.Close()
	b.Refresh()
	if b.sound != nil {
		b.sound.Play(b.cfg.Sounds.PageTurn)
	}
}

// markGroupViewed clears the pending flash for the group now on screen.
func (b *Book) markGroupViewed() {
	if b.coord != nil && b.view.Category == host.CategoryPlayer {
		b.coord.GroupViewed(b.view.Group)
	}
}

// Refresh rebuilds the compact index for the active view and repopulates
// every button from it. Always rebuild before reading page counts: the host
// may have renumbered since the last look.
func (b *Book) Refresh() {
	group := b.activeGroup()
	b.index.Rebuild(b.view.Category, b.view.Group)
	b.view.SetPage(group, b.index.ClampPage(b.view.Page(group)))

	page := b.view.Page(group)
	for i := range b.spellButtons {
		btn := b.spellButtons[i]
		rep, lowest, ok := b.index.Resolve(i+1, page)
		b.slots[i] = buttonSlot{rep: rep, lowest: lowest, ok: ok}
		if !ok {
			// Past the end of the compact sequence: legitimate on the last
			// page, so the button just goes away.
			btn.Disable()
			btn.Hide()
			continue
		}
		disp, found := b.oracle.QuerySpellDisplay(rep, b.view.Category)
		if !found {
			// The index said there is a spell here but the host disagrees.
			// Diagnosable placeholder, never a crash.
			btn.SetLabel(fmt.Sprintf("#%d", rep))
			btn.SetSubLabel("")
			btn.SetIcon("")
			btn.SetShaded(false)
			btn.Disable()
			btn.Show()
			continue
		}
		btn.SetLabel(disp.Name)
		btn.SetSubLabel(disp.SubName)
		btn.SetIcon(disp.Icon)
		btn.SetShaded(disp.OnCooldown)
		btn.Enable()
		btn.Show()
	}

	maxPage := b.index.MaxPage()
	setEnabled(b.prevButton, page > 1)
	setEnabled(b.nextButton, page < maxPage)

	for g, tab := range b.tabButtons {
		tab.SetLabel(b.oracle.GroupName(host.CategoryPlayer, g))
		if b.coord != nil {
			tab.SetFlash(b.coord.IsFlashPending(g))
		}
	}
}

func setEnabled(h *widget.Handle, on bool) {
	if on {
		h.Enable()
	} else {
		h.Disable()
	}
}

// ResolveButton is the public button-to-spell query: the 0-based grid
// position maps to the representative (highest rank) slot under it, or
// NoSlot when the button is empty.
func (b *Book) ResolveButton(i int) host.SlotID {
	if i < 0 || i >= len(b.slots) {
		panic("book: ResolveButton position out of range")
	}
	if !b.slots[i].ok {
		return host.NoSlot
	}
	return b.slots[i].rep
}

// HasRanks reports whether the spell under a button spans more than one raw
// slot, i.e. whether a flyout would show anything beyond the button itself.
func (b *Book) HasRanks(i int) bool {
	if i < 0 || i >= len(b.slots) {
		panic("book: HasRanks position out of range")
	}
	s := b.slots[i]
	return s.ok && s.rep > s.lowest
}

// OpenFlyoutFor opens the rank flyout for the spell under a button.
func (b *Book) OpenFlyoutFor(i int) {
	if i < 0 || i >= len(b.slots) {
		panic("book: OpenFlyoutFor position out of range")
	}
	s := b.slots[i]
	if !s.ok {
		return
	}
	b.fly.ShowRange(b.spellButtons[i], s.lowest, s.rep, b.view.Category)
}

// HandleEvent implements eventq.Handler: host notifications arrive here,
// immediately when the gate is open, replayed by the queue when it was not.
func (b *Book) HandleEvent(target any, event string, args eventq.Args) {
	switch event {
	case host.EventCooldownTick, host.EventCastChanged:
		if b.panel.IsShown() {
			b.refreshShading()
		}
	case host.EventAbilityLearnt:
		group := mustIntArg(args, 0, event)
		if b.coord != nil {
			b.coord.NotifyNewAbility(group)
		}
		if b.panel.IsShown() {
			b.markGroupViewed()
			b.Refresh()
		}
	case host.EventSlotsChanged:
		// Slot numbering may have shifted: remembered ranges are poison now.
		b.fly.CloseAndForget()
		if b.panel.IsShown() {
			b.Refresh()
		}
	}
}

// refreshShading re-queries cooldown state for the buttons on screen without
// rebuilding the index.
func (b *Book) refreshShading() {
	for i, btn := range b.spellButtons {
		if !b.slots[i].ok || !btn.IsShown() {
			continue
		}
		if disp, found := b.oracle.QuerySpellDisplay(b.slots[i].rep, b.view.Category); found {
			btn.SetShaded(disp.OnCooldown)
		}
	}
}

// mustIntArg extracts a required int argument from a replayed event.
func mustIntArg(args eventq.Args, pos int, event string) int {
	if pos >= args.Arity() {
		panic(fmt.Sprintf("book: event %s missing argument %d", event, pos))
	}
	v, present := args.At(pos)
	if !present {
		panic(fmt.Sprintf("book: event %s missing argument %d", event, pos))
	}
	n, ok := v.(int)
	if !ok {
		panic(fmt.Sprintf("book: event %s argument %d is %T, want int", event, pos, v))
	}
	return n
}
