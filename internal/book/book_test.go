package book

import (
	"testing"

	"spelltome/internal/config"
	"spelltome/internal/eventq"
	"spelltome/internal/flyout"
	"spelltome/internal/host"
	"spelltome/internal/lockdown"
	"spelltome/internal/panel"
)

// rig wires a simulated host to the book the way the game driver does:
// combat edges feed the gate, everything else goes through the gate into
// either the queue or the book.
type rig struct {
	sim     *host.SimHost
	gate    *lockdown.Gate
	queue   *eventq.Queue
	fly     *flyout.Flyout
	book    *Book
	coord   *panel.Coordinator
	builtin *host.BuiltinPanel
}

func testTable() *host.SpellTable {
	table := &host.SpellTable{}
	table.Player.Groups = []host.SpellGroup{
		{Name: "Fire", Spells: []host.SpellEntry{
			{Name: "Fire Bolt", Icon: "fire_bolt", Ranks: 3},
			{Name: "Fireball", Icon: "fireball", Ranks: 2},
			{Name: "Wall of Flame", Icon: "wall", Ranks: 1},
			{Name: "Immolation", Icon: "immo", Ranks: 2},
			{Name: "Meteor", Icon: "meteor", Ranks: 1},
			{Name: "Cinder Shield", Icon: "cinder", Ranks: 1},
		}},
		{Name: "Frost", Spells: []host.SpellEntry{
			{Name: "Ice Shard", Icon: "ice", Ranks: 2},
		}},
	}
	table.Companion.Spells = []host.SpellEntry{
		{Name: "Bite", Icon: "bite", Ranks: 2},
	}
	return table
}

func newRig() *rig {
	cfg := &config.Config{}
	cfg.Spellbook.SpellsPerPage = 4
	cfg.Spellbook.FlyoutButtons = 5

	cfg.Spellbook.MaxSlots = 64

	sim := host.NewSimHost(testTable(), cfg.GetMaxSlots())
	gate := lockdown.NewGate()
	queue := eventq.New([]string{host.EventCooldownTick, host.EventCastChanged})
	fly := flyout.New(gate, sim, cfg.GetFlyoutButtons())
	b := New(cfg, gate, sim, nil, fly)
	builtin := host.NewBuiltinPanel(sim.GroupCount(host.CategoryPlayer), nil, "", "")
	coord := panel.NewCoordinator(gate, b, builtin, sim.GroupCount(host.CategoryPlayer))
	b.SetCoordinator(coord)

	r := &rig{sim: sim, gate: gate, queue: queue, fly: fly, book: b, coord: coord, builtin: builtin}
	gate.OnTransition("event-replay", func(locked bool) {
		if !locked {
			queue.Drain()
		}
	})
	gate.OnTransition("panel-restore", coord.HandleLockdown)
	sim.SetListener(r.dispatch)
	return r
}

func (r *rig) dispatch(event string, raw []any) {
	switch event {
	case host.EventCombatStart:
		r.gate.SetInCombat(true)
		return
	case host.EventCombatEnd:
		r.gate.SetInCombat(false)
		return
	}
	args := eventq.ArgsOf(raw...)
	if r.gate.InCombat() {
		r.queue.Enqueue(r.book, r.book.Panel(), event, args)
		return
	}
	r.book.HandleEvent(r.book.Panel(), event, args)
}

func TestOpenShowsHighestRanksOnly(t *testing.T) {
	r := newRig()
	r.book.Open(host.CategoryPlayer)

	if !r.book.IsShown() {
		t.Fatal("book should be shown")
	}
	// Fire group raw slots: Fire Bolt 1-3, Fireball 4-5, Wall 6, Immolation
	// 7-8, Meteor 9, Cinder 10. Compact page 1 (4 per page): the first four.
	btn := r.book.SpellButtons()[0]
	if btn.Label() != "Fire Bolt" || btn.SubLabel() != "Rank 3" {
		t.Errorf("button 0 = %q/%q, want Fire Bolt/Rank 3", btn.Label(), btn.SubLabel())
	}
	if got := r.book.ResolveButton(0); got != 3 {
		t.Errorf("ResolveButton(0) = %d, want highest Fire Bolt slot 3", got)
	}
	if got := r.book.ResolveButton(1); got != 5 {
		t.Errorf("ResolveButton(1) = %d, want highest Fireball slot 5", got)
	}
	if !r.book.HasRanks(0) {
		t.Error("Fire Bolt spans ranks, HasRanks should be true")
	}
	if r.book.HasRanks(2) {
		t.Error("Wall of Flame has a single rank, HasRanks should be false")
	}
}

func TestPagingClampsAndPersists(t *testing.T) {
	r := newRig()
	r.book.Open(host.CategoryPlayer)

	// Six compact entries at 4 per page: 2 pages.
	if page, maxPage := r.book.Page(); page != 1 || maxPage != 2 {
		t.Fatalf("Page() = (%d, %d), want (1, 2)", page, maxPage)
	}
	r.book.NextPage()
	if page, _ := r.book.Page(); page != 2 {
		t.Fatalf("page after NextPage = %d, want 2", page)
	}
	r.book.NextPage() // already at max, clamped
	if page, _ := r.book.Page(); page != 2 {
		t.Fatalf("page must clamp at max, got %d", page)
	}

	// Page 2 holds entries 5 and 6; buttons 2 and 3 are empty and hidden.
	if got := r.book.ResolveButton(2); got != host.NoSlot {
		t.Errorf("ResolveButton(2) on last page = %d, want NoSlot", got)
	}
	if r.book.SpellButtons()[3].IsShown() {
		t.Error("button past the sequence end should be hidden")
	}

	// The page survives a hide/reopen.
	r.book.Hide()
	r.book.Open(host.CategoryPlayer)
	if page, _ := r.book.Page(); page != 2 {
		t.Errorf("page after reopen = %d, want 2", page)
	}

	// Switching groups uses that group's own page.
	r.book.SelectGroup(1)
	if page, maxPage := r.book.Page(); page != 1 || maxPage != 1 {
		t.Errorf("Frost page = (%d, %d), want (1, 1)", page, maxPage)
	}
}

func TestLockdownAutoHideAndRestore(t *testing.T) {
	r := newRig()
	r.book.Open(host.CategoryPlayer)
	r.book.NextPage()

	r.sim.SetCombat(true)
	if r.book.IsShown() {
		t.Fatal("entering combat must auto-hide the book")
	}

	// Events during combat are captured, not dispatched.
	r.sim.StartCooldown(host.CategoryPlayer, 3, 60)
	r.sim.Tick()
	r.sim.Tick()
	if r.queue.Len() == 0 {
		t.Fatal("combat-time events should be queued")
	}

	r.sim.SetCombat(false)
	if !r.book.IsShown() {
		t.Fatal("leaving combat must restore the book")
	}
	if r.queue.Len() != 0 {
		t.Errorf("queue should be drained on the opening edge, %d left", r.queue.Len())
	}
	if page, _ := r.book.Page(); page != 2 {
		t.Errorf("restored page = %d, want the pre-combat page 2", page)
	}
}

func TestOpenDuringCombatIsNoOp(t *testing.T) {
	r := newRig()
	r.sim.SetCombat(true)
	r.book.Open(host.CategoryPlayer)
	if r.book.IsShown() {
		t.Error("Open during lockdown must be a no-op")
	}
}

func TestTeachSpellFlashesUnviewedGroup(t *testing.T) {
	r := newRig()
	r.book.Open(host.CategoryPlayer)
	r.book.SelectGroup(1) // user is looking at Frost

	r.sim.TeachSpell(0) // new Fire ability

	if !r.coord.IsFlashPending(0) {
		t.Fatal("unviewed group should have a pending flash")
	}
	if !r.builtin.FlashHandle(0).IsFlashing() {
		t.Error("flash must be mirrored to the shadowed panel's widget")
	}
	if !r.book.TabButtons()[0].IsFlashing() {
		t.Error("own tab widget should flash too")
	}

	r.book.SelectGroup(0)
	if r.coord.IsFlashPending(0) {
		t.Error("viewing the group clears the flash")
	}
	if r.builtin.FlashHandle(0).IsFlashing() {
		t.Error("clearing must be mirrored to the shadowed panel")
	}
}

func TestTeachSpellWhileViewingGroupClearsImmediately(t *testing.T) {
	r := newRig()
	r.book.Open(host.CategoryPlayer) // group 0 on screen

	r.sim.TeachSpell(0)
	if r.coord.IsFlashPending(0) {
		t.Error("learning into the group on screen should not leave a flash")
	}
}

func TestSlotsChangedForgetsFlyout(t *testing.T) {
	r := newRig()
	r.book.Open(host.CategoryPlayer)
	r.book.OpenFlyoutFor(0)
	if !r.fly.IsShown() {
		t.Fatal("flyout should open for a multi-rank spell")
	}

	r.sim.TeachSpell(0) // renumbers slots

	if r.fly.IsShown() {
		t.Error("slot renumbering must close the flyout")
	}
	// The book itself re-resolved: Fire Bolt still collapses to its highest
	// rank under the new numbering.
	if got := r.book.ResolveButton(0); got != 3 {
		t.Errorf("ResolveButton(0) after renumber = %d, want 3", got)
	}
}

func TestCooldownTickShadesButtons(t *testing.T) {
	r := newRig()
	r.book.Open(host.CategoryPlayer)

	rep := r.book.ResolveButton(0)
	r.sim.StartCooldown(host.CategoryPlayer, rep, 120)

	if !r.book.SpellButtons()[0].IsShaded() {
		t.Error("button should pick up the cooldown tint from the tick event")
	}
}

func TestCompanionCategoryIsFlat(t *testing.T) {
	r := newRig()
	r.book.Open(host.CategoryCompanion)

	btn := r.book.SpellButtons()[0]
	if btn.Label() != "Bite" || btn.SubLabel() != "Rank 2" {
		t.Errorf("button 0 = %q/%q, want Bite/Rank 2", btn.Label(), btn.SubLabel())
	}
	if got := r.book.ResolveButton(1); got != host.NoSlot {
		t.Errorf("ResolveButton(1) = %d, want NoSlot", got)
	}
}

func TestReplayCollapsesCooldownSpam(t *testing.T) {
	r := newRig()
	r.book.Open(host.CategoryPlayer)

	r.sim.SetCombat(true)
	r.sim.StartCooldown(host.CategoryPlayer, 3, 600)
	for i := 0; i < 50; i++ {
		r.sim.Tick()
	}
	total := r.queue.Len()
	if total < 50 {
		t.Fatalf("expected sustained tick spam in the queue, got %d", total)
	}

	dispatched, drained := r.queue.Drain()
	if drained != total {
		t.Fatalf("Drain() total = %d, want %d", drained, total)
	}
	if dispatched != 1 {
		t.Errorf("dispatched = %d, want 1 (spam collapses per triple)", dispatched)
	}
	r.sim.SetCombat(false)
}
