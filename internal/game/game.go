package game

import (
	"fmt"
	"log"

	"spelltome/internal/book"
	"spelltome/internal/config"
	"spelltome/internal/eventq"
	"spelltome/internal/flyout"
	"spelltome/internal/game/keytracker"
	"spelltome/internal/host"
	"spelltome/internal/lockdown"
	"spelltome/internal/panel"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// TomeGame is the demo driver: a simulated host client plus the compact
// spellbook wired into it. It exists to exercise the addon end to end; the
// addon itself lives in the book/flyout/panel/eventq/lockdown packages.
type TomeGame struct {
	config  *config.Config
	sim     *host.SimHost
	builtin *host.BuiltinPanel
	gate    *lockdown.Gate
	queue   *eventq.Queue
	fly     *flyout.Flyout
	book    *book.Book
	coord   *panel.Coordinator
	sounds  *CueLog
	keys    *keytracker.KeyStateTracker
	ui      *UISystem

	frame     int
	lastDrain string

	// One queued left/right click per frame, consumed by whichever element
	// it landed on.
	pendingLeft  bool
	pendingRight bool
	clickX       int
	clickY       int
	rclickX      int
	rclickY      int
}

// NewTomeGame assembles the simulated host and the addon.
func NewTomeGame(cfg *config.Config, table *host.SpellTable) *TomeGame {
	sim := host.NewSimHost(table, cfg.GetMaxSlots())
	sounds := NewCueLog()
	builtin := host.NewBuiltinPanel(sim.GroupCount(host.CategoryPlayer), sounds, cfg.Sounds.Open, cfg.Sounds.Close)
	gate := lockdown.NewGate()
	queue := eventq.New(cfg.Events.Spammy)
	fly := flyout.New(gate, sim, cfg.GetFlyoutButtons())
	b := book.New(cfg, gate, sim, sounds, fly)
	coord := panel.NewCoordinator(gate, b, builtin, sim.GroupCount(host.CategoryPlayer))
	b.SetCoordinator(coord)

	g := &TomeGame{
		config:  cfg,
		sim:     sim,
		builtin: builtin,
		gate:    gate,
		queue:   queue,
		fly:     fly,
		book:    b,
		coord:   coord,
		sounds:  sounds,
		keys:    keytracker.New(),
	}
	g.ui = NewUISystem(g)

	// Registration order is firing order: buffered events replay before the
	// coordinator restores any auto-hidden panel.
	gate.OnTransition("event-replay", func(locked bool) {
		if locked {
			return
		}
		dispatched, total := queue.Drain()
		if total > 0 {
			g.lastDrain = fmt.Sprintf("replayed %d of %d queued events", dispatched, total)
			log.Printf("lockdown lifted: %s", g.lastDrain)
		}
	})
	gate.OnTransition("panel-restore", coord.HandleLockdown)

	sim.SetListener(g.onHostEvent)
	return g
}

// onHostEvent is the single entry point for host deliveries. Combat edges
// feed the gate; everything else is dispatched immediately or captured for
// replay depending on the gate.
func (g *TomeGame) onHostEvent(event string, rawArgs []any) {
	switch event {
	case host.EventCombatStart:
		g.gate.SetInCombat(true)
		return
	case host.EventCombatEnd:
		g.gate.SetInCombat(false)
		return
	}
	args := eventq.ArgsOf(rawArgs...)
	if g.gate.InCombat() {
		g.queue.Enqueue(g.book, g.book.Panel(), event, args)
		return
	}
	g.book.HandleEvent(g.book.Panel(), event, args)
}

// Update implements ebiten.Game.
func (g *TomeGame) Update() error {
	g.frame++
	g.pollMouse()
	g.handleKeys()
	g.handleClicks()
	g.sim.Tick()
	return nil
}

// Draw implements ebiten.Game.
func (g *TomeGame) Draw(screen *ebiten.Image) {
	g.ui.Draw(screen)
}

// Layout implements ebiten.Game.
func (g *TomeGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.config.GetScreenWidth(), g.config.GetScreenHeight()
}

func (g *TomeGame) pollMouse() {
	g.pendingLeft = false
	g.pendingRight = false
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.clickX, g.clickY = ebiten.CursorPosition()
		g.pendingLeft = true
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		g.rclickX, g.rclickY = ebiten.CursorPosition()
		g.pendingRight = true
	}
}

// consumeLeftClickIn consumes the pending left-click if it is inside the
// bounds. Bounds are inclusive-exclusive: [x1,x2) and [y1,y2).
func (g *TomeGame) consumeLeftClickIn(x1, y1, x2, y2 int) bool {
	if g.pendingLeft && g.clickX >= x1 && g.clickX < x2 && g.clickY >= y1 && g.clickY < y2 {
		g.pendingLeft = false
		return true
	}
	return false
}

// consumeRightClickIn consumes the pending right-click if it is inside the
// bounds.
func (g *TomeGame) consumeRightClickIn(x1, y1, x2, y2 int) bool {
	if g.pendingRight && g.rclickX >= x1 && g.rclickX < x2 && g.rclickY >= y1 && g.rclickY < y2 {
		g.pendingRight = false
		return true
	}
	return false
}

func (g *TomeGame) handleKeys() {
	if g.keys.IsKeyJustPressed(ebiten.KeyS) {
		if g.book.IsShown() {
			g.coord.RequestClose()
		} else {
			g.coord.RequestOpen(host.CategoryPlayer)
		}
	}
	if g.keys.IsKeyJustPressed(ebiten.KeyP) {
		g.coord.RequestOpen(host.CategoryCompanion)
	}
	if g.keys.IsKeyJustPressed(ebiten.KeyB) {
		// The one intentional route to the host's own panel.
		g.coord.AllowNextOpenToShadowed()
		g.coord.RequestOpen(host.CategoryPlayer)
	}
	if g.keys.IsKeyJustPressed(ebiten.KeyC) {
		g.sim.SetCombat(!g.sim.InCombat())
	}
	if g.keys.IsKeyJustPressed(ebiten.KeyT) {
		g.sim.TeachSpell(g.book.View().Group)
	}
	if g.keys.IsKeyJustPressed(ebiten.KeyArrowRight) && g.book.IsShown() {
		g.book.NextPage()
	}
	if g.keys.IsKeyJustPressed(ebiten.KeyArrowLeft) && g.book.IsShown() {
		g.book.PrevPage()
	}
	if g.keys.IsKeyJustPressed(ebiten.KeyEscape) {
		g.coord.RequestClose()
	}
	for i := 0; i < g.sim.GroupCount(host.CategoryPlayer) && i < 9; i++ {
		if g.keys.IsKeyJustPressed(ebiten.KeyDigit1+ebiten.Key(i)) && g.book.IsShown() {
			g.book.SelectGroup(i)
		}
	}
}

func (g *TomeGame) handleClicks() {
	if !g.pendingLeft && !g.pendingRight {
		return
	}
	if g.fly.IsShown() {
		g.handleFlyoutClicks()
	}
	if g.book.IsShown() {
		g.handleBookClicks()
	}
}

func (g *TomeGame) handleBookClicks() {
	for i := range g.book.TabButtons() {
		r := g.tabRect(i)
		if g.consumeLeftClickIn(r.x, r.y, r.x+r.w, r.y+r.h) {
			g.book.SelectGroup(i)
			return
		}
	}

	prevR := g.pageButtonRect(false)
	if g.consumeLeftClickIn(prevR.x, prevR.y, prevR.x+prevR.w, prevR.y+prevR.h) {
		g.book.PrevPage()
		return
	}
	nextR := g.pageButtonRect(true)
	if g.consumeLeftClickIn(nextR.x, nextR.y, nextR.x+nextR.w, nextR.y+nextR.h) {
		g.book.NextPage()
		return
	}

	for i, btn := range g.book.SpellButtons() {
		if !btn.IsShown() {
			continue
		}
		r := g.spellButtonRect(i)
		if g.consumeLeftClickIn(r.x, r.y, r.x+r.w, r.y+r.h) {
			if slot := g.book.ResolveButton(i); slot != host.NoSlot && btn.IsEnabled() {
				g.castSpell(slot)
			}
			return
		}
		if g.consumeRightClickIn(r.x, r.y, r.x+r.w, r.y+r.h) {
			if g.book.HasRanks(i) {
				g.book.OpenFlyoutFor(i)
			}
			return
		}
	}

	r := g.panelRect()
	closeR := rect{x: r.x + r.w - 24, y: r.y + 4, w: 20, h: 20}
	if g.consumeLeftClickIn(closeR.x, closeR.y, closeR.x+closeR.w, closeR.y+closeR.h) {
		g.coord.RequestClose()
	}
}

func (g *TomeGame) handleFlyoutClicks() {
	for i, btn := range g.fly.Buttons() {
		if !btn.IsShown() {
			continue
		}
		r := g.flyoutButtonRect(i)
		if g.consumeLeftClickIn(r.x, r.y, r.x+r.w, r.y+r.h) {
			if slot := g.fly.SlotFor(i); slot != host.NoSlot && btn.IsEnabled() {
				g.castSpell(slot)
				g.fly.Close()
			}
			return
		}
	}
}

// castSpell asks the host to fire the spell; the resulting cooldown tick
// spam is the whole point of the demo.
func (g *TomeGame) castSpell(slot host.SlotID) {
	g.sim.StartCooldown(g.book.View().Category, slot, 180)
}
