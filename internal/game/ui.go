package game

import (
	"fmt"
	"image/color"
	"strings"
	"unicode/utf8"

	"spelltome/internal/host"
	"spelltome/internal/widget"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	ebitext "github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// UI Color constants for DRY code
var (
	UIColorPanelBg       = color.RGBA{0, 0, 30, 230}      // Dark blue panel background
	UIColorPanelBorder   = color.RGBA{80, 80, 120, 255}   // Light panel border
	UIColorButton        = color.RGBA{40, 40, 70, 220}    // Idle spell button
	UIColorButtonHover   = color.RGBA{60, 60, 100, 230}   // Hovered spell button
	UIColorButtonOff     = color.RGBA{30, 30, 40, 200}    // Disabled button
	UIColorCooldown      = color.RGBA{20, 20, 90, 230}    // Cooldown tint
	UIColorTabActive     = color.RGBA{0, 0, 30, 230}      // Active tab matches panel
	UIColorTabIdle       = color.RGBA{20, 20, 40, 200}    // Inactive tab
	UIColorFlash         = color.RGBA{240, 210, 60, 255}  // New-ability flash
	UIColorTextDim       = color.RGBA{140, 140, 150, 255} // Disabled text
	UIColorCombatBanner  = color.RGBA{150, 30, 30, 220}   // Lockdown banner
	UIColorBuiltinBg     = color.RGBA{35, 25, 10, 230}    // Stock panel background
	UIColorBuiltinBorder = color.RGBA{140, 110, 50, 255}  // Stock panel border
)

// UISystem handles all user interface rendering
type UISystem struct {
	game *TomeGame
}

// NewUISystem creates a new UI system
func NewUISystem(game *TomeGame) *UISystem {
	return &UISystem{game: game}
}

// Draw renders all UI elements
func (ui *UISystem) Draw(screen *ebiten.Image) {
	ui.drawStatusBar(screen)

	if ui.game.builtin.IsShown() {
		ui.drawBuiltinPanel(screen)
	}
	if ui.game.book.IsShown() {
		ui.drawBookPanel(screen)
	}
	if ui.game.fly.IsShown() {
		ui.drawFlyout(screen)
	}

	ui.drawInstructions(screen)
}

// flashOn drives the blink phase for new-ability indicators.
func (ui *UISystem) flashOn() bool {
	frames := ui.game.config.UI.FlashBlinkFrames
	if frames < 1 {
		frames = 30
	}
	return (ui.game.frame/frames)%2 == 0
}

func (ui *UISystem) drawStatusBar(screen *ebiten.Image) {
	if ui.game.gate.InCombat() {
		w := ui.game.config.GetScreenWidth()
		drawFilledRect(screen, 0, 0, w, 24, UIColorCombatBanner)
		msg := fmt.Sprintf("IN COMBAT - UI locked, %d events queued", ui.game.queue.Len())
		drawCenteredDebugText(screen, msg, 0, 4, w, 16)
		return
	}
	ebitenutil.DebugPrintAt(screen, "Out of combat", 10, 6)
	if ui.game.lastDrain != "" {
		ebitenutil.DebugPrintAt(screen, ui.game.lastDrain, 10, 22)
	}
	if cues := ui.game.sounds.Recent(); len(cues) > 0 {
		ebitenutil.DebugPrintAt(screen, "sounds: "+strings.Join(cues, ", "), 10, 38)
	}
}

func (ui *UISystem) drawInstructions(screen *ebiten.Image) {
	y := ui.game.config.GetScreenHeight() - 18
	ebitenutil.DebugPrintAt(screen,
		"S: Spellbook  P: Companion  B: Stock panel  C: Combat  T: Teach  Arrows: Page  1-9: Tabs  LMB: Cast  RMB: Ranks", 10, y)
}

func (ui *UISystem) drawBookPanel(screen *ebiten.Image) {
	g := ui.game
	p := g.panelRect()

	drawFilledRect(screen, p.x, p.y, p.w, p.h, UIColorPanelBg)
	drawRectBorder(screen, p.x, p.y, p.w, p.h, 2, UIColorPanelBorder)

	title := fmt.Sprintf("=== SPELLBOOK (%s) ===", strings.ToUpper(g.book.View().Category.String()))
	ebitenutil.DebugPrintAt(screen, title, p.x+10, p.y+8)

	// Close button
	drawFilledRect(screen, p.x+p.w-24, p.y+4, 20, 20, color.RGBA{120, 60, 60, 180})
	ebitenutil.DebugPrintAt(screen, "X", p.x+p.w-18, p.y+6)

	ui.drawTabs(screen)
	ui.drawSpellGrid(screen)
	ui.drawPageFooter(screen)
}

func (ui *UISystem) drawTabs(screen *ebiten.Image) {
	g := ui.game
	for i, tab := range g.book.TabButtons() {
		r := g.tabRect(i)
		active := g.book.View().Group == i
		if active {
			drawFilledRect(screen, r.x, r.y, r.w, r.h, UIColorTabActive)
			drawRectBorder(screen, r.x, r.y, r.w, r.h, 1, UIColorPanelBorder)
		} else {
			drawFilledRect(screen, r.x, r.y, r.w, r.h, UIColorTabIdle)
		}
		label := tab.Label()
		if tab.IsFlashing() && ui.flashOn() {
			drawDebugTextColored(screen, label, r.x+6, r.y+4, UIColorFlash)
		} else {
			ebitenutil.DebugPrintAt(screen, label, r.x+6, r.y+4)
		}
	}
}

func (ui *UISystem) drawSpellGrid(screen *ebiten.Image) {
	g := ui.game
	mouseX, mouseY := ebiten.CursorPosition()
	for i, btn := range g.book.SpellButtons() {
		if !btn.IsShown() {
			continue
		}
		r := g.spellButtonRect(i)
		ui.drawSpellButton(screen, btn, r, mouseX, mouseY)
	}
}

// drawSpellButton renders one spell button from its widget state.
func (ui *UISystem) drawSpellButton(screen *ebiten.Image, btn *widget.Handle, r rect, mouseX, mouseY int) {
	hover := mouseX >= r.x && mouseX < r.x+r.w && mouseY >= r.y && mouseY < r.y+r.h
	bg := UIColorButton
	switch {
	case !btn.IsEnabled():
		bg = UIColorButtonOff
	case btn.IsShaded():
		bg = UIColorCooldown
	case hover:
		bg = UIColorButtonHover
	}
	drawFilledRect(screen, r.x, r.y, r.w, r.h, bg)
	drawRectBorder(screen, r.x, r.y, r.w, r.h, 1, UIColorPanelBorder)

	label := btn.Label()
	if !btn.IsEnabled() {
		drawDebugTextColored(screen, label, r.x+6, r.y+2, UIColorTextDim)
	} else {
		ebitenutil.DebugPrintAt(screen, label, r.x+6, r.y+2)
	}
	if sub := btn.SubLabel(); sub != "" {
		drawDebugTextColored(screen, sub, r.x+6, r.y+r.h-18, UIColorTextDim)
	}
}

func (ui *UISystem) drawPageFooter(screen *ebiten.Image) {
	g := ui.game
	p := g.panelRect()
	page, maxPage := g.book.Page()

	prev, next := g.book.PageButtons()
	prevR := g.pageButtonRect(false)
	nextR := g.pageButtonRect(true)
	ui.drawSmallButton(screen, prevR, "< Prev", prev.IsEnabled())
	ui.drawSmallButton(screen, nextR, "Next >", next.IsEnabled())

	label := fmt.Sprintf("Page %d/%d", page, maxPage)
	drawCenteredDebugText(screen, label, p.x, prevR.y+4, p.w, 16)
}

func (ui *UISystem) drawSmallButton(screen *ebiten.Image, r rect, label string, enabled bool) {
	if enabled {
		drawFilledRect(screen, r.x, r.y, r.w, r.h, UIColorButton)
		drawCenteredDebugText(screen, label, r.x, r.y, r.w, r.h)
	} else {
		drawFilledRect(screen, r.x, r.y, r.w, r.h, UIColorButtonOff)
	}
}

func (ui *UISystem) drawFlyout(screen *ebiten.Image) {
	g := ui.game
	f := g.flyoutPanelRect()
	drawFilledRect(screen, f.x, f.y, f.w, f.h, UIColorPanelBg)
	drawRectBorder(screen, f.x, f.y, f.w, f.h, 2, UIColorPanelBorder)
	ebitenutil.DebugPrintAt(screen, "--- RANKS ---", f.x+8, f.y+4)

	mouseX, mouseY := ebiten.CursorPosition()
	for i, btn := range g.fly.Buttons() {
		if !btn.IsShown() {
			continue
		}
		ui.drawSpellButton(screen, btn, g.flyoutButtonRect(i), mouseX, mouseY)
	}
}

// drawBuiltinPanel sketches the host's stock panel so the mutual-exclusion
// and flash mirroring are visible in the demo.
func (ui *UISystem) drawBuiltinPanel(screen *ebiten.Image) {
	g := ui.game
	r := g.builtinPanelRect()
	drawFilledRect(screen, r.x, r.y, r.w, r.h, UIColorBuiltinBg)
	drawRectBorder(screen, r.x, r.y, r.w, r.h, 2, UIColorBuiltinBorder)
	ebitenutil.DebugPrintAt(screen, "STOCK SPELLBOOK (host)", r.x+10, r.y+8)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("category: %s", g.builtin.Category()), r.x+10, r.y+26)

	for i := 0; i < g.sim.GroupCount(g.builtin.Category()); i++ {
		y := r.y + 48 + i*20
		name := g.sim.GroupName(g.builtin.Category(), i)
		flashing := g.builtin.Category() == host.CategoryPlayer &&
			g.builtin.FlashHandle(i).IsFlashing() && ui.flashOn()
		if flashing {
			drawColoredTextSegments(screen, r.x+14, y, []coloredTextSegment{
				{name, color.White},
				{" *NEW*", UIColorFlash},
			})
		} else {
			ebitenutil.DebugPrintAt(screen, name, r.x+14, y)
		}
	}
}

type coloredTextSegment struct {
	text  string
	color color.Color
}

func drawColoredTextSegments(screen *ebiten.Image, x, y int, segments []coloredTextSegment) {
	face := basicfont.Face7x13
	baseline := y + face.Ascent
	curX := x
	for _, seg := range segments {
		ebitext.Draw(screen, seg.text, face, curX, baseline, seg.color)
		curX += font.MeasureString(face, seg.text).Round()
	}
}

const (
	debugTextCharWidth  = 6
	debugTextCharHeight = 16
)

var (
	debugTextScratch  *ebiten.Image
	debugTextScratchW int
	debugTextScratchH int
)

func debugTextWidth(text string) int {
	return utf8.RuneCountInString(text) * debugTextCharWidth
}

func drawCenteredDebugText(screen *ebiten.Image, text string, x, y, w, h int) {
	if text == "" {
		return
	}
	textW := debugTextWidth(text)
	textH := debugTextCharHeight
	drawX := x + (w-textW)/2
	drawY := y + (h-textH)/2
	ebitenutil.DebugPrintAt(screen, text, drawX, drawY)
}

func ensureDebugTextScratch(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	if debugTextScratch == nil || debugTextScratchW < width || debugTextScratchH < height {
		if debugTextScratchW < width {
			debugTextScratchW = width
		}
		if debugTextScratchH < height {
			debugTextScratchH = height
		}
		debugTextScratch = ebiten.NewImage(debugTextScratchW, debugTextScratchH)
	}
}

func drawDebugTextColored(screen *ebiten.Image, text string, x, y int, col color.Color) {
	if text == "" {
		return
	}
	w := debugTextWidth(text) + 2
	h := debugTextCharHeight
	ensureDebugTextScratch(w, h)
	debugTextScratch.Fill(color.RGBA{0, 0, 0, 0})

	// Offset by -1 so the rendered text aligns with DebugPrintAt's left edge.
	ebitenutil.DebugPrintAt(debugTextScratch, text, -1, 0)

	opts := &ebiten.DrawImageOptions{}
	r, g, b, a := col.RGBA()
	opts.ColorScale.Scale(float32(r)/65535, float32(g)/65535, float32(b)/65535, float32(a)/65535)
	opts.GeoM.Translate(float64(x), float64(y))
	screen.DrawImage(debugTextScratch, opts)
}

func drawFilledRect(dst *ebiten.Image, x, y, w, h int, clr color.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	vector.DrawFilledRect(dst, float32(x), float32(y), float32(w), float32(h), clr, false)
}

// drawRectBorder draws a rectangle border of given thickness and color
func drawRectBorder(dst *ebiten.Image, x, y, w, h, thickness int, clr color.Color) {
	// Top border
	vector.DrawFilledRect(dst, float32(x-thickness), float32(y-thickness), float32(w+2*thickness), float32(thickness), clr, false)
	// Bottom border
	vector.DrawFilledRect(dst, float32(x-thickness), float32(y+h), float32(w+2*thickness), float32(thickness), clr, false)
	// Left border
	vector.DrawFilledRect(dst, float32(x-thickness), float32(y), float32(thickness), float32(h), clr, false)
	// Right border
	vector.DrawFilledRect(dst, float32(x+w), float32(y), float32(thickness), float32(h), clr, false)
}
