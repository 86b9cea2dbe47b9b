package game

import "spelltome/internal/mathutil"

// rect is an integer pixel rectangle.
type rect struct {
	x, y, w, h int
}

// Layout constants not worth configuring
const (
	panelHeaderHeight = 30
	panelFooterHeight = 36
	tabHeight         = 26
	flyoutGap         = 10
)

func (g *TomeGame) gridDims() (cols, rows int) {
	cols = g.config.UI.PanelColumns
	if cols < 1 {
		cols = 2
	}
	rows = mathutil.IntCeilDiv(g.config.GetSpellsPerPage(), cols)
	return cols, rows
}

// panelRect centers the compact panel on screen.
func (g *TomeGame) panelRect() rect {
	cols, rows := g.gridDims()
	bw := g.config.UI.ButtonWidth
	bh := g.config.UI.ButtonHeight
	sp := g.config.UI.ButtonSpacing

	w := cols*bw + (cols+1)*sp
	h := panelHeaderHeight + tabHeight + rows*(bh+sp) + sp + panelFooterHeight
	return rect{
		x: (g.config.GetScreenWidth() - w) / 2,
		y: (g.config.GetScreenHeight() - h) / 2,
		w: w,
		h: h,
	}
}

func (g *TomeGame) tabRect(i int) rect {
	p := g.panelRect()
	count := len(g.book.TabButtons())
	if count == 0 {
		count = 1
	}
	w := mathutil.IntMin(96, (p.w-8)/count)
	return rect{x: p.x + 4 + i*w, y: p.y + panelHeaderHeight, w: w - 2, h: tabHeight - 4}
}

func (g *TomeGame) spellButtonRect(i int) rect {
	p := g.panelRect()
	cols, _ := g.gridDims()
	bw := g.config.UI.ButtonWidth
	bh := g.config.UI.ButtonHeight
	sp := g.config.UI.ButtonSpacing

	col := i % cols
	row := i / cols
	return rect{
		x: p.x + sp + col*(bw+sp),
		y: p.y + panelHeaderHeight + tabHeight + sp + row*(bh+sp),
		w: bw,
		h: bh,
	}
}

func (g *TomeGame) pageButtonRect(next bool) rect {
	p := g.panelRect()
	y := p.y + p.h - panelFooterHeight + 6
	if next {
		return rect{x: p.x + p.w - 60, y: y, w: 52, h: 24}
	}
	return rect{x: p.x + 8, y: y, w: 52, h: 24}
}

// flyoutPanelRect hangs the rank list off the right edge of the anchored
// button's row.
func (g *TomeGame) flyoutPanelRect() rect {
	p := g.panelRect()
	shown := 0
	for _, b := range g.fly.Buttons() {
		if b.IsShown() {
			shown++
		}
	}
	bh := g.config.UI.ButtonHeight
	sp := g.config.UI.ButtonSpacing
	h := shown*(bh+sp) + sp + 22
	return rect{x: p.x + p.w + flyoutGap, y: p.y + panelHeaderHeight, w: g.config.UI.ButtonWidth + 2*sp, h: h}
}

func (g *TomeGame) flyoutButtonRect(i int) rect {
	f := g.flyoutPanelRect()
	bh := g.config.UI.ButtonHeight
	sp := g.config.UI.ButtonSpacing
	return rect{x: f.x + sp, y: f.y + 22 + sp + i*(bh+sp), w: g.config.UI.ButtonWidth, h: bh}
}

// builtinPanelRect places the simulated stock panel in the lower-left
// corner, clearly apart from the compact one.
func (g *TomeGame) builtinPanelRect() rect {
	return rect{x: 16, y: g.config.GetScreenHeight() - 196, w: 280, h: 170}
}
