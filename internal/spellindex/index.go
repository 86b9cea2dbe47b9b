package spellindex

import (
	"spelltome/internal/host"
	"spelltome/internal/mathutil"
)

// Entry is one visually distinct spell in the compact sequence. Rep is the
// raw slot of its highest known rank.
type Entry struct {
	Rep host.SlotID
}

// Index holds the compact, highest-rank-only view of one (category, group)
// range. It is rebuilt in full on every page or group change rather than
// patched incrementally, so host-side renumbering can never leave it stale.
type Index struct {
	oracle   host.SpellOracle
	perPage  int
	category host.Category
	group    int
	offset   int // raw slot offset preceding the range, from the last rebuild
	entries  []Entry
}

// New creates an index over the given oracle. perPage is the number of
// compact entries shown per page.
func New(oracle host.SpellOracle, perPage int) *Index {
	if oracle == nil {
		panic("spellindex: New requires a non-nil oracle")
	}
	if perPage < 1 {
		panic("spellindex: New requires perPage >= 1")
	}
	return &Index{oracle: oracle, perPage: perPage}
}

// Rebuild scans the raw slot range of (cat, group) and rebuilds the compact
// sequence. Consecutive raw slots sharing a display name are ranks of the
// same spell; only the last (highest) slot survives. A nameless slot ends
// the scan early.
func (x *Index) Rebuild(cat host.Category, group int) {
	start, count := x.oracle.QueryCategoryRange(cat, group)
	x.category = cat
	x.group = group
	x.offset = start
	x.entries = x.entries[:0]

	prevName := ""
	for i := 1; i <= count; i++ {
		raw := host.SlotID(start + i)
		disp, ok := x.oracle.QuerySpellDisplay(raw, cat)
		if !ok || disp.Name == "" {
			break
		}
		if disp.Name == prevName && len(x.entries) > 0 {
			x.entries[len(x.entries)-1].Rep = raw
			continue
		}
		x.entries = append(x.entries, Entry{Rep: raw})
		prevName = disp.Name
	}
}

// EntryCount returns the length of the compact sequence.
func (x *Index) EntryCount() int {
	return len(x.entries)
}

// MaxPage returns the page count, never below 1 even for an empty group.
func (x *Index) MaxPage() int {
	return mathutil.IntMax(1, mathutil.IntCeilDiv(len(x.entries), x.perPage))
}

// ClampPage pulls a remembered page back into [1, MaxPage] after a rebuild.
func (x *Index) ClampPage(page int) int {
	return mathutil.IntClamp(page, 1, x.MaxPage())
}

// Resolve maps a 1-based on-page button number plus a page to the compact
// entry under it. It returns the representative (highest rank) slot and the
// lowest rank slot of that spell, or ok=false when the position is past the
// end of the sequence. That happens legitimately on the last page, so it is
// not an error; a non-positive position or page is a caller bug.
func (x *Index) Resolve(displaySlot, page int) (rep, lowest host.SlotID, ok bool) {
	if displaySlot < 1 || page < 1 {
		panic("spellindex: Resolve requires positive displaySlot and page")
	}
	idx := displaySlot + x.perPage*(page-1)
	if idx > len(x.entries) {
		return host.NoSlot, host.NoSlot, false
	}
	rep = x.entries[idx-1].Rep
	if idx == 1 {
		lowest = host.SlotID(x.offset + 1)
	} else {
		lowest = x.entries[idx-2].Rep + 1
	}
	return rep, lowest, true
}
