package spellindex

import (
	"fmt"
	"testing"

	"spelltome/internal/host"
)

// stubOracle answers queries from a literal per-slot name table. The raw
// range is [start+1, start+len(names)]; an empty name means no spell there.
type stubOracle struct {
	start int
	names []string
}

func (o *stubOracle) QuerySpellDisplay(slot host.SlotID, cat host.Category) (host.SpellDisplay, bool) {
	i := int(slot) - o.start - 1
	if i < 0 || i >= len(o.names) || o.names[i] == "" {
		return host.SpellDisplay{}, false
	}
	return host.SpellDisplay{Name: o.names[i]}, true
}

func (o *stubOracle) QueryCategoryRange(cat host.Category, group int) (int, int) {
	return o.start, len(o.names)
}

func (o *stubOracle) GroupCount(cat host.Category) int { return 1 }

func (o *stubOracle) GroupName(cat host.Category, group int) string { return "Stub" }

func TestRebuildKeepsHighestRankPerName(t *testing.T) {
	// Raw slots 101..104 named A,A,B,A: A collapses to 102, then B at 103,
	// then a fresh A entry at 104.
	o := &stubOracle{start: 100, names: []string{"A", "A", "B", "A"}}
	x := New(o, 12)
	x.Rebuild(host.CategoryPlayer, 0)

	if got := x.EntryCount(); got != 3 {
		t.Fatalf("EntryCount() = %d, want 3", got)
	}

	cases := []struct {
		displaySlot int
		wantRep     host.SlotID
		wantLowest  host.SlotID
	}{
		{1, 102, 101},
		{2, 103, 103},
		{3, 104, 104},
	}
	for _, c := range cases {
		rep, lowest, ok := x.Resolve(c.displaySlot, 1)
		if !ok {
			t.Fatalf("Resolve(%d, 1) not found", c.displaySlot)
		}
		if rep != c.wantRep || lowest != c.wantLowest {
			t.Errorf("Resolve(%d, 1) = (%d, %d), want (%d, %d)",
				c.displaySlot, rep, lowest, c.wantRep, c.wantLowest)
		}
	}
}

func TestRebuildCountsDistinctNames(t *testing.T) {
	o := &stubOracle{names: []string{"A", "A", "A", "B", "C", "C"}}
	x := New(o, 12)
	x.Rebuild(host.CategoryPlayer, 0)

	if got := x.EntryCount(); got != 3 {
		t.Errorf("EntryCount() = %d, want 3 distinct names", got)
	}
	rep, lowest, ok := x.Resolve(1, 1)
	if !ok || rep != 3 || lowest != 1 {
		t.Errorf("Resolve(1, 1) = (%d, %d, %v), want (3, 1, true)", rep, lowest, ok)
	}
}

func TestNamelessSlotTerminatesScan(t *testing.T) {
	o := &stubOracle{names: []string{"A", "", "B"}}
	x := New(o, 12)
	x.Rebuild(host.CategoryPlayer, 0)

	if got := x.EntryCount(); got != 1 {
		t.Errorf("EntryCount() = %d, want 1 (scan stops at the hole)", got)
	}
}

func TestEmptyGroupStillHasOnePage(t *testing.T) {
	o := &stubOracle{}
	x := New(o, 12)
	x.Rebuild(host.CategoryPlayer, 0)

	if got := x.EntryCount(); got != 0 {
		t.Fatalf("EntryCount() = %d, want 0", got)
	}
	if got := x.MaxPage(); got != 1 {
		t.Errorf("MaxPage() = %d, want 1 (never 0 of 0)", got)
	}
	if _, _, ok := x.Resolve(1, 1); ok {
		t.Error("Resolve on empty index should report not found")
	}
}

func TestMaxPageAndClamp(t *testing.T) {
	names := make([]string, 25)
	for i := range names {
		names[i] = fmt.Sprintf("Spell%d", i)
	}
	o := &stubOracle{names: names}
	x := New(o, 12)
	x.Rebuild(host.CategoryPlayer, 0)

	if got := x.MaxPage(); got != 3 {
		t.Fatalf("MaxPage() = %d, want 3", got)
	}
	cases := []struct{ in, want int }{
		{0, 1},
		{1, 1},
		{3, 3},
		{5, 3},
	}
	for _, c := range cases {
		if got := x.ClampPage(c.in); got != c.want {
			t.Errorf("ClampPage(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestResolveAcrossPages(t *testing.T) {
	names := make([]string, 25)
	for i := range names {
		names[i] = fmt.Sprintf("Spell%d", i)
	}
	x := New(&stubOracle{names: names}, 12)
	x.Rebuild(host.CategoryPlayer, 0)

	// Button 1 on page 2 is compact entry 13, raw slot 13.
	rep, lowest, ok := x.Resolve(1, 2)
	if !ok || rep != 13 || lowest != 13 {
		t.Errorf("Resolve(1, 2) = (%d, %d, %v), want (13, 13, true)", rep, lowest, ok)
	}
	// Button 2 on page 3 is entry 26: past the end.
	if _, _, ok := x.Resolve(2, 3); ok {
		t.Error("Resolve past the sequence end should report not found")
	}
}

func TestRebuildDiscardsPreviousEntries(t *testing.T) {
	o := &stubOracle{names: []string{"A", "B", "C"}}
	x := New(o, 12)
	x.Rebuild(host.CategoryPlayer, 0)
	if x.EntryCount() != 3 {
		t.Fatalf("EntryCount() = %d, want 3", x.EntryCount())
	}

	o.names = []string{"A"}
	x.Rebuild(host.CategoryPlayer, 0)
	if x.EntryCount() != 1 {
		t.Errorf("EntryCount() after shrink = %d, want 1", x.EntryCount())
	}
}

func TestResolveRejectsBadInput(t *testing.T) {
	x := New(&stubOracle{names: []string{"A"}}, 12)
	x.Rebuild(host.CategoryPlayer, 0)

	assertPanics := func(name string, fn func()) {
		defer func() {
			if recover() == nil {
				t.Errorf("%s: expected panic", name)
			}
		}()
		fn()
	}
	assertPanics("zero displaySlot", func() { x.Resolve(0, 1) })
	assertPanics("zero page", func() { x.Resolve(1, 0) })
}

func TestViewStateRemembersPages(t *testing.T) {
	v := NewViewState()
	if got := v.Page(2); got != 1 {
		t.Fatalf("default page = %d, want 1", got)
	}
	v.SetPage(2, 4)
	v.SetPage(0, 2)
	if got := v.Page(2); got != 4 {
		t.Errorf("Page(2) = %d, want 4", got)
	}
	if got := v.Page(0); got != 2 {
		t.Errorf("Page(0) = %d, want 2", got)
	}
	if got := v.Page(1); got != 1 {
		t.Errorf("Page(1) = %d, want 1", got)
	}
}
