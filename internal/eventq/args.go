package eventq

import "reflect"

// absentMarker is the type of Absent; unexported so the only absent value is
// the package sentinel.
type absentMarker struct{}

// Absent marks a positional gap inside ArgsOf. A gap keeps its position in
// the argument list and counts toward the recorded arity.
var Absent = absentMarker{}

// argSlot is one positional argument: either a present value or a recorded
// gap.
type argSlot struct {
	present bool
	value   any
}

// Args is an ordered argument list with an explicit recorded arity. Gaps
// (absent mid-list values) are preserved by position, never compacted, so a
// replayed delivery sees exactly the argument shape the original one had.
type Args struct {
	slots []argSlot
}

// ArgsOf records the given values as an argument list. Pass Absent to record
// a positional gap.
func ArgsOf(vals ...any) Args {
	slots := make([]argSlot, len(vals))
	for i, v := range vals {
		if _, gap := v.(absentMarker); gap {
			slots[i] = argSlot{}
			continue
		}
		slots[i] = argSlot{present: true, value: v}
	}
	return Args{slots: slots}
}

// Arity returns the recorded argument count, gaps included.
func (a Args) Arity() int {
	return len(a.slots)
}

// At returns the value at 0-based position i and whether it is present.
// Positions outside the recorded arity are a caller bug.
func (a Args) At(i int) (any, bool) {
	if i < 0 || i >= len(a.slots) {
		panic("eventq: argument position out of range")
	}
	s := a.slots[i]
	return s.value, s.present
}

// Equal reports whether two argument lists have the same arity and, slot by
// slot, the same presence and value.
func (a Args) Equal(b Args) bool {
	if len(a.slots) != len(b.slots) {
		return false
	}
	for i := range a.slots {
		if a.slots[i].present != b.slots[i].present {
			return false
		}
		if !reflect.DeepEqual(a.slots[i].value, b.slots[i].value) {
			return false
		}
	}
	return true
}
