package host

import "fmt"

// catSlot keys cooldown state by category and slot.
type catSlot struct {
	cat  Category
	slot SlotID
}

// SimHost is a stand-in for the game client: it answers the oracle queries
// from the loaded SpellTable, tracks combat state and cooldowns, and
// delivers events to a single listener the way the real host delivers them
// to addon handlers (one at a time, run to completion).
type SimHost struct {
	table    *SpellTable
	maxSlots int
	listener Listener
	inCombat bool
	frame    int
	cooldown map[catSlot]int // expiry frame per slot
}

// NewSimHost wraps a loaded spell table. maxSlots is the highest slot id the
// host will ever assign per category; nothing is taught past it.
func NewSimHost(table *SpellTable, maxSlots int) *SimHost {
	if maxSlots < 1 {
		panic("host: NewSimHost requires maxSlots >= 1")
	}
	return &SimHost{table: table, maxSlots: maxSlots, cooldown: make(map[catSlot]int)}
}

// SetListener installs the event sink. Only one listener is supported.
func (s *SimHost) SetListener(fn Listener) {
	s.listener = fn
}

func (s *SimHost) emit(event string, args ...any) {
	if s.listener != nil {
		s.listener(event, args)
	}
}

// groupSpells returns the spell entries of a (category, group) range.
func (s *SimHost) groupSpells(cat Category, group int) []SpellEntry {
	if cat == CategoryCompanion {
		return s.table.Companion.Spells
	}
	if group < 0 || group >= len(s.table.Player.Groups) {
		return nil
	}
	return s.table.Player.Groups[group].Spells
}

func rankCount(spells []SpellEntry) int {
	n := 0
	for _, sp := range spells {
		n += sp.Ranks
	}
	return n
}

// QueryCategoryRange implements SpellOracle.
func (s *SimHost) QueryCategoryRange(cat Category, group int) (start, count int) {
	if cat == CategoryCompanion {
		return 0, rankCount(s.table.Companion.Spells)
	}
	for g := 0; g < group && g < len(s.table.Player.Groups); g++ {
		start += rankCount(s.table.Player.Groups[g].Spells)
	}
	return start, rankCount(s.groupSpells(cat, group))
}

// QuerySpellDisplay implements SpellOracle. Slot numbering is contiguous
// across the whole category: every rank of every spell occupies one slot, in
// group order, spells in order, ranks ascending.
func (s *SimHost) QuerySpellDisplay(slot SlotID, cat Category) (SpellDisplay, bool) {
	if slot < 1 || int(slot) > s.maxSlots {
		return SpellDisplay{}, false
	}
	var spells []SpellEntry
	if cat == CategoryCompanion {
		spells = s.table.Companion.Spells
	} else {
		for _, g := range s.table.Player.Groups {
			spells = append(spells, g.Spells...)
		}
	}
	at := int(slot)
	for _, sp := range spells {
		if at <= sp.Ranks {
			return SpellDisplay{
				Name:       sp.Name,
				SubName:    fmt.Sprintf("Rank %d", at),
				Icon:       sp.Icon,
				OnCooldown: s.cooldown[catSlot{cat, slot}] > s.frame,
			}, true
		}
		at -= sp.Ranks
	}
	return SpellDisplay{}, false
}

// GroupCount implements SpellOracle.
func (s *SimHost) GroupCount(cat Category) int {
	if cat == CategoryCompanion {
		return 1
	}
	return len(s.table.Player.Groups)
}

// GroupName implements SpellOracle.
func (s *SimHost) GroupName(cat Category, group int) string {
	if cat == CategoryCompanion {
		return "Companion"
	}
	if group < 0 || group >= len(s.table.Player.Groups) {
		return "?"
	}
	return s.table.Player.Groups[group].Name
}

// InCombat reports the simulated combat state.
func (s *SimHost) InCombat() bool {
	return s.inCombat
}

// SetCombat flips the simulated combat state, emitting the matching edge
// event. Repeated same-value calls emit nothing.
func (s *SimHost) SetCombat(v bool) {
	if v == s.inCombat {
		return
	}
	s.inCombat = v
	if v {
		s.emit(EventCombatStart)
	} else {
		s.emit(EventCombatEnd)
	}
}

// StartCooldown puts a slot on cooldown for the given number of frames.
func (s *SimHost) StartCooldown(cat Category, slot SlotID, frames int) {
	s.cooldown[catSlot{cat, slot}] = s.frame + frames
	s.emit(EventCooldownTick, int(slot))
}

// TeachSpell grants one more rank of the last spell in a player group, which
// renumbers every slot after it. Emits the learn notification followed by
// the renumbering notice, in that order, as the real client does. Refused
// once the category has no slot left under the assignment bound.
func (s *SimHost) TeachSpell(group int) {
	if group < 0 || group >= len(s.table.Player.Groups) {
		return
	}
	total := 0
	for _, g := range s.table.Player.Groups {
		total += rankCount(g.Spells)
	}
	if total >= s.maxSlots {
		return
	}
	spells := s.table.Player.Groups[group].Spells
	if len(spells) == 0 {
		return
	}
	spells[len(spells)-1].Ranks++
	s.emit(EventAbilityLearnt, group)
	s.emit(EventSlotsChanged)
}

// Tick advances simulated time one frame. While any cooldown is running a
// cooldown tick event fires every frame, which is exactly the spam the
// replay queue's category de-duplication exists for.
func (s *SimHost) Tick() {
	s.frame++
	active := false
	for key, until := range s.cooldown {
		if until > s.frame {
			active = true
		} else {
			delete(s.cooldown, key)
		}
	}
	if active {
		s.emit(EventCooldownTick)
	}
}
