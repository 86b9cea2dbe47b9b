package lockdown

// Observer is called on every lockdown transition with the new state.
type Observer func(locked bool)

type registration struct {
	id string
	fn Observer
}

// Gate tracks whether the host currently forbids frame mutation ("combat").
// The host reports its combat state through SetInCombat; observers fire only
// on actual edges, never on repeated reports of the same value. Dispatch is
// single-threaded (host-driven), so no locking.
type Gate struct {
	locked    bool
	observers []registration
}

// NewGate returns an open (unlocked) gate.
func NewGate() *Gate {
	return &Gate{}
}

// InCombat reports whether mutation is currently forbidden.
func (g *Gate) InCombat() bool {
	return g.locked
}

// OnTransition registers an observer under a unique id. Registering the same
// id again replaces the previous observer in place, keeping its position in
// the firing order. An empty id or nil observer is a caller bug.
func (g *Gate) OnTransition(id string, fn Observer) {
	if id == "" || fn == nil {
		panic("lockdown: OnTransition requires a non-empty id and a non-nil observer")
	}
	for i := range g.observers {
		if g.observers[i].id == id {
			g.observers[i].fn = fn
			return
		}
	}
	g.observers = append(g.observers, registration{id: id, fn: fn})
}

// SetInCombat records the host-reported combat state. Observers run
// synchronously, in registration order, only when the value actually changed.
func (g *Gate) SetInCombat(locked bool) {
	if locked == g.locked {
		return
	}
	g.locked = locked
	for _, reg := range g.observers {
		reg.fn(locked)
	}
}
