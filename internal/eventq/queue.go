package eventq

// Handler processes one event delivery, immediately or on replay. Handler
// identities take part in de-duplication, so implementations must be
// comparable values — in practice, pointers to the owning component.
type Handler interface {
	HandleEvent(target any, event string, args Args)
}

// item is one captured delivery awaiting replay.
type item struct {
	handler Handler
	target  any
	event   string
	args    Args
}

// dedupKey identifies one (event, target, handler) triple for category
// de-duplication of spammy events.
type dedupKey struct {
	event   string
	target  any
	handler Handler
}

// Queue buffers event deliveries that arrive while the lockdown gate is
// closed and replays them in original order once it opens. Two layers of
// de-duplication keep sustained lockdowns from turning the replay into a
// stampede: runs of byte-identical deliveries collapse to one, and events on
// the spammy allow-list (cooldown ticks and the like, which arrive at
// hundreds per second and ignore their arguments anyway) collapse to one
// dispatch per (event, target, handler) triple per drain.
type Queue struct {
	buf    []item
	spammy map[string]bool
}

// New returns an empty queue. spammyEvents is the allow-list of event names
// treated as high-frequency and argument-insensitive.
func New(spammyEvents []string) *Queue {
	spammy := make(map[string]bool, len(spammyEvents))
	for _, name := range spammyEvents {
		spammy[name] = true
	}
	return &Queue{spammy: spammy}
}

// Enqueue captures one delivery for later replay. Handler and event name are
// required; a nil handler or empty event name is a caller bug.
func (q *Queue) Enqueue(h Handler, target any, event string, args Args) {
	if h == nil {
		panic("eventq: Enqueue requires a non-nil handler")
	}
	if event == "" {
		panic("eventq: Enqueue requires a non-empty event name")
	}
	q.buf = append(q.buf, item{handler: h, target: target, event: event, args: args})
}

// Len returns the number of captured deliveries awaiting replay.
func (q *Queue) Len() int {
	return len(q.buf)
}

// Drain replays every captured delivery in original order, skipping
// duplicates, and returns how many were dispatched out of how many were
// captured. The buffer is detached before iteration, so enqueues triggered
// by a dispatched handler land in a fresh buffer and wait for the next
// drain; a drain can never re-enter itself.
func (q *Queue) Drain() (dispatched, total int) {
	captured := q.buf
	q.buf = nil
	total = len(captured)

	var seen map[dedupKey]bool
	for i, it := range captured {
		// Runs of identical deliveries collapse to the first. Only the
		// immediate predecessor is compared; interleaved duplicates are
		// deliberately left alone.
		if i > 0 && sameDelivery(captured[i-1], it) {
			continue
		}
		if q.spammy[it.event] {
			key := dedupKey{event: it.event, target: it.target, handler: it.handler}
			if seen == nil {
				seen = make(map[dedupKey]bool)
			}
			if seen[key] {
				continue
			}
			seen[key] = true
		}
		it.handler.HandleEvent(it.target, it.event, it.args)
		dispatched++
	}
	return dispatched, total
}

// sameDelivery reports whether two captured deliveries are identical in
// handler, target, event name and full gap-preserving argument list.
func sameDelivery(a, b item) bool {
	return a.handler == b.handler &&
		a.target == b.target &&
		a.event == b.event &&
		a.args.Equal(b.args)
}
