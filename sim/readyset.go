package sim

import "github.com/SanferD/ProcessScheduleSimulation/internal/orderedset"

// ReadySet pairs a scheduler-ordered set of PCBs with an age-ordered
// shadow set of cursors into it, kept size-synchronized on every
// push/pop so that per-tick aging (which must erase an arbitrary ready
// entry) stays O(log n) instead of a linear scan.
// Grounded on original_source/main.cpp's ready_age_t.
type ReadySet struct {
	ready   *orderedset.Set[*PCB]
	age     *orderedset.Set[*orderedset.Cursor[*PCB]]
	entries map[*PCB]readyEntry
}

// readyEntry records both cursors for a PCB currently on the ready
// set, so erasing it never needs a comparator-based re-search.
type readyEntry struct {
	readyCur *orderedset.Cursor[*PCB]
	ageCur   *orderedset.Cursor[*orderedset.Cursor[*PCB]]
}

// NewReadySet constructs a ReadySet whose ready queue is ordered by
// the comparator for kind.
func NewReadySet(kind SchedulerKind) *ReadySet {
	return &ReadySet{
		ready:   orderedset.New(ReadyComparatorFor(kind)),
		age:     orderedset.New(AgeCursorComparator),
		entries: make(map[*PCB]readyEntry),
	}
}

// Push inserts p into the ready set and its shadow age entry.
func (r *ReadySet) Push(p *PCB) {
	readyCur := r.ready.Insert(p)
	ageCur := r.age.Insert(readyCur)
	r.entries[p] = readyEntry{readyCur: readyCur, ageCur: ageCur}
	if r.ready.Size() != r.age.Size() {
		panic("sim: ready/age size mismatch after push")
	}
}

// Pop removes and discards the current minimum of the ready queue
// (and its corresponding age entry). Use PopMin to also retrieve it.
func (r *ReadySet) Pop() {
	r.PopMin()
}

// PopMin removes and returns the current minimum of the ready queue
// under its scheduler order, erasing its age entry too.
func (r *ReadySet) PopMin() *PCB {
	cur := r.ready.PeekMinCursor()
	if cur == nil {
		panic("sim: PopMin on empty ready set")
	}
	p := cur.Value()
	r.erase(p)
	return p
}

// Peek returns the current minimum of the ready queue without
// removing it. Calling Peek on an empty set is a programming error.
func (r *ReadySet) Peek() *PCB {
	return r.ready.PeekMin()
}

// PeekAgeMin returns the PCB referred to by the age-minimum entry. ok
// is false if the ready set is empty.
func (r *ReadySet) PeekAgeMin() (p *PCB, ok bool) {
	ageCur := r.age.PeekMinCursor()
	if ageCur == nil {
		return nil, false
	}
	return ageCur.Value().Value(), true
}

// EraseReadyEntry removes p's ready entry and its corresponding age
// entry. Used by the aging step, which must pull out a specific PCB
// rather than the ready-order minimum. p must currently be present in
// the ready set.
func (r *ReadySet) EraseReadyEntry(p *PCB) {
	r.erase(p)
}

// erase removes p's ready entry along with its paired age entry,
// asserting size equality throughout.
func (r *ReadySet) erase(p *PCB) {
	e, ok := r.entries[p]
	if !ok {
		panic("sim: PCB not present in ready set")
	}
	r.age.Erase(e.ageCur)
	r.ready.Erase(e.readyCur)
	delete(r.entries, p)
	if r.ready.Size() != r.age.Size() {
		panic("sim: ready/age size mismatch after erase")
	}
}

// Size returns the number of processes currently ready.
func (r *ReadySet) Size() int { return r.ready.Size() }

// Empty reports whether the ready set has no processes.
func (r *ReadySet) Empty() bool { return r.ready.Empty() }

// Iterate returns the ready processes in scheduler order. Used by the
// interactive dashboard and by the EDF per-pid wait accounting.
func (r *ReadySet) Iterate() []*PCB {
	return r.ready.Iterate()
}
