package sim

import "github.com/SanferD/ProcessScheduleSimulation/internal/orderedset"

// PCBComparator orders *PCB values. All five comparators below are
// total orders with deterministic pid tie-breaks, grounded on
// original_source/proc_queues.h's mycmp_* functors.
type PCBComparator = orderedset.Comparator[*PCB]

// ArrivalComparator orders the new-arrivals queue: by Arr ascending,
// ties by Pid ascending. Only the minimum is ever consulted.
func ArrivalComparator(a, b *PCB) int {
	if a.Arr != b.Arr {
		return b.Arr - a.Arr
	}
	return b.Pid - a.Pid
}

// PriorityComparator orders the ready queue for the PRIORITY
// scheduler: by Pri descending (higher pops first), ties by
// ClockStamp ascending (older first), ties by Pid ascending.
func PriorityComparator(a, b *PCB) int {
	if a.Pri != b.Pri {
		return a.Pri - b.Pri
	}
	if a.ClockStamp != b.ClockStamp {
		return b.ClockStamp - a.ClockStamp
	}
	return b.Pid - a.Pid
}

// FIFOComparator orders the ready queue for the FIFO scheduler: by
// ClockStamp ascending, ties by Pid ascending.
func FIFOComparator(a, b *PCB) int {
	if a.ClockStamp != b.ClockStamp {
		return b.ClockStamp - a.ClockStamp
	}
	return b.Pid - a.Pid
}

// SJFComparator orders the ready queue for the SJF scheduler: by Bst
// ascending, ties by ClockStamp ascending, ties by Pid ascending.
func SJFComparator(a, b *PCB) int {
	if a.Bst != b.Bst {
		return b.Bst - a.Bst
	}
	if a.ClockStamp != b.ClockStamp {
		return b.ClockStamp - a.ClockStamp
	}
	return b.Pid - a.Pid
}

// EDFComparator orders the ready queue for the EDF scheduler: by Dline
// ascending, ties by Pid ascending.
func EDFComparator(a, b *PCB) int {
	if a.Dline != b.Dline {
		return b.Dline - a.Dline
	}
	return b.Pid - a.Pid
}

// effectivePriority interleaves user and kernel priorities so that 49
// (user ceiling) and 99 (kernel ceiling) are the two largest values:
// rank = pri*2 for user, pri*2-99 for kernel.
func effectivePriority(pri int) int {
	if IsKernel(pri) {
		return pri*2 - 99
	}
	return pri * 2
}

// AgeCursorComparator orders cursors into the ready set by age: by
// Maxed ascending (non-maxed first — this replaces the MAX_AGED
// sentinel arithmetic of the original comparator; a maxed PCB must
// never be selected for aging again, so it always sorts last), ties
// by ClockStamp ascending (older first), ties by effective priority
// ascending, ties by Pid ascending.
func AgeCursorComparator(a, b *orderedset.Cursor[*PCB]) int {
	pa, pb := a.Value(), b.Value()
	if pa.Maxed != pb.Maxed {
		if pb.Maxed {
			return 1
		}
		return -1
	}
	if pa.ClockStamp != pb.ClockStamp {
		return pb.ClockStamp - pa.ClockStamp
	}
	if ra, rb := effectivePriority(pa.Pri), effectivePriority(pb.Pri); ra != rb {
		return rb - ra
	}
	return pb.Pid - pa.Pid
}

// ReadyComparatorFor returns the ready-queue comparator for a
// scheduling discipline.
func ReadyComparatorFor(kind SchedulerKind) PCBComparator {
	switch kind {
	case FIFO:
		return FIFOComparator
	case SJF:
		return SJFComparator
	case PRIORITY:
		return PriorityComparator
	case EDF:
		return EDFComparator
	default:
		panic("sim: unknown scheduler kind")
	}
}
