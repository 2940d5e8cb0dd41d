package trace

import (
	"fmt"
	"io"
)

// ProcessView is a snapshot of one process for dashboard rendering.
// Kernel/user and which optional columns apply are derived by the
// caller; Dashboard only formats what it's given.
type ProcessView struct {
	Pid        int
	Kernel     bool
	State      string // "new", "ready", "io", or "running"
	Pri        int
	Bst        int
	Arr        int
	ClockStamp int
	Maxed      bool
	IO         int
	IORemain   int // only meaningful when State == "io"
	Dline      int
}

// DashboardInput is everything RenderDashboard needs for one tick's
// snapshot. Grounded on original_source/main.cpp's print_states.
type DashboardInput struct {
	Clock            int
	Running          bool
	RunningPid       int
	QuantumRemaining int
	Terminated       []int
	Processes        []ProcessView // running (if any), then new, ready, io, in that order
	SchedulerName    string        // "PRIORITY", "EDF", "FIFO", "SJF"
	KernelQuantum    int
	UserQuantum      int
	AgeTime          int
}

// RenderDashboard writes the interactive per-tick dashboard: the
// running process and its remaining quantum, terminated pids, the I/O
// queue with remaining ticks, and a per-process table of state, pid,
// priority (PRIORITY only), burst, arrival, clock_stamp (PRIORITY
// only), and I/O duration or deadline (scheduler-dependent).
func RenderDashboard(w io.Writer, in DashboardInput) {
	fmt.Fprintf(w, "*** Now at clock %d u%d k%d a%d ***\n",
		in.Clock, in.UserQuantum, in.KernelQuantum, in.AgeTime)
	fmt.Fprintln(w)

	fmt.Fprint(w, "RUNNING:\t")
	if in.Running {
		fmt.Fprintf(w, "pid: %d (tq: %d)", in.RunningPid, in.QuantumRemaining)
	} else {
		fmt.Fprint(w, "none")
	}
	fmt.Fprintln(w)

	fmt.Fprint(w, "TERMINATED:")
	for _, pid := range in.Terminated {
		fmt.Fprintf(w, "\t%d", pid)
	}
	fmt.Fprintln(w)

	fmt.Fprint(w, "IO-QUEUE:")
	for _, p := range in.Processes {
		if p.State == "io" {
			fmt.Fprintf(w, "\t%d(%d)", p.Pid, p.IORemain)
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w)

	fmt.Fprint(w, "STATE:\t")
	for _, p := range in.Processes {
		fmt.Fprintf(w, "\t%s", p.State)
	}
	fmt.Fprintln(w)

	fmt.Fprint(w, "PID:\t")
	for _, p := range in.Processes {
		flag := 'u'
		if p.Kernel {
			flag = 'k'
		}
		fmt.Fprintf(w, "\t%d(%c)", p.Pid, flag)
	}
	fmt.Fprintln(w)

	if in.SchedulerName == "PRIORITY" {
		fmt.Fprint(w, "PRIORITY:")
		for _, p := range in.Processes {
			fmt.Fprintf(w, "\t%d", p.Pri)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprint(w, "BURST:\t")
	for _, p := range in.Processes {
		fmt.Fprintf(w, "\t%d", p.Bst)
	}
	fmt.Fprintln(w)

	fmt.Fprint(w, "ARRIVAL:")
	for _, p := range in.Processes {
		fmt.Fprintf(w, "\t%d", p.Arr)
	}
	fmt.Fprintln(w)

	if in.SchedulerName == "PRIORITY" {
		fmt.Fprint(w, "Clock:\t")
		for _, p := range in.Processes {
			if p.Maxed {
				fmt.Fprint(w, "\t-1")
			} else {
				fmt.Fprintf(w, "\t%d", p.ClockStamp)
			}
		}
		fmt.Fprintln(w)
	}

	if in.SchedulerName != "EDF" {
		fmt.Fprint(w, "IO:\t")
		for _, p := range in.Processes {
			fmt.Fprintf(w, "\t%d", p.IO)
		}
		fmt.Fprintln(w)
	}

	if in.SchedulerName == "EDF" {
		fmt.Fprint(w, "DLINE:\t")
		for _, p := range in.Processes {
			fmt.Fprintf(w, "\t%d", p.Dline)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w)
}
