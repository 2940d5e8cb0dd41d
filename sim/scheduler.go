package sim

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/SanferD/ProcessScheduleSimulation/internal/orderedset"
	"github.com/SanferD/ProcessScheduleSimulation/sim/trace"
)

// Simulation is the per-tick state machine described in spec.md §4.5:
// it coordinates arrivals, I/O progression, aging, running-process
// bookkeeping, dispatch, EDF admission, and statistics, and owns the
// trace output. Grounded on original_source/main.cpp's run_scheduler.
type Simulation struct {
	cfg Config

	newQ  *orderedset.Set[*PCB]
	ready *ReadySet
	io    []*PCB // I/O list, kept in arrival-to-io-list order

	running bool
	x       *PCB
	tq      int
	orgTQ   int
	clock   int

	npInitial  int
	terminated map[int]bool
	wait       map[int]int // EDF only: per-pid ready-wait counter

	awtAccum float64
	attAccum float64

	tw     *trace.Writer
	stdout io.Writer
	stdin  *bufio.Scanner
}

// NewSimulation constructs a Simulation over newQ (the arrival-ordered
// workload), writing its trace to tw. stdout/stdin default to
// os.Stdout/os.Stdin and are only exercised in interactive mode; tests
// may override them via WithIO.
func NewSimulation(cfg Config, newQ *orderedset.Set[*PCB], tw *trace.Writer) *Simulation {
	return &Simulation{
		cfg:        cfg,
		newQ:       newQ,
		ready:      NewReadySet(cfg.Scheduler),
		npInitial:  newQ.Size(),
		terminated: make(map[int]bool),
		wait:       make(map[int]int),
		tw:         tw,
		stdout:     os.Stdout,
		stdin:      bufio.NewScanner(os.Stdin),
	}
}

// WithIO overrides the interactive-mode stdout/stdin streams.
func (s *Simulation) WithIO(out io.Writer, in io.Reader) *Simulation {
	s.stdout = out
	s.stdin = bufio.NewScanner(in)
	return s
}

// Run executes the simulation to completion and returns the final
// statistics. Initialization and the post-loop statistics division
// are as described in spec.md §4.5.
func (s *Simulation) Run() Stats {
	if err := s.tw.WriteHeader(); err != nil {
		logrus.Warnf("writing trace header: %v", err)
	}

	if s.newQ.Empty() {
		logrus.Warn("No processes to run")
		return Stats{}
	}

	if s.cfg.Scheduler == EDF {
		s.wait = make(map[int]int)
	}

	if s.cfg.Interactive {
		fmt.Fprintln(s.stdout)
		fmt.Fprintln(s.stdout, "**** INTERACTIVE MODE ****")
		fmt.Fprintln(s.stdout, "To enter next clock cycle, press <enter>")
		s.waitForEnter()
	}

	for s.running || !(s.ready.Empty() && len(s.io) == 0 && s.newQ.Empty()) {
		if !s.cfg.Interactive && s.clock%100 == 0 {
			logrus.Debugf("now at clock %d", s.clock)
		}

		s.stepIO()
		if s.cfg.Scheduler == PRIORITY {
			s.stepAging()
		}
		s.stepArrivals()
		s.stepAdvanceRunning()
		s.stepDispatch()

		if s.cfg.Interactive {
			s.renderDashboard()
			s.waitForEnter()
		}

		s.stepAccounting()
		s.clock++
	}

	return s.finalizeStats()
}

func (s *Simulation) emit(action string, pid int) {
	if err := s.tw.Emit(s.clock, pid, action); err != nil {
		logrus.Warnf("writing trace line: %v", err)
	}
	if s.cfg.Interactive {
		trace.EchoAction(s.stdout, pid, action)
	}
}

func (s *Simulation) echoInteractive(action string, pid int) {
	if s.cfg.Interactive {
		trace.EchoAction(s.stdout, pid, action)
	}
}

// stepIO advances every process currently doing I/O by one tick;
// processes whose I/O has completed are promoted and returned to
// ready. Step 1 of spec.md §4.5.
func (s *Simulation) stepIO() {
	if len(s.io) == 0 {
		return
	}
	remaining := s.io[:0]
	for _, p := range s.io {
		p.IOCounter++
		if p.IOCounter == p.IO {
			IOPromote(p)
			StampOnReady(p, s.clock)
			s.ready.Push(p)
		} else {
			remaining = append(remaining, p)
		}
	}
	s.io = remaining
}

// stepAging repeatedly ages the oldest eligible ready process (PRIORITY
// scheduler only). Step 2 of spec.md §4.5.
func (s *Simulation) stepAging() {
	for {
		p, ok := s.ready.PeekAgeMin()
		if !ok || p.Maxed || s.clock-p.ClockStamp < s.cfg.AgeTime {
			return
		}
		s.ready.EraseReadyEntry(p)
		AgePromote(p, s.cfg)
		StampOnReady(p, s.clock)
		s.ready.Push(p)
		s.echoInteractive(trace.HasAged, p.Pid)
	}
}

// stepArrivals admits every new-arrival whose arrival tick has been
// reached. Step 3 of spec.md §4.5.
func (s *Simulation) stepArrivals() {
	for !s.newQ.Empty() && s.newQ.PeekMin().Arr == s.clock {
		p := s.newQ.PeekMin()
		s.newQ.PopMin()
		StampOnReady(p, s.clock)
		s.ready.Push(p)
	}
}

// stepAdvanceRunning advances the currently running process by one
// tick and handles termination, quantum exhaustion, or an I/O
// interrupt. Step 4 of spec.md §4.5.
func (s *Simulation) stepAdvanceRunning() {
	if !s.running {
		return
	}
	s.x.Bst--
	s.tq++

	switch {
	case s.x.Bst == 0:
		s.emit(trace.End, s.x.Pid)
		s.terminated[s.x.Pid] = true
		s.attAccum += float64(s.clock)
		s.running = false

	case s.tq == s.orgTQ:
		s.emit(trace.ClockInterrupt, s.x.Pid)
		QuantumDemote(s.x, s.cfg)
		StampOnReady(s.x, s.clock)
		s.ready.Push(s.x)
		s.running = false

	case s.cfg.Scheduler != EDF && s.x.IO != 0 && s.tq == s.orgTQ-1:
		s.emit(trace.IOInterrupt, s.x.Pid)
		s.x.IOCounter = 0
		s.io = append(s.io, s.x)
		s.running = false
	}
}

// stepDispatch dispatches the next process if none is running and the
// ready set is non-empty, applying EDF deadline admission first. Step
// 5 of spec.md §4.5.
func (s *Simulation) stepDispatch() {
	if s.running || s.ready.Empty() {
		return
	}

	var next *PCB
	if s.cfg.Scheduler == EDF {
		for !s.ready.Empty() {
			y := s.ready.Peek()
			if s.clock+y.Bst <= y.Dline {
				break
			}
			s.ready.PopMin()
			s.wait[y.Pid] = 0
			s.terminated[y.Pid] = true
			s.echoInteractive(trace.CannotMeetDeadline, y.Pid)
		}
		if !s.ready.Empty() {
			next = s.ready.PopMin()
		}
	} else {
		next = s.ready.PopMin()
	}

	if next == nil {
		return
	}
	s.x = next
	s.orgTQ = s.cfg.QuantumFor(next.Pri)
	s.tq = 0
	s.running = true
	s.emit(trace.GetsCPU, next.Pid)
}

// stepAccounting updates the waiting-time accounting. Step 6 of
// spec.md §4.5.
func (s *Simulation) stepAccounting() {
	if s.cfg.Scheduler == EDF {
		for _, p := range s.ready.Iterate() {
			s.wait[p.Pid]++
		}
	} else {
		s.awtAccum += float64(s.ready.Size())
	}
}

// finalizeStats divides the accumulators by the process count, per
// spec.md §4.5's post-loop rule. For EDF, np is the number of pids
// with a nonzero recorded wait (those still on the ready set at the end
// of at least one tick and not later aborted, since an abort resets a
// pid's count to 0); AWT is the mean of those
// per-pid wait counts rather than the original's always-zero
// accumulator (see DESIGN.md for this Open Question's resolution).
func (s *Simulation) finalizeStats() Stats {
	if s.cfg.Scheduler == EDF {
		np := 0
		waitSum := 0
		for _, w := range s.wait {
			if w != 0 {
				np++
				waitSum += w
			}
		}
		st := Stats{NP: np}
		if np > 0 {
			st.AWT = float64(waitSum) / float64(np)
			st.ATT = s.attAccum / float64(np)
		}
		return st
	}

	st := Stats{NP: s.npInitial}
	if s.npInitial > 0 {
		st.AWT = s.awtAccum / float64(s.npInitial)
		st.ATT = s.attAccum / float64(s.npInitial)
	}
	return st
}

func (s *Simulation) waitForEnter() {
	for s.stdin.Scan() {
		if s.stdin.Text() == "" {
			return
		}
	}
}

// renderDashboard snapshots the current tick's state and writes the
// interactive dashboard, grounded on
// original_source/main.cpp's print_states.
func (s *Simulation) renderDashboard() {
	var processes []trace.ProcessView
	if s.running {
		processes = append(processes, s.view(s.x, "running"))
	}
	for _, p := range s.newQ.Iterate() {
		processes = append(processes, s.view(p, "new"))
	}
	for _, p := range s.ready.Iterate() {
		processes = append(processes, s.view(p, "ready"))
	}
	for _, p := range s.io {
		v := s.view(p, "io")
		v.IORemain = p.IO - p.IOCounter
		processes = append(processes, v)
	}

	quantumRemaining := 0
	runningPid := 0
	if s.running {
		quantumRemaining = s.orgTQ - s.tq
		runningPid = s.x.Pid
	}

	trace.RenderDashboard(s.stdout, trace.DashboardInput{
		Clock:            s.clock,
		Running:          s.running,
		RunningPid:       runningPid,
		QuantumRemaining: quantumRemaining,
		Terminated:       s.sortedTerminated(),
		Processes:        processes,
		SchedulerName:    s.cfg.Scheduler.String(),
		KernelQuantum:    s.cfg.KernelQuantum,
		UserQuantum:      s.cfg.UserQuantum,
		AgeTime:          s.cfg.AgeTime,
	})
}

func (s *Simulation) view(p *PCB, state string) trace.ProcessView {
	return trace.ProcessView{
		Pid:        p.Pid,
		Kernel:     IsKernel(p.Pri),
		State:      state,
		Pri:        p.Pri,
		Bst:        p.Bst,
		Arr:        p.Arr,
		ClockStamp: p.ClockStamp,
		Maxed:      p.Maxed,
		IO:         p.IO,
		Dline:      p.Dline,
	}
}

func (s *Simulation) sortedTerminated() []int {
	pids := make([]int, 0, len(s.terminated))
	for pid := range s.terminated {
		pids = append(pids, pid)
	}
	sort.Ints(pids)
	return pids
}
