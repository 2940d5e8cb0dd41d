package sim

// QuantumDemote lowers a process's priority after it exhausts its
// dispatch quantum. Kernel processes lose KernelQuantum, user
// processes lose UserQuantum; both clamp at their class floor.
// Grounded on original_source/main.cpp's demote_priority.
func QuantumDemote(p *PCB, cfg Config) {
	if IsKernel(p.Pri) {
		p.Pri -= cfg.KernelQuantum
		if p.Pri < KernelMinPriority {
			p.Pri = KernelMinPriority
		}
	} else {
		p.Pri -= cfg.UserQuantum
		if p.Pri < 0 {
			p.Pri = 0
		}
	}
}

// IOPromote raises a process's priority by its own I/O duration on I/O
// completion, clamped to its class ceiling. The class is decided from
// the priority *before* the increment, so a process never crosses
// class boundaries through promotion. Grounded on
// original_source/main.cpp's promote_priority(..., IO, ...).
func IOPromote(p *PCB) {
	promote(p, p.IO)
}

// AgePromote raises a process's priority by the configured age amount
// when it has waited on the ready queue past the age timer, clamped to
// its class ceiling. Grounded on
// original_source/main.cpp's promote_priority(..., AGE, ...).
func AgePromote(p *PCB, cfg Config) {
	promote(p, cfg.AgeAmount)
}

func promote(p *PCB, amount int) {
	wasKernel := IsKernel(p.Pri)
	p.Pri += amount
	ceiling := UserMaxPriority
	if wasKernel {
		ceiling = KernelMaxPriority
	}
	if p.Pri >= ceiling {
		p.Pri = ceiling
	}
}

// StampOnReady marks p as placed on the ready queue at clock: its
// ClockStamp is refreshed and its Maxed flag is recomputed from its
// current priority. Called at every point a PCB enters the ready set —
// arrival admission, quantum-exhaustion requeue, I/O-completion
// promotion, and aging promotion — replacing the original's scattered
// "Clock = ISMAXED(pri) ? CLOCK_LAST : Clock" checks with a single rule.
func StampOnReady(p *PCB, clock int) {
	p.ClockStamp = clock
	p.Maxed = IsMaxed(p.Pri)
}
