package sim

import (
	"fmt"
	"io"
)

// Stats aggregates the run's timing statistics for final reporting:
// the number of processes the statistics are averaged over, the
// average waiting time, and the average turnaround time. Grounded on
// original_source/main.cpp's stats_t.
type Stats struct {
	NP  int     // number of processes the averages are divided by
	AWT float64 // average waiting time
	ATT float64 // average turnaround time
}

// Print writes the aggregate statistics in the original tool's
// "STATS" report format.
func (s Stats) Print(w io.Writer) {
	fmt.Fprintln(w, "************* STATS *************")
	fmt.Fprintf(w, "NP: %d\n", s.NP)
	fmt.Fprintf(w, "AWT: %.3f\n", s.AWT)
	fmt.Fprintf(w, "ATT: %.3f\n", s.ATT)
}
