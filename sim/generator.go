package sim

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/sirupsen/logrus"
)

// GeneratorConfig controls synthetic workload generation.
type GeneratorConfig struct {
	Count  int    // how many processes to generate
	HasIO  bool   // whether any generated process carries I/O
	Seed   int64  // RNG seed; callers typically pass the wall-clock second
	Output string // destination path, defaults to "test_cases"
}

// GenerateWorkload writes Count synthetic processes to cfg.Output in the
// tab-separated workload format, using the same field ranges as
// original_source/proc_queues.h's generate_test_cases: bst uniform in
// [1,19], arr uniform in [0,Count], pri uniform in [0,99], dline uniform
// in [1,99], and io either always 0 (HasIO false) or, with 50%
// probability, uniform in [0,24].
func GenerateWorkload(cfg GeneratorConfig) error {
	path := cfg.Output
	if path == "" {
		path = "test_cases"
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %q: %w", path, err)
	}
	defer f.Close()

	rng := rand.New(rand.NewSource(cfg.Seed))

	if _, err := fmt.Fprintln(f, "Pid\tBst\tArr\tPri\tDline\tIO"); err != nil {
		return err
	}

	for pid := 1; pid <= cfg.Count; pid++ {
		bst := 0
		for bst == 0 {
			bst = rng.Intn(20)
		}
		arr := rng.Intn(cfg.Count + 1)
		pri := rng.Intn(100)
		dline := rng.Intn(99) + 1
		io := 0
		if cfg.HasIO && rng.Intn(100) < 50 {
			io = rng.Intn(25)
		}

		if _, err := fmt.Fprintf(f, "%d\t%d\t%d\t%d\t%d\t%d\n", pid, bst, arr, pri, dline, io); err != nil {
			return err
		}
	}

	logrus.Infof("wrote %d synthetic processes to %q", cfg.Count, path)
	return nil
}
