package sim

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/SanferD/ProcessScheduleSimulation/internal/orderedset"
)

// NewArrivalSet creates an empty new-arrivals set ordered by
// ArrivalComparator.
func NewArrivalSet() *orderedset.Set[*PCB] {
	return orderedset.New[*PCB](ArrivalComparator)
}

// LoadWorkload reads a workload file into a new-arrivals set ordered
// by arrival time, ties by pid. Files ending in .yml or .yaml are
// parsed as the supplemental YAML workload format; everything else is
// parsed as the tab-separated format of spec.md §4.4/§6. Failure to
// open the file is fatal, grounded on
// original_source/proc_queues.h's create_new_queue.
func LoadWorkload(path string) *orderedset.Set[*PCB] {
	if strings.HasSuffix(path, ".yml") || strings.HasSuffix(path, ".yaml") {
		return loadWorkloadYAML(path)
	}
	return loadWorkloadTSV(path)
}

// loadWorkloadTSV parses the tab-separated workload format: a header
// line (ignored), then data lines of exactly six tab-separated
// integers: pid, bst, arr, pri, dline, io. Lines without exactly five
// tabs, lines with non-integer fields, and lines whose values fail
// range validation are silently skipped (logged at debug level).
func loadWorkloadTSV(path string) *orderedset.Set[*PCB] {
	f, err := os.Open(path)
	if err != nil {
		logrus.Fatalf("could not read file %q: %v", path, err)
	}
	defer f.Close()

	newQ := NewArrivalSet()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	if scanner.Scan() {
		lineNo++ // consume the header line
	}
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.Count(line, "\t") != 5 {
			logrus.Debugf("workload line %d: expected 5 tabs, skipping: %q", lineNo, line)
			continue
		}
		fields := strings.Split(line, "\t")
		values := make([]int, 0, 6)
		ok := true
		for _, f := range fields {
			v, err := strconv.Atoi(strings.TrimSpace(f))
			if err != nil {
				logrus.Debugf("workload line %d: non-integer field %q, skipping", lineNo, f)
				ok = false
				break
			}
			values = append(values, v)
		}
		if !ok {
			continue
		}
		p := &PCB{
			Pid:   values[0],
			Bst:   values[1],
			Arr:   values[2],
			Pri:   values[3],
			Dline: values[4],
			IO:    values[5],
		}
		if !validPCB(p) {
			logrus.Debugf("workload line %d: out-of-range fields, skipping: %q", lineNo, line)
			continue
		}
		newQ.Insert(p)
	}
	if err := scanner.Err(); err != nil {
		logrus.Fatalf("error reading workload file %q: %v", path, err)
	}
	return newQ
}

// validPCB reports whether a freshly-loaded PCB's fields are within
// the ranges spec.md §4.4 requires for acceptance.
func validPCB(p *PCB) bool {
	return p.Pid > 0 && p.Bst > 0 && p.Arr >= 0 && p.Pri >= 0 && p.Pri <= KernelMaxPriority &&
		p.Dline > 0 && p.IO >= 0
}

// yamlWorkload is the supplemental YAML workload format: a flat list
// of processes with the same fields and validation rules as the
// tab-separated format.
type yamlWorkload struct {
	Processes []yamlProcess `yaml:"processes"`
}

type yamlProcess struct {
	Pid   int `yaml:"pid"`
	Bst   int `yaml:"bst"`
	Arr   int `yaml:"arr"`
	Pri   int `yaml:"pri"`
	Dline int `yaml:"dline"`
	IO    int `yaml:"io"`
}

func loadWorkloadYAML(path string) *orderedset.Set[*PCB] {
	data, err := os.ReadFile(path)
	if err != nil {
		logrus.Fatalf("could not read file %q: %v", path, err)
	}
	var wl yamlWorkload
	if err := yaml.Unmarshal(data, &wl); err != nil {
		logrus.Fatalf("could not parse yaml workload %q: %v", path, err)
	}
	newQ := NewArrivalSet()
	for i, yp := range wl.Processes {
		p := &PCB{Pid: yp.Pid, Bst: yp.Bst, Arr: yp.Arr, Pri: yp.Pri, Dline: yp.Dline, IO: yp.IO}
		if !validPCB(p) {
			logrus.Debugf("yaml workload entry %d: out-of-range fields, skipping", i)
			continue
		}
		newQ.Insert(p)
	}
	return newQ
}
