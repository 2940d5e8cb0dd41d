package sim

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, name, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing temp file: %v", err)
	}
	return path
}

func TestLoadWorkload_TSV_AcceptsValidLines(t *testing.T) {
	contents := "Pid\tBst\tArr\tPri\tDline\tIO\n" +
		"1\t3\t0\t0\t100\t0\n" +
		"2\t2\t1\t0\t100\t0\n"
	path := writeTemp(t, "workload.tsv", contents)

	set := LoadWorkload(path)
	if set.Size() != 2 {
		t.Fatalf("Size = %d, want 2", set.Size())
	}
	first := set.PeekMin()
	if first.Pid != 1 {
		t.Errorf("first pid = %d, want 1", first.Pid)
	}
}

func TestLoadWorkload_TSV_SkipsMalformedAndInvalidLines(t *testing.T) {
	contents := "Pid\tBst\tArr\tPri\tDline\tIO\n" +
		"1\t3\t0\t0\t100\t0\n" + // valid
		"2\t2\t1\t0\t100\n" + // only 4 tabs, malformed
		"3\tabc\t1\t0\t100\t0\n" + // non-integer
		"4\t-1\t1\t0\t100\t0\n" + // invalid: bst<=0
		"5\t2\t1\t200\t100\t0\n" // invalid: pri out of range
	path := writeTemp(t, "workload.tsv", contents)

	set := LoadWorkload(path)
	if set.Size() != 1 {
		t.Fatalf("Size = %d, want 1", set.Size())
	}
}

func TestLoadWorkload_TSV_OrdersByArrivalThenPid(t *testing.T) {
	contents := "Pid\tBst\tArr\tPri\tDline\tIO\n" +
		"2\t1\t5\t0\t100\t0\n" +
		"1\t1\t5\t0\t100\t0\n" +
		"3\t1\t0\t0\t100\t0\n"
	path := writeTemp(t, "workload.tsv", contents)

	set := LoadWorkload(path)
	var pids []int
	for !set.Empty() {
		pids = append(pids, set.PeekMin().Pid)
		set.PopMin()
	}
	want := []int{3, 1, 2}
	if len(pids) != len(want) {
		t.Fatalf("pids = %v, want %v", pids, want)
	}
	for i := range want {
		if pids[i] != want[i] {
			t.Errorf("pids = %v, want %v", pids, want)
		}
	}
}

func TestLoadWorkload_YAML_AcceptsValidEntries(t *testing.T) {
	contents := "processes:\n" +
		"  - pid: 1\n" +
		"    bst: 4\n" +
		"    arr: 0\n" +
		"    pri: 10\n" +
		"    dline: 50\n" +
		"    io: 0\n" +
		"  - pid: 2\n" +
		"    bst: -1\n" + // invalid, skipped
		"    arr: 0\n" +
		"    pri: 10\n" +
		"    dline: 50\n" +
		"    io: 0\n"
	path := writeTemp(t, "workload.yaml", contents)

	set := LoadWorkload(path)
	if set.Size() != 1 {
		t.Fatalf("Size = %d, want 1", set.Size())
	}
}
