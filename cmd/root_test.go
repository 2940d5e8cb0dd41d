package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeWorkload(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "workload.tsv")
	content := "Pid\tBst\tArr\tPri\tDline\tIO\n1\t2\t0\t0\t100\t0\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRun_ProducesTraceFileAndStats(t *testing.T) {
	dir := t.TempDir()
	workload := writeWorkload(t, dir)

	rootCmd.SetArgs([]string{"run", "--file-name=" + workload, "--scheduler=FIFO"})
	require.NoError(t, rootCmd.Execute())

	tracePath := "output-" + strings.NewReplacer("/", "-", "\\", "-").Replace(workload)
	data, err := os.ReadFile(tracePath)
	require.NoError(t, err)
	t.Cleanup(func() { os.Remove(tracePath) })

	assert.Contains(t, string(data), "CLOCK\tPID\tACTION")
	assert.Contains(t, string(data), "0\t1\tGets CPU")
	assert.Contains(t, string(data), "1\t1\tEnd")
}

func TestRun_AcceptsUnderscoreFlagAliases(t *testing.T) {
	dir := t.TempDir()
	workload := writeWorkload(t, dir)

	rootCmd.SetArgs([]string{"run", "--file_name=" + workload, "--scheduler=FIFO", "--age_timer=5"})
	require.NoError(t, rootCmd.Execute())

	tracePath := "output-" + strings.NewReplacer("/", "-", "\\", "-").Replace(workload)
	t.Cleanup(func() { os.Remove(tracePath) })
	_, err := os.Stat(tracePath)
	require.NoError(t, err)
}

func TestRun_UnknownScheduler_Fatal(t *testing.T) {
	if os.Getenv("RUN_FATAL_SUBPROCESS") != "1" {
		t.Skip("invokes logrus.Fatalf, which calls os.Exit; exercised only under the subprocess guard")
	}
	dir := t.TempDir()
	workload := writeWorkload(t, dir)
	rootCmd.SetArgs([]string{"run", "--file-name=" + workload, "--scheduler=BOGUS"})
	_ = rootCmd.Execute()
}
