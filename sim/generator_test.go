package sim

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateWorkload_WritesValidLoadableFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "test_cases")
	err := GenerateWorkload(GeneratorConfig{Count: 50, HasIO: true, Seed: 1, Output: out})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Contains(t, string(data), "Pid\tBst\tArr\tPri\tDline\tIO\n")

	q := LoadWorkload(out)
	assert.Equal(t, 50, q.Size())
	for _, p := range q.Iterate() {
		assert.Greater(t, p.Bst, 0)
		assert.LessOrEqual(t, p.Bst, 19)
		assert.GreaterOrEqual(t, p.Arr, 0)
		assert.LessOrEqual(t, p.Arr, 50)
		assert.GreaterOrEqual(t, p.Dline, 1)
		assert.LessOrEqual(t, p.Dline, 99)
	}
}

func TestGenerateWorkload_Deterministic_SameSeedSameOutput(t *testing.T) {
	out1 := filepath.Join(t.TempDir(), "a")
	out2 := filepath.Join(t.TempDir(), "b")
	require.NoError(t, GenerateWorkload(GeneratorConfig{Count: 20, HasIO: true, Seed: 42, Output: out1}))
	require.NoError(t, GenerateWorkload(GeneratorConfig{Count: 20, HasIO: true, Seed: 42, Output: out2}))

	data1, err := os.ReadFile(out1)
	require.NoError(t, err)
	data2, err := os.ReadFile(out2)
	require.NoError(t, err)
	assert.Equal(t, string(data1), string(data2))
}

func TestGenerateWorkload_NoIO_AllZero(t *testing.T) {
	out := filepath.Join(t.TempDir(), "test_cases")
	require.NoError(t, GenerateWorkload(GeneratorConfig{Count: 30, HasIO: false, Seed: 7, Output: out}))

	q := LoadWorkload(out)
	for _, p := range q.Iterate() {
		assert.Equal(t, 0, p.IO)
	}
}
