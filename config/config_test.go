package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultContextIsValid(t *testing.T) {
	ctx := DefaultContext()
	require.NoError(t, ctx.Validate())
	assert.Greater(t, ctx.CacheL1Size, 0)
	assert.Greater(t, ctx.NumberOfProcessors, 0)
	assert.NotNil(t, ctx.SharedMemoryLock)
	assert.NotNil(t, ctx.Builders)
}

func TestApplyOverridesOnlyNonZeroFields(t *testing.T) {
	ctx := DefaultContext()
	origProcs := ctx.NumberOfProcessors

	ctx.Apply(Override{CacheL1Size: 16 * 1024})

	assert.Equal(t, 16*1024, ctx.CacheL1Size)
	assert.Equal(t, origProcs, ctx.NumberOfProcessors)
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.yaml")
	content := "cacheL1Size: 65536\nnumberOfProcessors: 4\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	ctx, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 65536, ctx.CacheL1Size)
	assert.Equal(t, 4, ctx.NumberOfProcessors)
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	ctx, err := Load("")
	require.NoError(t, err)
	assert.Greater(t, ctx.CacheL1Size, 0)
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidateRejectsNonPositiveFields(t *testing.T) {
	ctx := DefaultContext()
	ctx.CacheL1Size = 0
	require.Error(t, ctx.Validate())
}

func TestParallelismMirrorsNumberOfProcessors(t *testing.T) {
	ctx := DefaultContext()
	assert.Equal(t, ctx.NumberOfProcessors, ctx.Parallelism())

	ctx.NumberOfProcessors = 7
	assert.Equal(t, 7, ctx.Parallelism())
}
