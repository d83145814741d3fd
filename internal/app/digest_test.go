package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gen-machineconf/internal/types"
)

func TestDigestCheckAndUpdate(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "design.xsa")
	require.NoError(t, os.WriteFile(file, []byte("hardware"), 0o644))
	service := Service{}

	req := DigestRequest{File: file, OutputDir: dir, Key: "hw_file", Update: true}
	first, err := service.Digest(req)
	require.NoError(t, err)
	assert.Len(t, first.Digest, 64)
	assert.Equal(t, types.CacheChanged, first.Status)

	second, err := service.Digest(req)
	require.NoError(t, err)
	assert.Equal(t, first.Digest, second.Digest)
	assert.Equal(t, types.CacheUnchanged, second.Status)

	stored, err := os.ReadFile(filepath.Join(dir, ".statistics"))
	require.NoError(t, err)
	assert.Contains(t, string(stored), "HW_FILE="+first.Digest)
}

func TestDigestWithoutKeyDoesNotTouchStore(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "empty")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	result, err := Service{}.Digest(DigestRequest{File: file, OutputDir: dir})
	require.NoError(t, err)
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", result.Digest)
	assert.Empty(t, result.Status)
	assert.NoFileExists(t, filepath.Join(dir, ".statistics"))
}

func TestDigestKeyRequiresOutputDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "design.xsa")
	require.NoError(t, os.WriteFile(file, []byte("hardware"), 0o644))

	_, err := Service{}.Digest(DigestRequest{File: file, Key: "HW_FILE"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output directory is required")
}

func TestDigestRequiresFile(t *testing.T) {
	_, err := Service{}.Digest(DigestRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file is required")
}
