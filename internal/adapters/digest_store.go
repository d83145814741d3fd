package adapters

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"gen-machineconf/internal/ports"
	"gen-machineconf/internal/types"
)

// StatisticsFile is the digest store kept in the output directory.
const StatisticsFile = ".statistics"

const digestChunkSize = 8192

// DigestStoreAdapter memoizes SHA-256 digests of input files in a flat
// KEY=digest store. The store is single-writer.
type DigestStoreAdapter struct {
	Path    string
	Metrics ports.MetricsPort
}

func NewDigestStoreAdapter(outputDir string) DigestStoreAdapter {
	return DigestStoreAdapter{Path: filepath.Join(outputDir, StatisticsFile)}
}

func (a DigestStoreAdapter) Digest(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to open file for digest: " + path).
			WithCause(err)
	}
	defer file.Close()

	hash := sha256.New()
	buf := make([]byte, digestChunkSize)
	if _, err := io.CopyBuffer(hash, file, buf); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read file for digest: " + path).
			WithCause(err)
	}
	return hex.EncodeToString(hash.Sum(nil)), nil
}

func (a DigestStoreAdapter) CheckAndUpdate(key string, file string, update bool) (types.CacheStatus, error) {
	if a.Path == "" {
		return types.CacheChanged, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("digest store path is empty")
	}
	current, err := a.Digest(file)
	if err != nil {
		return types.CacheChanged, err
	}
	return a.compare(key, current, update), nil
}

// CheckAndUpdateValue digests value instead of a file. It gates on state
// that only exists in memory, such as the effective generation options.
func (a DigestStoreAdapter) CheckAndUpdateValue(key string, value []byte, update bool) (types.CacheStatus, error) {
	if a.Path == "" {
		return types.CacheChanged, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("digest store path is empty")
	}
	sum := sha256.Sum256(value)
	return a.compare(key, hex.EncodeToString(sum[:]), update), nil
}

func (a DigestStoreAdapter) compare(key string, current string, update bool) types.CacheStatus {
	status := types.CacheChanged
	if stored, ok := a.stored(key); ok && stored == current {
		status = types.CacheUnchanged
	}
	if status == types.CacheChanged && update {
		if err := updateMacroFile(a.Path, key, current); err != nil {
			log.Warn().
				Err(err).
				Str("store", a.Path).
				Str("key", key).
				Msg("failed to update digest store")
		}
	}
	if a.Metrics != nil {
		a.Metrics.CacheChecked(key, status)
	}
	return status
}

// stored returns the digest recorded for key. A store that cannot be read
// counts as having no entry.
func (a DigestStoreAdapter) stored(key string) (string, bool) {
	macros, err := readMacroFile(a.Path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Warn().
				Err(err).
				Str("store", a.Path).
				Msg("digest store unreadable, treating as changed")
		}
		return "", false
	}
	value, ok := macros[key]
	return value, ok
}

var _ ports.ChangeDetectorPort = DigestStoreAdapter{}
