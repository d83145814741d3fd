package app

import (
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"gen-machineconf/internal/adapters"
)

// Digest fingerprints a file and, when a key is given, compares it with the
// digest store of the output directory.
func (s Service) Digest(req DigestRequest) (DigestResult, error) {
	if err := s.validator().Struct(req); err != nil {
		return DigestResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("file is required").
			WithCause(err)
	}
	store := adapters.NewDigestStoreAdapter(req.OutputDir)
	digest, err := store.Digest(req.File)
	if err != nil {
		return DigestResult{}, err
	}
	result := DigestResult{Digest: digest}
	if strings.TrimSpace(req.Key) == "" {
		return result, nil
	}
	if strings.TrimSpace(req.OutputDir) == "" {
		return DigestResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output directory is required to check a digest key")
	}
	status, err := store.CheckAndUpdate(strings.ToUpper(strings.TrimSpace(req.Key)), req.File, req.Update)
	if err != nil {
		return DigestResult{}, err
	}
	result.Status = status
	return result, nil
}
