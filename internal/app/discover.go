package app

import (
	"context"

	"gen-machineconf/internal/adapters"
	"gen-machineconf/internal/core"
	"gen-machineconf/internal/types"
)

// Discover lists the multiconfig targets the topology can produce without
// generating anything for them.
func (s Service) Discover(ctx context.Context, req DiscoverRequest) (DiscoverResult, error) {
	runner := s.toolRunner(nil)
	store := adapters.NewDigestStoreAdapter(req.Source.OutputDir)
	topology, err := s.loadTopology(ctx, req.Source, req.StrictTopology, store, runner)
	if err != nil {
		return DiscoverResult{}, err
	}
	family, _, err := settleSoc(topology, types.SystemConfig{}, req.SocFamily, "", "")
	if err != nil {
		return DiscoverResult{}, err
	}
	discovery, err := core.NewMultiConfigResolver(s.Registry, nil).Discover(ctx, topology, family)
	if err != nil {
		return DiscoverResult{}, err
	}
	return DiscoverResult{
		SocFamily: family,
		Full:      discovery.Full,
		Minimal:   discovery.Minimal,
		Units:     discovery.Units,
		Skipped:   discovery.Skipped,
	}, nil
}
