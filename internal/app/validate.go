package app

import (
	"context"

	"gen-machineconf/internal/adapters"
	"gen-machineconf/internal/core"
	"gen-machineconf/internal/policies"
)

// Validate loads the topology and configuration store and checks that the
// selection resolves, without generating anything.
func (s Service) Validate(ctx context.Context, req ValidateRequest) (ValidateResult, error) {
	store := adapters.NewDigestStoreAdapter(req.Source.OutputDir)
	topology, err := s.loadTopology(ctx, req.Source, req.StrictTopology, store, s.toolRunner(nil))
	if err != nil {
		return ValidateResult{}, err
	}
	cfg, err := s.readConfig(req.ConfigFile)
	if err != nil {
		return ValidateResult{}, err
	}
	family, _, err := settleSoc(topology, cfg, req.SocFamily, "", "")
	if err != nil {
		return ValidateResult{}, err
	}
	discovery, err := core.NewMultiConfigResolver(s.Registry, nil).Discover(ctx, topology, family)
	if err != nil {
		return ValidateResult{}, err
	}
	selection, err := core.NewSelectionFilter(policies.NewSelectionPolicy(req.StrictSelection)).
		Resolve(ctx, cfg.EnabledTargets, discovery)
	if err != nil {
		return ValidateResult{}, err
	}
	return ValidateResult{
		SocFamily: family,
		Cores:     topology.Len(),
		Full:      discovery.Full,
		Enabled:   selection.Enabled,
		Skipped:   discovery.Skipped,
		Unknown:   selection.Unknown,
	}, nil
}
