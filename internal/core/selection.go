package core

import (
	"context"

	"github.com/rs/zerolog/log"

	"gen-machineconf/internal/policies"
	"gen-machineconf/internal/shared"
)

// SelectionFilter turns the targets a user enabled in the configuration
// store into the set a generation pass works against.
type SelectionFilter struct {
	Policy policies.SelectionPolicy
}

// Selection is the effective enabled set, in FullNameList order. The
// minimal set is always part of it.
type Selection struct {
	Enabled []string
	Unknown []string
	// Defaulted is true when nothing was configured and Minimal was used.
	Defaulted bool
}

func NewSelectionFilter(policy policies.SelectionPolicy) SelectionFilter {
	return SelectionFilter{Policy: policy}
}

func (f SelectionFilter) Resolve(ctx context.Context, configured []string, discovery Discovery) (Selection, error) {
	known := make(map[string]string, len(discovery.Full))
	for _, name := range discovery.Full {
		known[shared.NormalizeTargetName(name)] = name
	}

	chosen := map[string]struct{}{}
	var unknown []string
	seenUnknown := map[string]struct{}{}
	for _, raw := range configured {
		normalized := shared.NormalizeTargetName(raw)
		if normalized == "" {
			continue
		}
		if _, ok := known[normalized]; ok {
			chosen[normalized] = struct{}{}
			continue
		}
		if _, dup := seenUnknown[normalized]; !dup {
			seenUnknown[normalized] = struct{}{}
			unknown = append(unknown, normalized)
		}
	}

	if err := f.Policy.CheckUnknown(unknown); err != nil {
		return Selection{}, err
	}
	if len(unknown) > 0 {
		log.Ctx(ctx).Warn().
			Strs("targets", unknown).
			Msg("dropping selected targets that match no multiconfig")
	}

	if len(chosen) == 0 {
		enabled := append([]string(nil), discovery.Minimal...)
		log.Ctx(ctx).Debug().
			Strs("enabled", enabled).
			Msg("no targets selected, using minimal set")
		return Selection{Enabled: enabled, Unknown: unknown, Defaulted: true}, nil
	}

	for _, name := range discovery.Minimal {
		chosen[shared.NormalizeTargetName(name)] = struct{}{}
	}
	enabled := make([]string, 0, len(chosen))
	for _, name := range discovery.Full {
		if _, ok := chosen[shared.NormalizeTargetName(name)]; ok {
			enabled = append(enabled, name)
		}
	}
	return Selection{Enabled: enabled, Unknown: unknown}, nil
}
