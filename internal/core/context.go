package core

import (
	"gen-machineconf/internal/shared"
)

// ResolutionContext is the scratch state of one resolution pass. The
// done-once flags live here rather than in package state so that every
// pass starts clean.
type ResolutionContext struct {
	SocFamily string
	// FileNamesOnly suppresses every side effect; only names are recorded.
	FileNamesOnly bool

	enabled          map[string]struct{}
	bootloaderDone   map[string]bool
	linuxDTSDone     bool
	tuneFeaturesDone bool
}

func NewDiscoveryContext(socFamily string) *ResolutionContext {
	return &ResolutionContext{
		SocFamily:      socFamily,
		FileNamesOnly:  true,
		enabled:        map[string]struct{}{},
		bootloaderDone: map[string]bool{},
	}
}

func NewGenerationContext(socFamily string, enabled []string) *ResolutionContext {
	set := make(map[string]struct{}, len(enabled))
	for _, name := range enabled {
		set[shared.NormalizeTargetName(name)] = struct{}{}
	}
	return &ResolutionContext{
		SocFamily:      socFamily,
		enabled:        set,
		bootloaderDone: map[string]bool{},
	}
}

// IsEnabled reports whether side effects should run for the unit.
func (c *ResolutionContext) IsEnabled(unit string) bool {
	if c.FileNamesOnly {
		return false
	}
	_, ok := c.enabled[shared.NormalizeTargetName(unit)]
	return ok
}

// claimBootloader returns true the first time it is called for family.
func (c *ResolutionContext) claimBootloader(family string) bool {
	if c.bootloaderDone[family] {
		return false
	}
	c.bootloaderDone[family] = true
	return true
}

func (c *ResolutionContext) claimLinuxDTS() bool {
	if c.linuxDTSDone {
		return false
	}
	c.linuxDTSDone = true
	return true
}

func (c *ResolutionContext) claimTuneFeatures() bool {
	if c.tuneFeaturesDone {
		return false
	}
	c.tuneFeaturesDone = true
	return true
}
