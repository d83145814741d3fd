package app

import "gen-machineconf/internal/types"

// TopologySource names where the per-core table comes from: an explicit
// table, or extraction from the hardware file into OutputDir.
type TopologySource struct {
	TopologyFile string
	HWFile       string
	OutputDir    string
}

type DiscoverRequest struct {
	Source         TopologySource
	SocFamily      string
	StrictTopology bool
}

type DiscoverResult struct {
	SocFamily string
	Full      []string
	Minimal   []string
	Units     []types.BuildUnit
	Skipped   []string
}

type GenerateRequest struct {
	HWFile       string `validate:"required"`
	TopologyFile string
	ConfigFile   string
	OutputDir    string `validate:"required"`
	ConfigDir    string
	DTSPath      string
	BBConfDir    string
	Machine      string
	SocFamily    string
	SocVariant   string
	DeviceID     string
	DomainFile   string
	PSUInitPath  string
	Overlay      bool
	ExternalFPGA bool
	// Force ignores the digest store and regenerates everything.
	Force           bool
	StrictSelection bool
	StrictTopology  bool
	MetricsFile     string
}

type GenerateResult struct {
	RunID        string
	SocFamily    string
	SocVariant   string
	Machine      string
	Cached       bool
	Full         []string
	Minimal      []string
	Enabled      []string
	Generated    []string
	Dependencies types.DependencyMap
	OutputDir    string
}

type ValidateRequest struct {
	Source          TopologySource
	ConfigFile      string
	SocFamily       string
	StrictSelection bool
	StrictTopology  bool
}

type ValidateResult struct {
	SocFamily string
	Cores     int
	Full      []string
	Enabled   []string
	Skipped   []string
	Unknown   []string
}

type InspectRequest struct {
	OutputDir string
}

type InspectResult struct {
	Report       types.ResolutionReport
	Dependencies types.DependencyMap
	Stacks       []InspectStackSummary
}

type InspectStackSummary struct {
	Stack     types.Stack
	Count     int
	Generated int
	Units     []string
}

type DigestRequest struct {
	File      string `validate:"required"`
	OutputDir string
	// Key, when set, also checks File against the store.
	Key    string
	Update bool
}

type DigestResult struct {
	Digest string
	Status types.CacheStatus
}
