package types

// Configuration store macros read by the engine.
const (
	ConfigSocFamily    = "CONFIG_SOC_FAMILY"
	ConfigSocVariant   = "CONFIG_SOC_VARIANT"
	ConfigMachineName  = "CONFIG_YOCTO_MACHINE_NAME"
	ConfigTargetPrefix = "CONFIG_YOCTO_BBMC_"
)

// Digest store keys. GENERATION_OPTIONS digests the effective options
// rather than a file.
const (
	CacheKeyHWFile            = "HW_FILE"
	CacheKeySystemConf        = "SYSTEM_CONF"
	CacheKeyTopologyHWFile    = "TOPOLOGY_HW_FILE"
	CacheKeyTopologyFile      = "TOPOLOGY_FILE"
	CacheKeyGenerationOptions = "GENERATION_OPTIONS"
)

// SystemConfig is the subset of the resolved configuration store the engine
// consumes.
type SystemConfig struct {
	SocFamily      string
	SocVariant     string
	Machine        string
	EnabledTargets []string
}

// ToolInvocation is one external command run.
type ToolInvocation struct {
	Name string
	Args []string
	Dir  string
	Env  []string
}

type ToolOutput struct {
	Stdout string
	Stderr string
}
