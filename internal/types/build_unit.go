package types

// BuildUnit is one independently buildable software stack for a core.
// Units carry no identity beyond Name; every pass rebuilds them.
// Multiconfig is false only for the domain-less Linux unit, which is the main
// build rather than a separate multiconfig target.
type BuildUnit struct {
	Name          string
	Stack         Stack
	Flavor        UnitFlavor
	Architecture  string
	Core          string
	Domain        string
	Required      bool
	Multiconfig   bool
	DependsOn     []string
	ArtifactPaths map[string]string
}

// ArtifactRequest describes the device-tree and configuration artifacts one
// unit needs generated.
type ArtifactRequest struct {
	Unit        BuildUnit
	CPUName     string
	Tune        string
	Distro      string
	DomainFiles []string
	ExtraConf   string
}

// Keys of BuildUnit.ArtifactPaths.
const (
	ArtifactDTS      = "dts"
	ArtifactConf     = "conf"
	ArtifactLibxil   = "libxil"
	ArtifactFeatures = "features"
	ArtifactOverlay  = "overlay"
)

// GenerationOptions are the filesystem locations and switches the artifact
// generator works against.
type GenerationOptions struct {
	SocFamily    string
	OutputDir    string
	HWFile       string
	DTSPath      string
	ConfigDir    string
	BBConfDir    string
	DomainFile   string
	PSUInitPath  string
	Overlay      bool
	ExternalFPGA bool
}
