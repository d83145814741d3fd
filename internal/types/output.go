package types

// ResolutionReport is the persisted summary of one generation pass.
type ResolutionReport struct {
	RunID        string        `yaml:"run_id"`
	SocFamily    string        `yaml:"soc_family"`
	SocVariant   string        `yaml:"soc_variant,omitempty"`
	Full         []string      `yaml:"full"`
	Minimal      []string      `yaml:"minimal"`
	Enabled      []string      `yaml:"enabled"`
	Units        []ReportUnit  `yaml:"units"`
	Dependencies DependencyMap `yaml:"dependencies"`
}

type ReportUnit struct {
	Name        string     `yaml:"name"`
	Stack       Stack      `yaml:"stack"`
	Flavor      UnitFlavor `yaml:"flavor"`
	Core        string     `yaml:"core"`
	Required    bool       `yaml:"required"`
	Multiconfig bool       `yaml:"multiconfig"`
	Generated   bool       `yaml:"generated"`
}
