package types

// NoneValue is how the extraction tool spells an unset domain or os hint.
const NoneValue = "None"

// CoreDescriptor is one processor core as reported by the topology table.
type CoreDescriptor struct {
	Name         string `validate:"required"`
	Architecture string `validate:"required"`
	CoreIndex    string `validate:"required"`
	Domain       string
	OSHint       string
}

// HasDomain reports whether the core belongs to a named domain.
func (c CoreDescriptor) HasDomain() bool {
	return c.Domain != "" && c.Domain != NoneValue
}

// Topology is a name-keyed set of cores that remembers insertion order.
type Topology struct {
	order []string
	cores map[string]CoreDescriptor
}

func NewTopology() *Topology {
	return &Topology{cores: map[string]CoreDescriptor{}}
}

// Add stores the descriptor and reports whether it replaced an existing one.
// A replaced core keeps the position of the first occurrence.
func (t *Topology) Add(core CoreDescriptor) bool {
	if t.cores == nil {
		t.cores = map[string]CoreDescriptor{}
	}
	_, exists := t.cores[core.Name]
	if !exists {
		t.order = append(t.order, core.Name)
	}
	t.cores[core.Name] = core
	return exists
}

func (t *Topology) Get(name string) (CoreDescriptor, bool) {
	if t == nil {
		return CoreDescriptor{}, false
	}
	core, ok := t.cores[name]
	return core, ok
}

// Cores returns the descriptors in insertion order.
func (t *Topology) Cores() []CoreDescriptor {
	if t == nil {
		return nil
	}
	result := make([]CoreDescriptor, 0, len(t.order))
	for _, name := range t.order {
		result = append(result, t.cores[name])
	}
	return result
}

func (t *Topology) Len() int {
	if t == nil {
		return 0
	}
	return len(t.order)
}
