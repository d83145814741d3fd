package adapters

import (
	"fmt"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"gen-machineconf/internal/policies"
	"gen-machineconf/internal/ports"
	"gen-machineconf/internal/types"
)

const topologyFields = 5

// TopologyFileAdapter loads the per-core table written by the hardware
// extraction tool.
type TopologyFileAdapter struct {
	Duplicates policies.DuplicateCorePolicy
	validate   *validator.Validate
}

func NewTopologyFileAdapter(duplicates policies.DuplicateCorePolicy) TopologyFileAdapter {
	return TopologyFileAdapter{Duplicates: duplicates, validate: validator.New()}
}

func (a TopologyFileAdapter) LoadTopology(path string) (*types.Topology, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("topology table not readable: " + path).
			WithCause(err)
	}
	return a.ParseTopology(path, string(content))
}

// ParseTopology parses table content; source only labels errors. Each
// record is "architecture core domain name os_hint" and the os hint keeps
// any embedded spaces.
func (a TopologyFileAdapter) ParseTopology(source string, content string) (*types.Topology, error) {
	validate := a.validate
	if validate == nil {
		validate = validator.New()
	}
	topology := types.NewTopology()
	for index, raw := range strings.Split(content, "\n") {
		lineNo := index + 1
		line := strings.TrimRight(raw, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if strings.HasPrefix(line, "#") && !strings.HasPrefix(line, "[") {
			continue
		}
		fields := strings.SplitN(line, " ", topologyFields)
		if len(fields) < topologyFields {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("malformed topology record at %s:%d: expected %d fields, got %d", source, lineNo, topologyFields, len(fields)))
		}
		core := types.CoreDescriptor{
			Architecture: fields[0],
			CoreIndex:    fields[1],
			Domain:       fields[2],
			Name:         fields[3],
			OSHint:       fields[4],
		}
		if err := validate.Struct(core); err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("malformed topology record at %s:%d", source, lineNo)).
				WithCause(err)
		}
		if _, exists := topology.Get(core.Name); exists {
			if err := a.Duplicates.CheckDuplicate(source, lineNo, core.Name); err != nil {
				return nil, err
			}
			log.Warn().
				Str("core", core.Name).
				Str("source", source).
				Int("line", lineNo).
				Msg("duplicate core name replaces earlier record")
		}
		topology.Add(core)
	}
	return topology, nil
}

var _ ports.TopologyPort = TopologyFileAdapter{}
