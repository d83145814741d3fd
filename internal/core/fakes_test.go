package core

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog"

	"gen-machineconf/internal/types"
)

type recordingArtifacts struct {
	baremetal []types.ArtifactRequest
	linux     []types.ArtifactRequest
	tunes     int
	failUnit  string
}

func (r *recordingArtifacts) GenerateBaremetal(_ context.Context, req types.ArtifactRequest) (map[string]string, error) {
	if req.Unit.Name == r.failUnit {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("external tool failed: lopper")
	}
	r.baremetal = append(r.baremetal, req)
	return fakePaths(req.Unit.Name), nil
}

func (r *recordingArtifacts) GenerateLinux(_ context.Context, req types.ArtifactRequest) (map[string]string, error) {
	if req.Unit.Name == r.failUnit {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("external tool failed: lopper")
	}
	r.linux = append(r.linux, req)
	return fakePaths(req.Unit.Name), nil
}

func (r *recordingArtifacts) GenerateTuneFeatures(context.Context) error {
	r.tunes++
	return nil
}

func (r *recordingArtifacts) unitNames() []string {
	var names []string
	for _, req := range r.baremetal {
		names = append(names, req.Unit.Name)
	}
	for _, req := range r.linux {
		names = append(names, req.Unit.Name)
	}
	return names
}

func fakePaths(unit string) map[string]string {
	return map[string]string{
		types.ArtifactDTS:  fmt.Sprintf("/out/dts/%s/%s.dts", unit, unit),
		types.ArtifactConf: fmt.Sprintf("/out/conf/multiconfig/%s.conf", unit),
	}
}

func topologyOf(cores ...types.CoreDescriptor) *types.Topology {
	topology := types.NewTopology()
	for _, core := range cores {
		topology.Add(core)
	}
	return topology
}

func zynqmpTopology() *types.Topology {
	return topologyOf(
		types.CoreDescriptor{Name: "psu_cortexa53_0", Architecture: "arm,cortex-a53", CoreIndex: "0", Domain: "None", OSHint: "None"},
		types.CoreDescriptor{Name: "psu_cortexa53_1", Architecture: "arm,cortex-a53", CoreIndex: "1", Domain: "None", OSHint: "None"},
		types.CoreDescriptor{Name: "psu_cortexr5_0", Architecture: "arm,cortex-r5", CoreIndex: "0", Domain: "None", OSHint: "None"},
		types.CoreDescriptor{Name: "psu_pmu_0", Architecture: "pmu-microblaze", CoreIndex: "0", Domain: "None", OSHint: "None"},
	)
}

func bufferContext(t *testing.T) (context.Context, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	logger := zerolog.New(buf)
	return logger.WithContext(t.Context()), buf
}
