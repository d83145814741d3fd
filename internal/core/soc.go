package core

import (
	"regexp"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"gen-machineconf/internal/types"
)

// Supported SoC families.
const (
	SocFamilyZynqMP     = "zynqmp"
	SocFamilyVersal     = "versal"
	SocFamilyZynq       = "zynq"
	SocFamilyMicroblaze = "microblaze"
)

var socFamilyMarkers = []struct {
	marker string
	family string
}{
	{marker: "a78", family: SocFamilyVersal},
	{marker: "a72", family: SocFamilyVersal},
	{marker: "a53", family: SocFamilyZynqMP},
	{marker: "a9", family: SocFamilyZynq},
	{marker: "microblaze", family: SocFamilyMicroblaze},
}

// DetectSocFamily guesses the SoC family from the application cores present
// in the topology. The first core whose architecture carries a known marker
// wins; markers are checked from the most to the least specific.
func DetectSocFamily(topology *types.Topology) (string, error) {
	cores := topology.Cores()
	for _, entry := range socFamilyMarkers {
		for _, core := range cores {
			if strings.Contains(strings.ToLower(core.Architecture), entry.marker) {
				return entry.family, nil
			}
		}
	}
	return "", errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg("unable to detect soc family from topology")
}

var socVariantPatterns = map[string][]struct {
	pattern *regexp.Regexp
	variant string
}{
	SocFamilyZynqMP: {
		{pattern: regexp.MustCompile(`xczu.+cg`), variant: "cg"},
		{pattern: regexp.MustCompile(`xczu.+dr`), variant: "dr"},
		{pattern: regexp.MustCompile(`xczu.+eg`), variant: "eg"},
		{pattern: regexp.MustCompile(`xczu.+ev`), variant: "ev"},
		{pattern: regexp.MustCompile(`xck26`), variant: "ev"},
		{pattern: regexp.MustCompile(`xck24`), variant: "eg"},
	},
	SocFamilyVersal: {
		{pattern: regexp.MustCompile(`xcvm.+`), variant: "prime"},
		{pattern: regexp.MustCompile(`xcvc.+`), variant: "ai-core"},
		{pattern: regexp.MustCompile(`xcve.+`), variant: "ai-edge"},
		{pattern: regexp.MustCompile(`xcvn.+`), variant: "net"},
		{pattern: regexp.MustCompile(`xcvp.+`), variant: "premium"},
		{pattern: regexp.MustCompile(`xcvh.+`), variant: "hbm"},
	},
}

// DetectSocVariant maps a device id such as xczu9eg to its variant. Families
// without variants, and ids that match nothing, yield an empty string.
func DetectSocVariant(socFamily string, deviceID string) string {
	id := strings.ToLower(strings.TrimSpace(deviceID))
	if id == "" {
		return ""
	}
	for _, entry := range socVariantPatterns[socFamily] {
		if entry.pattern.MatchString(id) {
			return entry.variant
		}
	}
	return ""
}

// SupportedSocFamily reports whether generation knows the family.
func SupportedSocFamily(socFamily string) bool {
	switch socFamily {
	case SocFamilyZynqMP, SocFamilyVersal, SocFamilyZynq, SocFamilyMicroblaze:
		return true
	default:
		return false
	}
}
