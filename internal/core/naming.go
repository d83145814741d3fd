package core

import (
	"fmt"

	"gen-machineconf/internal/types"
)

// bootloaderDomain is the pseudo domain that flavors a baremetal unit as
// first-stage boot firmware.
const bootloaderDomain = "fsbl"

func domainSuffix(domain string) string {
	if domain == "" || domain == types.NoneValue {
		return ""
	}
	return "-" + domain
}

func baremetalUnitName(tune string, core string, socFamily string, domain string) string {
	return fmt.Sprintf("%s-%s-%s%s-baremetal", tune, core, socFamily, domainSuffix(domain))
}

func freertosUnitName(tune string, core string, socFamily string, domain string) string {
	return fmt.Sprintf("%s-%s-%s%s-freertos", tune, core, socFamily, domainSuffix(domain))
}

// linuxUnitName returns the unit name and whether it is a multiconfig
// target. The domain-less Linux unit is the main build.
func linuxUnitName(tune string, socFamily string, domain string) (string, bool) {
	if domainSuffix(domain) == "" {
		return fmt.Sprintf("%s-%s-linux", tune, socFamily), false
	}
	return fmt.Sprintf("%s-%s-%s-linux", tune, socFamily, domain), true
}
