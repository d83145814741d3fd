package policies

import (
	"strings"

	"gen-machineconf/internal/types"
)

var intentPrefixes = []struct {
	prefix string
	intent types.OSIntent
}{
	{prefix: "linux", intent: types.OSIntentLinux},
	{prefix: "baremetal", intent: types.OSIntentBaremetal},
	{prefix: "freertos", intent: types.OSIntentFreeRTOS},
}

// ParseOSHint maps a raw os hint to the stack it asks for. Matching is by
// case-insensitive prefix so "linux,smp" still selects Linux.
func ParseOSHint(hint string) types.OSIntent {
	trimmed := strings.ToLower(strings.TrimSpace(hint))
	if trimmed == "" || trimmed == strings.ToLower(types.NoneValue) {
		return types.OSIntentUnset
	}
	for _, entry := range intentPrefixes {
		if strings.HasPrefix(trimmed, entry.prefix) {
			return entry.intent
		}
	}
	return types.OSIntentUnknown
}

// StackForIntent returns the stack an explicit intent selects.
func StackForIntent(intent types.OSIntent) (types.Stack, bool) {
	switch intent {
	case types.OSIntentLinux:
		return types.StackLinux, true
	case types.OSIntentBaremetal:
		return types.StackBaremetal, true
	case types.OSIntentFreeRTOS:
		return types.StackFreeRTOS, true
	default:
		return "", false
	}
}
