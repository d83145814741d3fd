package types

type Stack string

const (
	StackLinux     Stack = "linux"
	StackBaremetal Stack = "baremetal"
	StackFreeRTOS  Stack = "freertos"
)

type UnitFlavor string

const (
	UnitFlavorGeneral            UnitFlavor = "general"
	UnitFlavorBootFirmware       UnitFlavor = "boot-firmware"
	UnitFlavorManagementFirmware UnitFlavor = "management-firmware"
)

// OSIntent is the stack a core's os hint asks for.
type OSIntent string

const (
	OSIntentUnset     OSIntent = ""
	OSIntentLinux     OSIntent = "linux"
	OSIntentBaremetal OSIntent = "baremetal"
	OSIntentFreeRTOS  OSIntent = "freertos"
	OSIntentUnknown   OSIntent = "unknown"
)

type CacheStatus string

const (
	CacheChanged   CacheStatus = "changed"
	CacheUnchanged CacheStatus = "unchanged"
)
