package types

// Role keys of the dependency map consumed by machine configuration emitters.
const (
	RoleLinuxDT = "linux-dt"

	DependsSuffix   = "-depends"
	DeployDirSuffix = "-deploy-dir"
)

// Firmware roles present in supported topologies.
const (
	FirmwareRoleFSBL   = "fsbl"
	FirmwareRoleR5FSBL = "r5fsbl"
	FirmwareRolePMU    = "pmu"
	FirmwareRolePLM    = "plm"
	FirmwareRolePSM    = "psm"
)

// DependencyRef points a firmware role at the task of another multiconfig.
type DependencyRef struct {
	Role   string
	Unit   string
	Recipe string
	Task   string
}

// DependencyMap is the flat role-keyed output of a generation pass.
type DependencyMap map[string]string

func DependsKey(role string) string {
	return role + DependsSuffix
}

func DeployDirKey(role string) string {
	return role + DeployDirSuffix
}
