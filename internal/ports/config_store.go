package ports

import "gen-machineconf/internal/types"

// ConfigStorePort reads the resolved configuration store.
type ConfigStorePort interface {
	ReadConfig(path string) (types.SystemConfig, error)
}
