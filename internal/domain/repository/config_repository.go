package repository

import (
	"github.com/diillson/envcheck-reports/internal/shared/types"
)

// ConfigRepository defines the interface for loading configuration.
type ConfigRepository interface {
	LoadConfigFile(filePath string) (*types.Config, error)
	// Load reads filePath (optional) and overlays the environment on top of it.
	Load(filePath string) (*types.Config, error)
}
