package ports

import "go.trai.ch/scrwatch/internal/core/domain"

// ConfigLoader defines the interface for loading the runtime configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration at path, falling back to defaults when the file does not exist.
	Load(path string) (*domain.Config, error)
}
