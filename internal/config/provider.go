// SPDX-License-Identifier: MPL-2.0

package config

// LoadOptions defines explicit configuration loading inputs.
type LoadOptions struct {
	// ConfigFilePath forces loading from a specific config file when set.
	ConfigFilePath string
}

// Provider loads configuration from explicit options. The indirection lets
// tests substitute fixed configurations for the file-backed loader.
type Provider interface {
	Load(opts LoadOptions) (*Config, error)
}

type fileProvider struct{}

// NewProvider creates the file-backed configuration provider.
func NewProvider() Provider {
	return &fileProvider{}
}

// Load reads configuration from the requested source.
func (p *fileProvider) Load(opts LoadOptions) (*Config, error) {
	return loadWithOptions(opts)
}
