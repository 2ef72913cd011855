package relaxcg

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the tagger's settings.
type Config struct {
	// Grammar is the path of the constraint grammar file.
	Grammar string `yaml:"grammar"`
	// MaxIterations bounds the relaxation iterations per sentence.
	MaxIterations int `yaml:"max_iterations"`
	// ScaleFactor normalizes label supports; 0 disables normalization.
	ScaleFactor float64 `yaml:"scale_factor"`
	// Epsilon is the convergence threshold.
	Epsilon float64 `yaml:"epsilon"`
	// ForceSelect keeps a single analysis per word after tagging.
	ForceSelect bool `yaml:"force_select"`
}

// DefaultConfig returns the stock solver settings: 500 iterations, scale
// factor 67 and epsilon 0.001.
func DefaultConfig() Config {
	return Config{
		MaxIterations: 500,
		ScaleFactor:   67,
		Epsilon:       0.001,
	}
}

// LoadConfig reads a YAML configuration file. Keys absent from the file
// keep their DefaultConfig values. A relative grammar path is kept as is.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, &Error{Kind: KindIO, Message: "read config", Cause: err}
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, &Error{Kind: KindConfig, Message: "parse config " + path, Cause: err}
	}
	return cfg, cfg.Validate()
}

// Validate checks the solver parameters.
func (c Config) Validate() error {
	switch {
	case c.MaxIterations < 1:
		return newError(KindConfig, "max_iterations must be at least 1, got %d", c.MaxIterations)
	case c.ScaleFactor < 0:
		return newError(KindConfig, "scale_factor must not be negative, got %g", c.ScaleFactor)
	case !(c.Epsilon > 0):
		return newError(KindConfig, "epsilon must be positive, got %g", c.Epsilon)
	}
	return nil
}
