package chapters

import "fmt"

// Default pipeline tuning values.
const (
	DefaultBatchSize        = 10
	DefaultWidth            = 10
	DefaultDensityThreshold = 0.8
)

// Config holds the chapter pipeline's tuning knobs.
type Config struct {
	// BatchSize is how many segments are popped from the pool per
	// classification round.
	BatchSize int `yaml:"batch_size" mapstructure:"batch_size" validate:"gte=0"`

	// Width bounds concurrent oracle calls within a pipeline stage.
	Width int `yaml:"width" mapstructure:"width" validate:"gte=0"`

	// DensityThreshold is the stopping heuristic: a chapter stops consuming
	// batches when the in-chapter fraction of a batch falls strictly below
	// this value.
	DensityThreshold float64 `yaml:"density_threshold" mapstructure:"density_threshold" validate:"gte=0,lte=1"`
}

// ApplyDefaults fills in zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.BatchSize == 0 {
		c.BatchSize = DefaultBatchSize
	}
	if c.Width == 0 {
		c.Width = DefaultWidth
	}
	if c.DensityThreshold == 0 {
		c.DensityThreshold = DefaultDensityThreshold
	}
}

// Validate checks the tuning values.
func (c *Config) Validate() error {
	if c.BatchSize < 0 {
		return fmt.Errorf("chapters: batch_size must be positive (got %d)", c.BatchSize)
	}
	if c.DensityThreshold < 0 || c.DensityThreshold > 1 {
		return fmt.Errorf("chapters: density_threshold must be in [0,1] (got %v)", c.DensityThreshold)
	}
	return nil
}
