package config

import (
	"github.com/teranos/mutigen/errors"
	"github.com/teranos/mutigen/internal/format"
)

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	// Workers: 0 = GOMAXPROCS, negative is invalid
	if c.Generator.Workers < 0 {
		return errors.Newf("generator.workers must be >= 0, got %d", c.Generator.Workers)
	}
	if c.Output.Dir == "" {
		return errors.New("output.dir cannot be empty")
	}
	if _, err := format.Parse(c.Output.Formatter); err != nil {
		return errors.Wrap(err, "output.formatter")
	}
	if err := c.Options("").Validate(); err != nil {
		return errors.WithHint(errors.Wrap(err, "generator"),
			"check the generator.* keys with 'mutigen config show'")
	}
	return nil
}
