package config

import (
	"fmt"
	"time"

	"github.com/kbukum/progressive/errors"
	"github.com/kbukum/progressive/logger"
	"github.com/kbukum/progressive/validation"
)

// Defaults for time slicing.
const (
	DefaultBudget = 8 * time.Millisecond
	DefaultFrame  = 16 * time.Millisecond
)

// SlicingConfig controls how an event loop drives a waiter.
type SlicingConfig struct {
	// Budget is the time each frame may spend processing elements.
	Budget time.Duration `yaml:"budget" mapstructure:"budget" validate:"gt=0"`
	// Frame is the interval between frames.
	Frame time.Duration `yaml:"frame" mapstructure:"frame" validate:"gt=0"`
}

// ApplyDefaults fills unset durations.
func (c *SlicingConfig) ApplyDefaults() {
	if c.Budget == 0 {
		c.Budget = DefaultBudget
	}
	if c.Frame == 0 {
		c.Frame = DefaultFrame
	}
}

// Validate checks that both durations are positive and that the budget
// fits inside a frame.
func (c *SlicingConfig) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	if c.Budget > c.Frame {
		return errors.InvalidInput("budget",
			fmt.Sprintf("budget %s exceeds frame %s", c.Budget, c.Frame))
	}
	return nil
}

// ServiceConfig is the configuration of a progressive command.
type ServiceConfig struct {
	Name        string        `yaml:"name" mapstructure:"name"`
	Environment string        `yaml:"environment" mapstructure:"environment"`
	Debug       bool          `yaml:"debug" mapstructure:"debug"`
	Logging     logger.Config `yaml:"logging" mapstructure:"logging"`
	Slicing     SlicingConfig `yaml:"slicing" mapstructure:"slicing"`
}

// ApplyDefaults applies default values to every section.
func (c *ServiceConfig) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
	// Propagate service name into logging so Init() uses the right tag.
	if c.Logging.ServiceName == "" && c.Name != "" {
		c.Logging.ServiceName = c.Name
	}
	c.Logging.ApplyDefaults()
	c.Slicing.ApplyDefaults()
}

// Validate validates every section. Errors are *errors.AppError with code
// INVALID_CONFIG wrapping the first failure.
func (c *ServiceConfig) Validate() error {
	if c.Name == "" {
		return errors.InvalidConfig(fmt.Errorf("config.name is required"))
	}
	validEnvs := []string{"development", "staging", "production"}
	found := false
	for _, v := range validEnvs {
		if c.Environment == v {
			found = true
			break
		}
	}
	if !found {
		return errors.InvalidConfig(fmt.Errorf("config.environment must be one of %v (got: %s)", validEnvs, c.Environment))
	}
	if err := c.Logging.Validate(); err != nil {
		return errors.InvalidConfig(fmt.Errorf("config.logging: %w", err))
	}
	if err := c.Slicing.Validate(); err != nil {
		return errors.InvalidConfig(fmt.Errorf("config.slicing: %w", err))
	}
	return nil
}
