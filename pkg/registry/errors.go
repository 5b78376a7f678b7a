package registry

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrActionNotRegistered = errors.New("action type not registered")
	ErrInvalidConfig       = errors.New("invalid action configuration")
)

// ConfigError lists the schema violations of an action configuration.
type ConfigError struct {
	ActionType string
	Violations []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s for %s: %s", ErrInvalidConfig, e.ActionType, strings.Join(e.Violations, "; "))
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

func IsActionNotRegistered(err error) bool {
	return errors.Is(err, ErrActionNotRegistered)
}

func IsInvalidConfig(err error) bool {
	return errors.Is(err, ErrInvalidConfig)
}
