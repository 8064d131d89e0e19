package monitor

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrAlreadyTracked = errors.New("address is already tracked on this chain")
	ErrNoHistory      = errors.New("no history found")
	ErrNotTracked     = errors.New("no tracked address matches")
)

// ConfigurationError is returned when a change to the tracked set is
// rejected. The configuration on disk is left unchanged.
type ConfigurationError struct {
	Err error
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Err.Error()
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// NotTrackedError is returned when a name matches no tracked address on
// Chain. Suggestions holds close tracked names, best first.
type NotTrackedError struct {
	Query       string
	Chain       string
	Suggestions []string
}

func (e *NotTrackedError) Error() string {
	msg := fmt.Sprintf("%s %q on %s", ErrNotTracked, e.Query, e.Chain)
	if len(e.Suggestions) == 0 {
		return msg
	}
	return fmt.Sprintf("%s (did you mean %s?)", msg, strings.Join(e.Suggestions, ", "))
}

func (e *NotTrackedError) Is(target error) bool {
	return target == ErrNotTracked
}
