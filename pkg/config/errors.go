package config

import "fmt"

// ConfigError is a missing or malformed setting. It aborts a run before any
// work is done.
type ConfigError struct {
	Field string
	Msg   string
	Err   error
}

func (e *ConfigError) Error() string {
	switch {
	case e.Err != nil && e.Msg != "":
		return fmt.Sprintf("config %s: %s: %v", e.Field, e.Msg, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("config %s: %v", e.Field, e.Err)
	default:
		return fmt.Sprintf("config %s: %s", e.Field, e.Msg)
	}
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
