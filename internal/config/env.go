package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parse fills target from the process environment, or from environ when it
// is not nil.
func parse(target any, environ map[string]string) error {
	opts := env.Options{}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(target, opts); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
