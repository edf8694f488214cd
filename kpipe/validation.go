package kpipe

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

// configValidator is implemented by source and sink configurations that can
// check themselves, such as those in package kconfig.
type configValidator interface {
	Validate() error
}

// Validate checks the structure of the pipeline and reports every problem
// found:
//
//   - a source may only be the first stage, a sink only the last
//   - stage names must be non-empty and must not contain whitespace
//   - computation names must be unique, since stateful runtimes key state by name
//   - source and sink configurations implementing Validate() error must be valid
//
// Type compatibility is not checked again; Then already did.
func (p *Pipeline) Validate() error {
	var err error
	seen := make(map[string]int, len(p.stages))

	for i, s := range p.stages {
		switch s.kind {
		case KindSource:
			if i != 0 {
				err = multierr.Append(err, fmt.Errorf("%w: source %q at position %d, sources must come first",
					ErrInvalidStage, s.name, i))
			}
		case KindSink:
			if i != len(p.stages)-1 {
				err = multierr.Append(err, fmt.Errorf("%w: sink at position %d, sinks must come last",
					ErrInvalidStage, i))
			}
		default:
			if prev, ok := seen[s.name]; ok {
				err = multierr.Append(err, fmt.Errorf("%w: computation %q at positions %d and %d",
					ErrInvalidStage, s.name, prev, i))
			} else {
				seen[s.name] = i
			}
		}

		if nameErr := validateName(s.name); nameErr != nil {
			err = multierr.Append(err, fmt.Errorf("position %d: %w", i, nameErr))
		}

		if v, ok := s.config.(configValidator); ok {
			if cfgErr := v.Validate(); cfgErr != nil {
				err = multierr.Append(err, fmt.Errorf("%s stage %q: %w", s.kind, s.name, cfgErr))
			}
		}
	}

	return err
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidStage)
	}
	if strings.ContainsAny(name, " \t\n\r") {
		return fmt.Errorf("%w: name %q cannot contain whitespace", ErrInvalidStage, name)
	}
	return nil
}
