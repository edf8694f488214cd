package kpipe

import "github.com/go-logr/logr"

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger used while replaying registrations.
var WithLogger = func(log logr.Logger) Option {
	return func(p *Pipeline) {
		p.log = log
	}
}

// StageOption configures a computation stage.
type StageOption func(*stageOptions)

type stageOptions struct {
	name string
}

// WithName overrides the stage name, which defaults to the function's name.
var WithName = func(name string) StageOption {
	return func(o *stageOptions) {
		o.name = name
	}
}
