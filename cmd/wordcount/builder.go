package main

import (
	"fmt"

	"github.com/birdayz/kpipe/kcall"
	"github.com/birdayz/kpipe/kpipe"
	"github.com/birdayz/kpipe/ktype"
	"github.com/go-logr/logr"
)

// planBuilder logs the registrations a runtime would receive.
type planBuilder struct {
	log logr.Logger
}

var _ kpipe.ApplicationBuilder = (*planBuilder)(nil)

func (b *planBuilder) NewPipeline(name string, config kpipe.SourceConfig) error {
	b.log.Info("New pipeline", "name", name, "source", fmt.Sprint(config))
	return nil
}

func (b *planBuilder) To(c *kcall.Callable) error {
	b.log.Info("Stateless computation", "name", c.Name(), "signature", c.Signature().String())
	return nil
}

func (b *planBuilder) ToStateful(c *kcall.Callable, state ktype.Type, name string) error {
	b.log.Info("Stateful computation", "name", name, "signature", c.Signature().String(), "state", state.String())
	return nil
}

func (b *planBuilder) ToStatePartition(c *kcall.Callable, state ktype.Type, name string, _ ktype.PartitionFunc, keys []ktype.Key) error {
	b.log.Info("Partitioned computation", "name", name, "signature", c.Signature().String(),
		"state", state.String(), "partitions", len(keys))
	return nil
}

func (b *planBuilder) ToSink(config kpipe.SinkConfig) error {
	b.log.Info("Sink", "sink", fmt.Sprint(config))
	return nil
}
