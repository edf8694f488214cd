package kpipe

import (
	"github.com/birdayz/kpipe/kcall"
	"github.com/birdayz/kpipe/ktype"
)

// SourceConfig describes where a pipeline reads its input. It is passed to the
// application builder as is; see package kconfig for TCP and Kafka sources.
type SourceConfig = any

// SinkConfig describes where a pipeline writes its output. It is passed to the
// application builder as is; see package kconfig for TCP and Kafka sinks.
type SinkConfig = any

// ApplicationBuilder is implemented by the streaming runtime. Pipeline.Init
// calls exactly one method per stage, in pipeline order.
type ApplicationBuilder interface {
	// NewPipeline starts a pipeline reading from config.
	NewPipeline(name string, config SourceConfig) error

	// To adds a stateless computation.
	To(c *kcall.Callable) error

	// ToStateful adds a computation sharing a single state instance of the
	// given type, identified by name.
	ToStateful(c *kcall.Callable, state ktype.Type, name string) error

	// ToStatePartition adds a computation whose state is partitioned: fn
	// routes each record to one of the state instances identified by keys.
	ToStatePartition(c *kcall.Callable, state ktype.Type, name string, fn ktype.PartitionFunc, keys []ktype.Key) error

	// ToSink terminates the pipeline, writing to config.
	ToSink(config SinkConfig) error
}
