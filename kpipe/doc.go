// Package kpipe composes type-checked pipelines of computations and registers
// them with a streaming runtime.
//
// # Overview
//
// A pipeline is built in two phases:
//
// 1. **Build Phase**: wrap functions into stages and chain them; types are
// checked as each stage is appended
// 2. **Init Phase**: replay the registration of every stage against the
// runtime's ApplicationBuilder
//
// # Basic Usage
//
//	import (
//	    "github.com/birdayz/kpipe/kpipe"
//	    "github.com/birdayz/kpipe/ktype"
//	)
//
//	func reverse(data string) string { ... }
//	func parse(data string) int { ... }
//
//	reverseStage := kpipe.MustComputation(ktype.Of[string]().Then(ktype.Of[string]()), reverse)
//	parseStage := kpipe.MustComputation(ktype.Of[string]().Then(ktype.Of[int]()), parse)
//
//	pipeline := kpipe.MustCompose(
//	    kpipe.Source(sourceConfig, "numbers"),
//	    reverseStage,
//	    parseStage,
//	    kpipe.Sink(sinkConfig),
//	)
//
//	if err := pipeline.Init(applicationBuilder); err != nil {
//	    ...
//	}
//
// Init calls, in order, NewPipeline("numbers", sourceConfig), To(reverse),
// To(parse) and ToSink(sinkConfig).
//
// # Type Safety
//
// Composing parseStage before reverseStage fails with ErrIncompatibleStages,
// since parse produces an int and reverse expects a string. An output is
// compatible with an input if it is assignable to it, so a stage producing a
// concrete type may feed a stage expecting an interface it implements.
//
// Calling a stage function directly, or through the runtime, checks every
// argument and result against the declared types (see package kcall).
//
// # State
//
// A chain declaring a state type makes the stage stateful. The state is
// passed as the last argument:
//
//	chain := ktype.Of[string]().
//	    Then(ktype.State[*WordCounts]()).
//	    Then(ktype.Tuple(ktype.TypeOf[string]().First(), ktype.TypeOf[bool]().First()))
//
//	func count(word string, counts *WordCounts) (string, bool) { ... }
//
// Such a stage registers through ToStateful. Adding ktype.PartitionBy to the
// state tag registers through ToStatePartition with the partition function
// and keyspace.
//
// # Thread Safety
//
// Stages and pipelines are immutable once built and may be shared. Init makes
// no concurrent calls into the builder.
package kpipe
