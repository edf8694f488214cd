package main

import (
	"flag"
	"os"
	"strings"
	"unicode"

	"github.com/birdayz/kpipe/kconfig"
	"github.com/birdayz/kpipe/kpipe"
	"github.com/birdayz/kpipe/kserde"
	"github.com/birdayz/kpipe/ktype"
	"github.com/birdayz/kpipe/pkg/log"
	"github.com/go-logr/logr"
	"github.com/rs/zerolog"
)

func main() {
	host := flag.String("host", "127.0.0.1", "address of the text source and the count sink")
	inPort := flag.Int("in", 7010, "source port")
	outPort := flag.Int("out", 7002, "sink port")
	verbose := flag.Bool("v", false, "log every registration")
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	logger := log.NewLogr(level)

	pipeline, err := buildPipeline(*host, *inPort, *outPort, logger)
	if err != nil {
		logger.Error(err, "Invalid pipeline")
		os.Exit(1)
	}
	if err := pipeline.Validate(); err != nil {
		logger.Error(err, "Invalid pipeline")
		os.Exit(1)
	}

	if err := pipeline.Init(&planBuilder{log: logger.WithName("builder")}); err != nil {
		logger.Error(err, "Failed to register pipeline")
		os.Exit(1)
	}
}

func buildPipeline(host string, inPort, outPort int, logger logr.Logger) (*kpipe.Pipeline, error) {
	split, err := kpipe.Computation(
		ktype.Of[string]().Then(ktype.Of[[]string]()),
		splitWords,
	)
	if err != nil {
		return nil, err
	}

	count, err := kpipe.Computation(
		ktype.Of[[]string]().
			Then(ktype.State[*WordTotals](ktype.PartitionBy(partitionByLetter, letterKeys()))).
			Then(ktype.Tuple(ktype.TypeOf[[]WordCount]().First(), ktype.TypeOf[bool]().First())),
		countWords,
	)
	if err != nil {
		return nil, err
	}

	return kpipe.ComposeWith(
		[]kpipe.Option{kpipe.WithLogger(logger)},
		kpipe.Source(kconfig.NewTCPSource[string](host, inPort, kserde.StringDeserializer), "word-count"),
		split,
		count,
		kpipe.Sink(kconfig.NewTCPSink(host, outPort, kserde.JSONSerializer[[]WordCount]())),
	)
}

// WordCount is the running total of one word.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// WordTotals is the state of one partition.
type WordTotals struct {
	counts map[string]int
}

func splitWords(line string) []string {
	return strings.FieldsFunc(strings.ToLower(line), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})
}

func countWords(words []string, totals *WordTotals) ([]WordCount, bool) {
	if totals.counts == nil {
		totals.counts = make(map[string]int)
	}
	out := make([]WordCount, 0, len(words))
	for _, w := range words {
		totals.counts[w]++
		out = append(out, WordCount{Word: w, Count: totals.counts[w]})
	}
	return out, len(out) > 0
}

func partitionByLetter(data any) ktype.Key {
	words, _ := data.([]string)
	if len(words) == 0 || words[0] == "" {
		return "!"
	}
	first := rune(words[0][0])
	if first < 'a' || first > 'z' {
		return "!"
	}
	return string(first)
}

func letterKeys() []ktype.Key {
	keys := make([]ktype.Key, 0, 27)
	for r := 'a'; r <= 'z'; r++ {
		keys = append(keys, string(r))
	}
	return append(keys, "!")
}
