package kpipe_test

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/birdayz/kpipe/kpipe"
	"github.com/birdayz/kpipe/ktype"
	"go.uber.org/multierr"
)

type checkedConfig struct {
	err error
}

func (c *checkedConfig) Validate() error {
	return c.err
}

func TestValidate(t *testing.T) {
	reverseStage := kpipe.MustComputation(ktype.Of[string]().Then(ktype.Of[string]()), reverse)
	addStage := kpipe.MustComputation(ktype.Of[string]().Then(ktype.Of[int]()), add)

	t.Run("valid pipeline", func(t *testing.T) {
		p := kpipe.MustCompose(
			kpipe.Source(&checkedConfig{}, "numbers"),
			reverseStage,
			addStage,
			kpipe.Sink(&checkedConfig{}),
		)
		assert.NoError(t, p.Validate())
	})

	t.Run("without source and sink", func(t *testing.T) {
		assert.NoError(t, kpipe.MustCompose(reverseStage, addStage).Validate())
	})

	t.Run("every problem is reported", func(t *testing.T) {
		errBadConfig := errors.New("bad config")
		p := kpipe.MustCompose(
			kpipe.Sink(&sinkConfig{}),
			reverseStage,
			kpipe.Source(&checkedConfig{err: errBadConfig}, "late source"),
			reverseStage,
			kpipe.Sink(&sinkConfig{}),
		)

		err := p.Validate()
		assert.True(t, errors.Is(err, kpipe.ErrInvalidStage))
		assert.True(t, errors.Is(err, errBadConfig))

		// Sink not last, source not first, name with whitespace, duplicate
		// computation and the invalid config.
		assert.Equal(t, 5, len(multierr.Errors(err)))
	})
}
