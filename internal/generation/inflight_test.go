package generation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInFlight_RejectsConcurrentSameKey(t *testing.T) {
	f := NewInFlight()

	release, err := f.Begin("experience/e1")
	require.NoError(t, err)
	assert.True(t, f.Busy("experience/e1"))

	_, err = f.Begin("experience/e1")
	assert.ErrorIs(t, err, ErrInProgress)

	other, err := f.Begin("experience/e2")
	require.NoError(t, err)
	other()

	release()
	release()
	assert.False(t, f.Busy("experience/e1"))

	again, err := f.Begin("experience/e1")
	require.NoError(t, err)
	again()
}

func TestInFlight_DoClearsOnError(t *testing.T) {
	f := NewInFlight()
	boom := errors.New("boom")

	err := f.Do("match", func() error {
		assert.True(t, f.Busy("match"))
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, f.Busy("match"))
}
