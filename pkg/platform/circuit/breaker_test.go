package circuit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBreaker(t *testing.T) {
	t.Run("opens after consecutive failures", func(t *testing.T) {
		b := New("departments", WithFailureThreshold(3))
		assert.Equal(t, NoChange, b.Failure())
		assert.Equal(t, NoChange, b.Failure())
		assert.Equal(t, Opened, b.Failure())
		assert.True(t, b.IsOpen())
		assert.Equal(t, NoChange, b.Failure())
		assert.Equal(t, "open", b.State().String())
	})

	t.Run("a success resets the failure run", func(t *testing.T) {
		b := New("departments", WithFailureThreshold(2))
		b.Failure()
		assert.Equal(t, NoChange, b.Success())
		assert.Equal(t, NoChange, b.Failure())
		assert.False(t, b.IsOpen())
	})

	t.Run("closes after consecutive successes", func(t *testing.T) {
		b := New("departments", WithFailureThreshold(1), WithSuccessThreshold(2))
		assert.Equal(t, Opened, b.Failure())
		assert.Equal(t, NoChange, b.Success())
		b.Failure()
		assert.Equal(t, NoChange, b.Success())
		assert.Equal(t, Closed, b.Success())
		assert.Equal(t, StateClosed, b.State())
	})

	t.Run("ignores non-positive thresholds", func(t *testing.T) {
		b := New("departments", WithFailureThreshold(0), WithSuccessThreshold(-1))
		assert.Equal(t, 5, b.failureThreshold)
		assert.Equal(t, 3, b.successThreshold)
		assert.Equal(t, "departments", b.Name())
	})
}
