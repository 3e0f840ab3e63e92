package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimer(t *testing.T) {
	timer := NewNamedTimer("decode")
	assert.Equal(t, "decode", timer.Name())

	time.Sleep(10 * time.Millisecond)
	assert.GreaterOrEqual(t, timer.Elapsed(), 10*time.Millisecond)

	duration := timer.Stop()
	assert.GreaterOrEqual(t, duration, 10*time.Millisecond)
	assert.Equal(t, duration, timer.Duration())

	str := timer.String()
	assert.Contains(t, str, "decode")
}

func TestUnnamedTimer(t *testing.T) {
	timer := NewTimer()
	assert.Empty(t, timer.Name())
	timer.Stop()
	assert.NotEmpty(t, timer.String())
}
