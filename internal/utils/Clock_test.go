package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimestamp(t *testing.T) {
	clock := &MockClock{}

	clock.SetNow(time.Date(2024, 5, 1, 10, 15, 30, 123000000, time.UTC))
	assert.Equal(t, "2024-05-01T10:15:30.123", Timestamp(clock))

	clock.SetNow(time.Date(2024, 5, 1, 10, 15, 30, 0, time.UTC))
	assert.Equal(t, "2024-05-01T10:15:30", Timestamp(clock))
}

func TestTimestamp_Parseable(t *testing.T) {
	stamp := Timestamp(SystemClock{})

	_, err := time.Parse(TimestampLayout, stamp)

	assert.NoError(t, err)
}
