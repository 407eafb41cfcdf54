package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDate(t *testing.T) {
	ts := time.Date(2024, time.March, 4, 18, 30, 0, 0, time.UTC)
	assert.Equal(t, "March 4, 2024", FormatDate(ts))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 1, Clamp(-3, 1, 50))
	assert.Equal(t, 50, Clamp(80, 1, 50))
	assert.Equal(t, 20, Clamp(20, 1, 50))
	assert.Equal(t, 100.0, Clamp(10.0, 100, 50000))
}
