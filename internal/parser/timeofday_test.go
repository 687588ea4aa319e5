package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, minute int) time.Time {
	return time.Date(2024, time.March, 15, hour, minute, 9, 250, time.UTC)
}

func TestResolveTimestamp_Markers(t *testing.T) {
	now := at(14, 5)

	tests := []struct {
		name     string
		span     string
		wantHour int
		wantMin  int
	}{
		{"pm adds twelve", "7:15 pm", 19, 15},
		{"pm leaves noon", "12:30 pm", 12, 30},
		{"am unchanged", "9:45 am", 9, 45},
		{"midnight is zero", "12:05 am", 0, 5},
		{"marker case insensitive", "7:15 PM", 19, 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveTimestamp(now, tt.span)
			assert.Equal(t, tt.wantHour, got.Hour())
			assert.Equal(t, tt.wantMin, got.Minute())
			assert.Equal(t, 0, got.Second())
			assert.Equal(t, 0, got.Nanosecond())
			assert.Equal(t, now.Day(), got.Day())
		})
	}
}

func TestResolveTimestamp_BareHourHeuristic(t *testing.T) {
	// Late evening, "9:00" almost certainly means 21:00.
	got := resolveTimestamp(at(21, 0), "9:00")
	assert.Equal(t, 21, got.Hour())

	// Small jumps keep the literal hour.
	got = resolveTimestamp(at(14, 5), "10:30")
	assert.Equal(t, 10, got.Hour())

	// Morning clock never biases toward PM, even on a large jump.
	got = resolveTimestamp(at(8, 0), "1:00")
	assert.Equal(t, 1, got.Hour())
}

func TestResolveTimestamp_NoTokenReturnsNow(t *testing.T) {
	now := at(14, 5)
	assert.Equal(t, now, resolveTimestamp(now, ""))
}
