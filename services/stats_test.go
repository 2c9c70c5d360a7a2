package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGrowthPercent(t *testing.T) {
	assert.Equal(t, 0.0, GrowthPercent(0, 0))
	assert.Equal(t, 100.0, GrowthPercent(5, 0))
	assert.Equal(t, 50.0, GrowthPercent(15, 10))
	assert.Equal(t, -25.0, GrowthPercent(15, 20))
}

func TestMonthWindows(t *testing.T) {
	now := time.Date(2025, time.March, 17, 14, 30, 0, 0, time.UTC)
	prevStart, curStart, nextStart := MonthWindows(now)

	assert.Equal(t, time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC), prevStart)
	assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), curStart)
	assert.Equal(t, time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC), nextStart)
}

func TestMonthWindowsAcrossYearBoundary(t *testing.T) {
	now := time.Date(2025, time.January, 2, 0, 0, 0, 0, time.UTC)
	prevStart, curStart, _ := MonthWindows(now)

	assert.Equal(t, time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC), prevStart)
	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), curStart)
}
