package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDate(t *testing.T) {
	t.Run("EDI Date", func(t *testing.T) {
		assert.Equal(t, "1985-06-15", NormalizeDate("19850615"))
	})

	t.Run("ISO Date Passes Through", func(t *testing.T) {
		assert.Equal(t, "1985-06-15", NormalizeDate("1985-06-15"))
	})

	t.Run("Idempotent", func(t *testing.T) {
		for _, input := range []string{"19850615", "1985-06-15", "20240101-1230"} {
			once := NormalizeDate(input)
			assert.Equal(t, once, NormalizeDate(once), "normalizing twice must equal normalizing once for %q", input)
		}
	})

	t.Run("Combined Date Time Becomes UTC Instant", func(t *testing.T) {
		assert.Equal(t, "2024-01-01T12:30:00Z", NormalizeDate("20240101-1230"))
	})

	t.Run("Empty And Unknown Shapes Pass Through", func(t *testing.T) {
		assert.Equal(t, "", NormalizeDate("  "))
		assert.Equal(t, "Jan 1", NormalizeDate("Jan 1"))
	})
}

func TestSplitDateRange(t *testing.T) {
	t.Run("RD8 Range", func(t *testing.T) {
		start, end := SplitDateRange("20240101-20240131")
		assert.Equal(t, "2024-01-01", start)
		assert.Equal(t, "2024-01-31", end)
	})

	t.Run("Single Date", func(t *testing.T) {
		start, end := SplitDateRange("20240115")
		assert.Equal(t, "2024-01-15", start)
		assert.Equal(t, start, end)
	})
}

func TestParseAmount(t *testing.T) {
	assert.Equal(t, 450.0, ParseAmount("450"))
	assert.Equal(t, 25.5, ParseAmount(" 25.50 "))
	assert.Equal(t, 0.0, ParseAmount(""))
	assert.Equal(t, 0.0, ParseAmount("not-a-number"))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "450", FormatAmount(450))
	assert.Equal(t, "25.5", FormatAmount(25.5))
}
