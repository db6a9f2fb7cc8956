package almanac

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayFacts(t *testing.T) {
	loc := time.FixedZone("CST", 8*3600)
	day := DayFacts(time.Date(2024, 2, 10, 9, 0, 0, 0, loc))

	assert.Equal(t, "2024-02-10", day.Solar)
	// 2024-02-10 是甲辰年正月初一
	assert.Equal(t, "正月初一", day.LunarDate)
	assert.Equal(t, "甲辰", day.YearGanZhi)
	assert.Equal(t, "龙", day.YearZodiac)
	assert.Contains(t, day.Mansion, "宿")
	assert.NotEmpty(t, day.DayGanZhi)
	assert.NotEmpty(t, day.Weekday)
}

func TestBirthChart(t *testing.T) {
	birth := time.Date(1990, 6, 15, 8, 30, 0, 0, time.UTC)

	t.Run("with hour", func(t *testing.T) {
		chart := BirthChart(birth, true)
		assert.Equal(t, "庚午", chart.Year)
		assert.Equal(t, "马", chart.Zodiac)
		assert.NotEmpty(t, chart.Month)
		assert.NotEmpty(t, chart.Day)
		assert.NotEmpty(t, chart.Hour)
	})

	t.Run("without hour", func(t *testing.T) {
		chart := BirthChart(birth, false)
		assert.Equal(t, "庚午", chart.Year)
		assert.Empty(t, chart.Hour)
	})
}

func TestSynthesizeFortuneIsDeterministicPerDate(t *testing.T) {
	day := time.Date(2025, 3, 8, 12, 0, 0, 0, time.UTC)

	first := SynthesizeFortune(day)
	second := SynthesizeFortune(day)
	require.Equal(t, first, second)

	assert.Equal(t, "2025-03-08", first.Date)
	assert.GreaterOrEqual(t, first.LuckyNumber, 1)
	assert.LessOrEqual(t, first.LuckyNumber, 9)
	assert.Contains(t, directions, first.LuckyDirection)
	assert.NotEmpty(t, first.GoodFor)
	assert.NotEmpty(t, first.BadFor)
	assert.NotEmpty(t, first.LunarDate)
}

func TestSample(t *testing.T) {
	pool := []string{"a", "b", "c", "d"}

	assert.Equal(t, pool, sample(nil, pool, 10))

	got := sample(rand.New(rand.NewSource(1)), pool, 2)
	require.Len(t, got, 2)
	assert.NotEqual(t, got[0], got[1])
}
