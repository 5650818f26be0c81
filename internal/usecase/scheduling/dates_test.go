package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekdayMonday0(t *testing.T) {
	assert.Equal(t, 0, weekdayMonday0(mon(12, 0)))                   // lunes
	assert.Equal(t, 1, weekdayMonday0(mon(12, 0).AddDate(0, 0, 1)))  // martes
	assert.Equal(t, 6, weekdayMonday0(mon(12, 0).AddDate(0, 0, -1))) // domingo
}

func TestCombine(t *testing.T) {
	got, ok := combine(mon(0, 0), "08:30", testLoc)
	require.True(t, ok)
	assert.Equal(t, mon(8, 30), got)

	_, ok = combine(mon(0, 0), "8h30", testLoc)
	assert.False(t, ok)
}

func TestDayRange(t *testing.T) {
	from, to := dayRange(mon(15, 45), testLoc)
	assert.Equal(t, mon(0, 0), from)
	assert.Equal(t, mon(0, 0).AddDate(0, 0, 1), to)
}

func TestWeekRangeIsMondayBased(t *testing.T) {
	// desde un jueves, la semana arranca el lunes anterior
	thu := mon(10, 0).AddDate(0, 0, 3)
	from, to := weekRange(thu, testLoc)
	assert.Equal(t, mon(0, 0), from)
	assert.Equal(t, mon(0, 0).AddDate(0, 0, 7), to)

	// el domingo pertenece a la misma semana
	sun := mon(10, 0).AddDate(0, 0, 6)
	from, _ = weekRange(sun, testLoc)
	assert.Equal(t, mon(0, 0), from)
}
