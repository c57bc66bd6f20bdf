package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCheckInTimes_SameDay(t *testing.T) {
	got := GenerateCheckInTimes(TimeRange{"09:00", "11:00"}, 30)
	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30", "11:00"}, got)
}

func TestGenerateCheckInTimes_WrapsPastMidnight(t *testing.T) {
	r, ok := ParseTimeRange("14h-12h")
	require.True(t, ok)
	require.Equal(t, TimeRange{"14:00", "12:00"}, r)

	got := GenerateCheckInTimes(r, 60)

	assert.Equal(t, "14:00", got[0])
	assert.Equal(t, "12:00", got[len(got)-1])
	assert.Contains(t, got, "23:00")
	assert.Contains(t, got, "00:00")
	assert.Len(t, got, 23)

	idxMidnight := indexOf(got, "00:00")
	idx23 := indexOf(got, "23:00")
	assert.Greater(t, idxMidnight, idx23, "must keep going after 23:00 instead of stopping")
}

func TestGenerateCheckInTimes_StartEqualsEnd(t *testing.T) {
	got := GenerateCheckInTimes(TimeRange{"10:00", "10:00"}, 60)
	require.NotEmpty(t, got)
	assert.Equal(t, "10:00", got[0])
	assert.Len(t, got, 24, "a full day, boundary value only once")
}

func TestGenerateCheckInTimes_StepLargerThanRange(t *testing.T) {
	got := GenerateCheckInTimes(TimeRange{"10:00", "10:15"}, 60)
	assert.Equal(t, []string{"10:00"}, got)
}

func TestGenerateCheckInTimes_Defaults(t *testing.T) {
	got := GenerateCheckInTimes(TimeRange{"08:00", "09:00"}, 0)
	assert.Equal(t, []string{"08:00", "08:30", "09:00"}, got)

	all := GenerateCheckInTimes(TimeRange{"bad", "input"}, 60)
	assert.Equal(t, "00:00", all[0])
	assert.Equal(t, "23:00", all[len(all)-1])
}

func TestGenerateCheckInTimes_IsRestartable(t *testing.T) {
	r := TimeRange{"22:00", "02:00"}
	assert.Equal(t, GenerateCheckInTimes(r, 15), GenerateCheckInTimes(r, 15))
}

func indexOf(values []string, v string) int {
	for i, x := range values {
		if x == v {
			return i
		}
	}
	return -1
}
