package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	tod, err := ParseTimeOfDay("08:30")
	require.NoError(t, err)
	assert.Equal(t, "08:30", tod.String())

	for _, invalid := range []string{"", "8:30am", "25:00", "08:61", "0830"} {
		_, err := ParseTimeOfDay(invalid)
		assert.ErrorIs(t, err, ErrInvalidTimeOfDay, "%q should not parse", invalid)
	}
}

func TestTimeOfDay_Comparisons(t *testing.T) {
	early := TimeOfDay("08:00")
	late := TimeOfDay("18:00")

	assert.True(t, early.Before(late))
	assert.False(t, late.Before(early))
	assert.True(t, late.After(early))
	assert.False(t, early.After(early))
	assert.Equal(t, 8*60, early.Minutes())
}

func TestTimeOfDay_NewFromTime(t *testing.T) {
	moment := time.Date(2025, 6, 2, 14, 5, 33, 0, time.UTC)
	assert.Equal(t, TimeOfDay("14:05"), NewTimeOfDay(moment))
}

func TestTimeOfDay_JSON(t *testing.T) {
	var tod TimeOfDay
	require.NoError(t, json.Unmarshal([]byte(`"09:15"`), &tod))
	assert.Equal(t, TimeOfDay("09:15"), tod)

	assert.Error(t, json.Unmarshal([]byte(`"9am"`), &tod))

	data, err := json.Marshal(TimeOfDay("09:15"))
	require.NoError(t, err)
	assert.Equal(t, `"09:15"`, string(data))
}

func TestTimeOfDay_Scan(t *testing.T) {
	var tod TimeOfDay

	require.NoError(t, tod.Scan("08:00:00"))
	assert.Equal(t, TimeOfDay("08:00"), tod)

	require.NoError(t, tod.Scan([]byte("18:30")))
	assert.Equal(t, TimeOfDay("18:30"), tod)

	require.NoError(t, tod.Scan(time.Date(2025, 6, 2, 7, 45, 0, 0, time.UTC)))
	assert.Equal(t, TimeOfDay("07:45"), tod)

	require.NoError(t, tod.Scan(nil))
	assert.True(t, tod.IsZero())

	assert.Error(t, tod.Scan(12345))
}
