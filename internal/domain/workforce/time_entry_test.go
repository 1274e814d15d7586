package workforce

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeEntry(t *testing.T) {
	employeeID := uuid.New()
	clockIn := time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)

	entry, err := NewTimeEntry(employeeID, clockIn)
	require.NoError(t, err)
	assert.Equal(t, employeeID, entry.EmployeeID)
	assert.Equal(t, clockIn, entry.ClockIn)
	assert.True(t, entry.IsOpen())
}

func TestNewTimeEntryDefaultsClockIn(t *testing.T) {
	entry, err := NewTimeEntry(uuid.New(), time.Time{})
	require.NoError(t, err)
	assert.False(t, entry.ClockIn.IsZero())
}

func TestNewTimeEntryRequiresEmployee(t *testing.T) {
	_, err := NewTimeEntry(uuid.Nil, time.Now())
	assert.Error(t, err)
}

func TestTimeEntryClose(t *testing.T) {
	clockIn := time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)
	entry, err := NewTimeEntry(uuid.New(), clockIn)
	require.NoError(t, err)

	clockOut := clockIn.Add(8 * time.Hour)
	require.NoError(t, entry.Close(clockOut))
	assert.False(t, entry.IsOpen())
	assert.Equal(t, 8*time.Hour, entry.Duration())

	err = entry.Close(clockOut.Add(time.Hour))
	assert.Error(t, err)
}

func TestTimeEntryCloseBeforeClockIn(t *testing.T) {
	clockIn := time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)
	entry, err := NewTimeEntry(uuid.New(), clockIn)
	require.NoError(t, err)

	err = entry.Close(clockIn.Add(-time.Minute))
	assert.Error(t, err)
	assert.True(t, entry.IsOpen())
}

func TestTimeEntryDurationOpenShift(t *testing.T) {
	entry, err := NewTimeEntry(uuid.New(), time.Now().Add(-30*time.Minute))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, entry.Duration(), 30*time.Minute)
}
