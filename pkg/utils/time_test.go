package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUserTime(t *testing.T) {
	got, err := ParseUserTime("2024-03-10T08:30:00Z", false)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 10, 8, 30, 0, 0, time.UTC), got)

	got, err = ParseUserTime("2024-03-10", true)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 10, 23, 59, 59, 0, time.UTC), got)

	_, err = ParseUserTime("10/03/2024", false)
	assert.Error(t, err)
}

func TestParseOptionalDate(t *testing.T) {
	got, err := ParseOptionalDate("")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = ParseOptionalDate("2025-12-31")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), *got)

	_, err = ParseOptionalDate("2025-13-01")
	assert.Error(t, err)
}
