package main

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIntervals(t *testing.T) {
	intervals, err := parseIntervals([]string{"08:30-09:00", " 12:00 - 13:00 "})
	require.NoError(t, err)
	require.Len(t, intervals, 2)
	assert.Equal(t, "08:30", intervals[0].StartTime.String())
	assert.Equal(t, "09:00", intervals[0].EndTime.String())
	assert.Equal(t, "12:00", intervals[1].StartTime.String())
	assert.Equal(t, "13:00", intervals[1].EndTime.String())
}

func TestParseIntervals_Invalid(t *testing.T) {
	for _, v := range []string{"08:30", "08:30-09:00-10:00", "8am-9am"} {
		_, err := parseIntervals([]string{v})
		assert.Error(t, err, v)
	}
}

func TestSlotsFlags_ToRequest(t *testing.T) {
	today := time.Date(2026, 3, 10, 15, 4, 0, 0, time.UTC)

	f := slotsFlags{
		open:        "08:00",
		close:       "10:00",
		granularity: 30,
		booked:      []string{"08:30-09:00"},
		emergency:   true,
		now:         "08:10",
	}

	req, err := f.toRequest(today)
	require.NoError(t, err)

	assert.Equal(t, "08:00", req.Window.OpenTime.String())
	assert.Equal(t, "10:00", req.Window.CloseTime.String())
	assert.Equal(t, 30*time.Minute, req.Window.SlotGranularity)
	assert.Len(t, req.Booked, 1)
	assert.Empty(t, req.Blackout)
	assert.True(t, req.Emergency)
	assert.Equal(t, time.Date(2026, 3, 10, 8, 10, 0, 0, time.UTC), req.Now)
}

func TestSlotsFlags_ToRequestRejectsBadTime(t *testing.T) {
	f := slotsFlags{open: "25:00", close: "10:00", granularity: 30}

	_, err := f.toRequest(time.Now())
	assert.ErrorIs(t, err, errInvalidFlag)
}

func TestSlotsCmd_PrintsJSON(t *testing.T) {
	cmd := slotsCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--open", "08:00", "--close", "09:30", "--booked", "08:30-09:00"})

	require.NoError(t, cmd.Execute())

	var slots []slotOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &slots))
	require.Len(t, slots, 2)
	assert.Equal(t, "08:00 - 08:30", slots[0].Label)
	assert.Equal(t, "09:00 - 09:30", slots[1].Label)
	assert.Equal(t, 30, slots[1].DurationMinutes)
}

func TestSlotsCmd_InvalidWindow(t *testing.T) {
	cmd := slotsCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--open", "10:00", "--close", "09:00"})

	assert.Error(t, cmd.Execute())
}
