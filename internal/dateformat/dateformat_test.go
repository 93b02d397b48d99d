package dateformat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sample = time.Date(2024, time.March, 2, 15, 4, 5, 123_000_000, time.UTC)

func TestFormat_Moment(t *testing.T) {
	tests := map[string]string{
		"YYYY-MM-DD HH:mm":     "2024-03-02 15:04",
		"YY/M/D":               "24/3/2",
		"dddd, MMMM Do":        "Saturday, March 2nd",
		"ddd MMM":              "Sat Mar",
		"hh:mm:ss.SSS A":       "03:04:05.123 PM",
		"h a":                  "3 pm",
		"[Week] WW, [Q]Q":      "Week 09, Q1",
		"DDDD":                 "062",
		"X":                    "1709391845",
		"Z":                    "+00:00",
		"[YYYY is literal] YY": "YYYY is literal 24",
		"MMM Do":               "Mar 2nd",
	}
	for pattern, want := range tests {
		assert.Equal(t, want, Format(sample, pattern), "pattern %q", pattern)
	}
}

func TestFormat_Ordinals(t *testing.T) {
	tests := map[int]string{1: "1st", 11: "11th", 12: "12th", 22: "22nd", 23: "23rd", 30: "30th"}
	for day, want := range tests {
		d := time.Date(2024, time.January, day, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, want, Format(d, "Do"), "day %d", day)
	}
}

func TestFormat_KeepsLocation(t *testing.T) {
	zone := time.FixedZone("UTC+2", 2*60*60)
	d := time.Date(2024, time.March, 2, 23, 30, 0, 0, zone)
	assert.Equal(t, "2024-03-02 23:30 +02:00", Format(d, "YYYY-MM-DD HH:mm Z"))
}

func TestForSyntax(t *testing.T) {
	f, err := ForSyntax("")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-02", f(sample, "YYYY-MM-DD"))

	f, err = ForSyntax(SyntaxStrftime)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-02 15:04", f(sample, "%Y-%m-%d %H:%M"))

	_, err = ForSyntax("cron")
	assert.Error(t, err)
}
