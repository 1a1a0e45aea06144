package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNow(t *testing.T) {
	_, offset := Now().Zone()
	require.Equal(t, 9*60*60, offset)
}

func TestStartOfDay(t *testing.T) {
	cases := []struct {
		now    time.Time
		expect time.Time
	}{
		{
			now:    time.Date(2024, time.August, 26, 13, 4, 5, 0, Location),
			expect: time.Date(2024, time.August, 26, 0, 0, 0, 0, Location),
		},
		{
			// 16:00 UTC is already the next day in Japan
			now:    time.Date(2024, time.August, 31, 16, 0, 0, 0, time.UTC),
			expect: time.Date(2024, time.September, 1, 0, 0, 0, 0, Location),
		},
		{
			now:    time.Date(2024, time.September, 1, 0, 0, 0, 0, Location),
			expect: time.Date(2024, time.September, 1, 0, 0, 0, 0, Location),
		},
	}

	for _, test := range cases {
		require.True(t, test.expect.Equal(StartOfDay(test.now)), "%s", test.now)
	}
}
