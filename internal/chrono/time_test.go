package chrono

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStandardTime(t *testing.T) {
	var api TimeAPI = NewStandardTime()
	now := api.Now()
	require.WithinDuration(t, time.Now(), now, time.Minute)
	require.Equal(t, "JST", now.Location().String())
}

func TestFixedTime(t *testing.T) {
	at := time.Date(2024, time.August, 31, 16, 0, 0, 0, time.UTC)
	api := FixedTime{At: at}
	require.True(t, at.Equal(api.Now()))
	require.Equal(t, 1, api.Now().Day())
}
