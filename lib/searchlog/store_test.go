package searchlog

import (
	"context"
	"testing"
	"time"

	"milesearch-backend/internal/chrono"
	"milesearch-backend/lib/scrapers/milesearch"
	"milesearch-backend/lib/searchlog/db"
	"milesearch-backend/lib/sqliteutil"
	"milesearch-backend/lib/testutil"
	"milesearch-backend/lib/timezone"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) Store {
	t.Helper()
	testutil.SetupTelemetry(t, "searchlog")
	return NewStore(testutil.OpenMemoryDB(t, db.Schema))
}

func TestOpen(t *testing.T) {
	store, err := Open(sqliteutil.Memory)
	require.NoError(t, err)
	defer store.Close()

	_, err = store.Record(context.Background(), Entry{Kind: KindIntl, From: "NRT", To: "LAX", Fare: "A"})
	require.NoError(t, err)
}

func TestStore(t *testing.T) {
	store := openTestStore(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	{
		entries, err := store.List(ctx, 10)
		require.NoError(t, err)
		require.Len(t, entries, 0)
	}

	older := Entry{
		Kind:  KindDom,
		From:  "HND",
		To:    "OKA",
		Class: "J",
		Fare:  "1",
		Result: milesearch.Result{
			Miles:               1234,
			FOP:                 56,
			FlightMiles:         1000,
			FlightMilesRemark:   "フライトマイル",
			StandardFlightMiles: 1000,
			BonusMiles:          &milesearch.Bonus{Value: 234, Remark: "ボーナスマイル"},
			FOPRate:             0.05,
		},
		Time: time.Date(2024, time.August, 26, 9, 0, 0, 0, timezone.Location),
	}
	newer := Entry{
		Kind:   KindIntl,
		From:   "NRT",
		To:     "LON",
		Fare:   "A",
		Card:   "GOLD",
		Status: "JGCP",
		Result: milesearch.Result{
			Miles:               5451,
			FOP:                 8176,
			FlightMiles:         5451,
			FlightMilesRemark:   "区間マイル",
			StandardFlightMiles: 5451,
			FOPRate:             1.5,
			FOPBonus:            &milesearch.Bonus{Value: 400, Remark: "搭乗ボーナス"},
		},
		Time: time.Date(2024, time.August, 27, 9, 0, 0, 0, timezone.Location),
	}

	var err error
	older.ID, err = store.Record(ctx, older)
	require.NoError(t, err)
	newer.ID, err = store.Record(ctx, newer)
	require.NoError(t, err)
	require.NotEqual(t, older.ID, newer.ID)

	entries, err := store.List(ctx, 10)
	require.NoError(t, err)
	if diff := cmp.Diff([]Entry{newer, older}, entries); diff != "" {
		t.Fatal(diff)
	}

	entries, err = store.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, newer.ID, entries[0].ID)
}

func TestRecordDefaultsTime(t *testing.T) {
	at := time.Date(2024, time.August, 26, 9, 30, 0, 0, timezone.Location)
	store := openTestStore(t).WithClock(chrono.FixedTime{At: at})
	ctx := context.Background()

	_, err := store.Record(ctx, Entry{Kind: KindDom, From: "HND", To: "CTS", Fare: "1"})
	require.NoError(t, err)

	entries, err := store.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.True(t, at.Equal(entries[0].Time))
	require.Nil(t, entries[0].Result.BonusMiles)
	require.Nil(t, entries[0].Result.FOPBonus)
}

func TestRecordRejectsUnknownKind(t *testing.T) {
	store := openTestStore(t)
	_, err := store.Record(context.Background(), Entry{Kind: "cargo"})
	require.Error(t, err)
}

func TestPrune(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	day := time.Date(2024, time.August, 27, 15, 0, 0, 0, timezone.Location)
	for _, at := range []time.Time{day.AddDate(0, 0, -2), day.AddDate(0, 0, -1), day} {
		_, err := store.Record(ctx, Entry{Kind: KindDom, From: "HND", To: "CTS", Fare: "1", Time: at})
		require.NoError(t, err)
	}

	deleted, err := store.Prune(ctx, day)
	require.NoError(t, err)
	require.Equal(t, int64(2), deleted)

	entries, err := store.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.True(t, day.Equal(entries[0].Time))
}
