package searchlog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"milesearch-backend/internal/chrono"
	"milesearch-backend/lib/scrapers/milesearch"
	"milesearch-backend/lib/searchlog/db"
	"milesearch-backend/lib/sqliteutil"
	"milesearch-backend/lib/timezone"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("lib/searchlog")

type Kind string

const (
	KindDom  Kind = "dom"
	KindIntl Kind = "intl"
)

// Entry is one search along with its outcome.
type Entry struct {
	ID     int64
	Kind   Kind
	From   string
	To     string
	Class  string
	Fare   string
	Card   string
	Status string
	Result milesearch.Result
	Time   time.Time
}

type Store struct {
	db    *sql.DB
	qry   *db.Queries
	clock chrono.TimeAPI
}

func NewStore(database *sql.DB) Store {
	return Store{
		db:    database,
		qry:   db.New(database),
		clock: chrono.NewStandardTime(),
	}
}

// WithClock returns a copy of the store that stamps entries using `clock`.
func (s Store) WithClock(clock chrono.TimeAPI) Store {
	s.clock = clock
	return s
}

// Open opens the history database at `path` and makes sure the schema exists.
func Open(path string) (Store, error) {
	database, err := sqliteutil.OpenDB(db.Schema, path)
	if err != nil {
		return Store{}, err
	}
	return NewStore(database), nil
}

func (s Store) Close() error {
	return s.db.Close()
}

func nullBonus(b *milesearch.Bonus) (sql.NullInt64, sql.NullString) {
	if b == nil {
		return sql.NullInt64{}, sql.NullString{}
	}
	return sql.NullInt64{Int64: int64(b.Value), Valid: true},
		sql.NullString{String: b.Remark, Valid: true}
}

func bonusFromNull(value sql.NullInt64, remark sql.NullString) *milesearch.Bonus {
	if !value.Valid {
		return nil
	}
	return &milesearch.Bonus{Value: int(value.Int64), Remark: remark.String}
}

// Record saves an entry, a zero Time is replaced by the current time.
func (s Store) Record(ctx context.Context, entry Entry) (int64, error) {
	ctx, span := tracer.Start(ctx, "Record")
	defer span.End()

	if entry.Kind != KindDom && entry.Kind != KindIntl {
		err := fmt.Errorf("unknown search kind %q", entry.Kind)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}
	if entry.Time.IsZero() {
		entry.Time = s.clock.Now()
	}

	res := entry.Result
	bonusMiles, bonusMilesRemark := nullBonus(res.BonusMiles)
	fopBonus, fopBonusRemark := nullBonus(res.FOPBonus)

	id, err := s.qry.CreateSearch(ctx, db.CreateSearchParams{
		Kind:                string(entry.Kind),
		FromAirport:         entry.From,
		ToAirport:           entry.To,
		Class:               entry.Class,
		Fare:                entry.Fare,
		Card:                entry.Card,
		Status:              entry.Status,
		Miles:               int64(res.Miles),
		Fop:                 int64(res.FOP),
		FlightMiles:         int64(res.FlightMiles),
		FlightMilesRemark:   res.FlightMilesRemark,
		StandardFlightMiles: int64(res.StandardFlightMiles),
		FopRate:             res.FOPRate,
		BonusMiles:          bonusMiles,
		BonusMilesRemark:    bonusMilesRemark,
		FopBonus:            fopBonus,
		FopBonusRemark:      fopBonusRemark,
		CreatedAt:           entry.Time.Unix(),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to record search")
		return 0, err
	}
	span.SetAttributes(attribute.Int64("id", id))
	return id, nil
}

// List returns up to `limit` entries, newest first.
func (s Store) List(ctx context.Context, limit int) ([]Entry, error) {
	ctx, span := tracer.Start(ctx, "List")
	defer span.End()

	rows, err := s.qry.ListSearches(ctx, int64(limit))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to list searches")
		return nil, err
	}

	entries := make([]Entry, len(rows))
	for i, r := range rows {
		entries[i] = Entry{
			ID:     r.ID,
			Kind:   Kind(r.Kind),
			From:   r.FromAirport,
			To:     r.ToAirport,
			Class:  r.Class,
			Fare:   r.Fare,
			Card:   r.Card,
			Status: r.Status,
			Result: milesearch.Result{
				Miles:               int(r.Miles),
				FOP:                 int(r.Fop),
				FlightMiles:         int(r.FlightMiles),
				FlightMilesRemark:   r.FlightMilesRemark,
				StandardFlightMiles: int(r.StandardFlightMiles),
				BonusMiles:          bonusFromNull(r.BonusMiles, r.BonusMilesRemark),
				FOPRate:             r.FopRate,
				FOPBonus:            bonusFromNull(r.FopBonus, r.FopBonusRemark),
			},
			Time: time.Unix(r.CreatedAt, 0).In(timezone.Location),
		}
	}
	return entries, nil
}

// Prune deletes the entries recorded before the start of the day `before`
// falls on and returns how many were removed.
func (s Store) Prune(ctx context.Context, before time.Time) (int64, error) {
	ctx, span := tracer.Start(ctx, "Prune")
	defer span.End()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	deleted, err := s.qry.WithTx(tx).DeleteSearchesBefore(ctx, timezone.StartOfDay(before).Unix())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to prune searches")
		return 0, err
	}
	return deleted, tx.Commit()
}
