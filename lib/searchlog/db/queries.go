package db

import (
	"context"
	"database/sql"
)

type Search struct {
	ID                  int64
	Kind                string
	FromAirport         string
	ToAirport           string
	Class               string
	Fare                string
	Card                string
	Status              string
	Miles               int64
	Fop                 int64
	FlightMiles         int64
	FlightMilesRemark   string
	StandardFlightMiles int64
	FopRate             float64
	BonusMiles          sql.NullInt64
	BonusMilesRemark    sql.NullString
	FopBonus            sql.NullInt64
	FopBonusRemark      sql.NullString
	CreatedAt           int64
}

const createSearch = `insert into search (
    kind, from_airport, to_airport, class, fare, card, status,
    miles, fop, flight_miles, flight_miles_remark, standard_flight_miles, fop_rate,
    bonus_miles, bonus_miles_remark, fop_bonus, fop_bonus_remark,
    created_at
) values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
returning id`

type CreateSearchParams struct {
	Kind                string
	FromAirport         string
	ToAirport           string
	Class               string
	Fare                string
	Card                string
	Status              string
	Miles               int64
	Fop                 int64
	FlightMiles         int64
	FlightMilesRemark   string
	StandardFlightMiles int64
	FopRate             float64
	BonusMiles          sql.NullInt64
	BonusMilesRemark    sql.NullString
	FopBonus            sql.NullInt64
	FopBonusRemark      sql.NullString
	CreatedAt           int64
}

func (q *Queries) CreateSearch(ctx context.Context, arg CreateSearchParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, createSearch,
		arg.Kind,
		arg.FromAirport,
		arg.ToAirport,
		arg.Class,
		arg.Fare,
		arg.Card,
		arg.Status,
		arg.Miles,
		arg.Fop,
		arg.FlightMiles,
		arg.FlightMilesRemark,
		arg.StandardFlightMiles,
		arg.FopRate,
		arg.BonusMiles,
		arg.BonusMilesRemark,
		arg.FopBonus,
		arg.FopBonusRemark,
		arg.CreatedAt,
	)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const listSearches = `select
    id, kind, from_airport, to_airport, class, fare, card, status,
    miles, fop, flight_miles, flight_miles_remark, standard_flight_miles, fop_rate,
    bonus_miles, bonus_miles_remark, fop_bonus, fop_bonus_remark,
    created_at
from search
order by created_at desc, id desc
limit ?`

func (q *Queries) ListSearches(ctx context.Context, limit int64) ([]Search, error) {
	rows, err := q.db.QueryContext(ctx, listSearches, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Search
	for rows.Next() {
		var i Search
		if err := rows.Scan(
			&i.ID,
			&i.Kind,
			&i.FromAirport,
			&i.ToAirport,
			&i.Class,
			&i.Fare,
			&i.Card,
			&i.Status,
			&i.Miles,
			&i.Fop,
			&i.FlightMiles,
			&i.FlightMilesRemark,
			&i.StandardFlightMiles,
			&i.FopRate,
			&i.BonusMiles,
			&i.BonusMilesRemark,
			&i.FopBonus,
			&i.FopBonusRemark,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const deleteSearchesBefore = `delete from search where created_at < ?`

func (q *Queries) DeleteSearchesBefore(ctx context.Context, before int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteSearchesBefore, before)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
