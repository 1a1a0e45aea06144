package milesearch

import (
	"context"
	"fmt"
	"net/url"

	"milesearch-backend/lib/htmlutil"
	"milesearch-backend/lib/textutil"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// DomQuery describes a domestic search. Card and Status may be left empty.
type DomQuery struct {
	From   string
	To     string
	Class  string
	Fare   string
	Card   string
	Status string
}

// IntlQuery describes an international search. Card and Status may be left
// empty.
type IntlQuery struct {
	From   string
	To     string
	Fare   string
	Card   string
	Status string
}

const (
	suggestionCount     = 3
	suggestionThreshold = 0.75
)

func orUnspecified(s string) string {
	if s == "" {
		return Unspecified
	}
	return s
}

func findAirport(airports []Airport, code string) (Airport, bool) {
	for _, a := range airports {
		if a.Code == code {
			return a, true
		}
	}
	return Airport{}, false
}

func invalidAirport(code string, airports []Airport) error {
	candidates := make([]textutil.Candidate, len(airports))
	for i, a := range airports {
		candidates[i] = textutil.Candidate{Key: a.Code, Labels: []string{a.Code, a.Name}}
	}
	return &InvalidAirportError{
		Code:        code,
		Suggestions: textutil.MostSimilar(code, candidates, suggestionCount, suggestionThreshold),
	}
}

func (c *Client) search(ctx context.Context, form url.Values, container string) (Result, error) {
	body, err := c.fetcher.PostForm(ctx, form)
	if err != nil {
		return Result{}, fmt.Errorf("post search form: %w", err)
	}
	doc, err := htmlutil.ParseDocument(body)
	if err != nil {
		return Result{}, fmt.Errorf("parse result page: %w", err)
	}
	res, err := ParseResult(htmlutil.First(doc, container))
	if err != nil {
		c.tel.ReportBroken("result-structure", container, err.Error())
		return Result{}, err
	}
	return res, nil
}

// DomSearch computes the mileage of a domestic flight. Both airports are
// checked against DomAirports before anything is sent.
func (c *Client) DomSearch(ctx context.Context, q DomQuery) (Result, error) {
	ctx, span := tracer.Start(ctx, "client:DomSearch")
	defer span.End()

	span.SetAttributes(
		attribute.String("from", q.From),
		attribute.String("to", q.To),
		attribute.String("fare", q.Fare),
	)

	airports, err := c.DomAirports(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to load domestic airports")
		return Result{}, err
	}
	for _, code := range []string{q.From, q.To} {
		if _, ok := findAirport(airports, code); !ok {
			err := invalidAirport(code, airports)
			span.SetStatus(codes.Error, err.Error())
			return Result{}, err
		}
	}

	form := url.Values{}
	form.Set(FieldCmd, CmdSearch)
	form.Set(FieldType, TypeDomestic)
	form.Set(FieldExternal, "")
	form.Set(FieldCityFrom, q.From)
	form.Set(FieldCityTo, q.To)
	form.Set(FieldClass, q.Class)
	form.Set(FieldCard, orUnspecified(q.Card))
	form.Set(FieldStatus, orUnspecified(q.Status))
	form.Set(FieldFare, q.Fare)

	res, err := c.search(ctx, form, resultDom)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "domestic search failed")
		return Result{}, err
	}
	return res, nil
}

// IntlSearch computes the mileage of an international flight. Both airports
// are checked against IntlAirportsForEarning before anything is sent, their
// areas are looked up from the catalog.
func (c *Client) IntlSearch(ctx context.Context, q IntlQuery) (Result, error) {
	ctx, span := tracer.Start(ctx, "client:IntlSearch")
	defer span.End()

	span.SetAttributes(
		attribute.String("from", q.From),
		attribute.String("to", q.To),
		attribute.String("fare", q.Fare),
	)

	airports, err := c.IntlAirportsForEarning(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to load international airports")
		return Result{}, err
	}
	from, ok := findAirport(airports, q.From)
	if !ok {
		err := invalidAirport(q.From, airports)
		span.SetStatus(codes.Error, err.Error())
		return Result{}, err
	}
	to, ok := findAirport(airports, q.To)
	if !ok {
		err := invalidAirport(q.To, airports)
		span.SetStatus(codes.Error, err.Error())
		return Result{}, err
	}

	form := url.Values{}
	form.Set(FieldCmd, CmdSearch)
	form.Set(FieldType, TypeInternational)
	form.Set(FieldExternal, "")
	form.Set(FieldAreaFrom, from.Area)
	form.Set(FieldAreaTo, to.Area)
	form.Set(FieldCityFrom, from.Code)
	form.Set(FieldCityTo, to.Code)
	form.Set(FieldCard, orUnspecified(q.Card))
	form.Set(FieldStatus, orUnspecified(q.Status))
	form.Set(FieldFare, q.Fare)

	res, err := c.search(ctx, form, resultIntl)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "international search failed")
		return Result{}, err
	}
	return res, nil
}
