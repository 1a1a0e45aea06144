package milesearch

import (
	"context"
	"net/url"

	"milesearch-backend/internal/telemetry"
	"milesearch-backend/lib/htmlutil"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("scrapers/milesearch")

// Fetcher retrieves the raw pages the client works on. Bodies are returned
// already decoded to UTF-8.
type Fetcher interface {
	// FormPage returns the search form page, which holds the option lists and
	// the fare remark tables.
	FormPage(ctx context.Context) (string, error)
	// DataScript returns the script that assigns the airport and status data.
	DataScript(ctx context.Context) (string, error)
	// PostForm submits a search and returns the result page.
	PostForm(ctx context.Context, form url.Values) (string, error)
}

type lazy[T any] struct {
	value  T
	cached bool
}

func (l *lazy[T]) get(build func() (T, error)) (T, error) {
	if l.cached {
		return l.value, nil
	}
	v, err := build()
	if err != nil {
		var zero T
		return zero, err
	}
	l.value = v
	l.cached = true
	return v, nil
}

func (l *lazy[T]) reset() {
	var zero T
	l.value = zero
	l.cached = false
}

// Client builds catalogs on first access and keeps them for its lifetime.
// It is not safe for concurrent use.
type Client struct {
	fetcher Fetcher
	tel     telemetry.API

	formPage   lazy[htmlutil.Node]
	dataScript lazy[string]

	cards        lazy[[]CardType]
	domClasses   lazy[[]SeatClass]
	statuses     lazy[[]Status]
	intlAirports lazy[[]Airport]
	domAirports  lazy[[]Airport]
	domFares     lazy[[]Fare]
	intlFares    lazy[[]Fare]
}

type ClientOptions struct {
	Fetcher Fetcher
	// defaults to telemetry.SlogAPI
	Telemetry telemetry.API
}

func NewClient(opts ClientOptions) *Client {
	tel := opts.Telemetry
	if tel == nil {
		tel = telemetry.SlogAPI{}
	}
	return &Client{
		fetcher: opts.Fetcher,
		tel:     telemetry.NewScopedAPI("milesearch", tel),
	}
}

// Reset drops every cached page and catalog, the next access fetches them
// again.
func (c *Client) Reset() {
	c.formPage.reset()
	c.dataScript.reset()
	c.cards.reset()
	c.domClasses.reset()
	c.statuses.reset()
	c.intlAirports.reset()
	c.domAirports.reset()
	c.domFares.reset()
	c.intlFares.reset()
}

func (c *Client) form(ctx context.Context) (htmlutil.Node, error) {
	return c.formPage.get(func() (htmlutil.Node, error) {
		ctx, span := tracer.Start(ctx, "client:formPage")
		defer span.End()

		body, err := c.fetcher.FormPage(ctx)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to fetch form page")
			return nil, err
		}
		doc, err := htmlutil.ParseDocument(body)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to parse form page")
			return nil, err
		}
		return doc, nil
	})
}

func (c *Client) script(ctx context.Context) (string, error) {
	return c.dataScript.get(func() (string, error) {
		ctx, span := tracer.Start(ctx, "client:dataScript")
		defer span.End()

		body, err := c.fetcher.DataScript(ctx)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to fetch data script")
			return "", err
		}
		return body, nil
	})
}
