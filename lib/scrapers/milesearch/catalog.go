package milesearch

import (
	"context"
	"fmt"
	"strings"

	"milesearch-backend/internal/telemetry"
	"milesearch-backend/lib/htmlutil"
	"milesearch-backend/lib/quasijson"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type option struct {
	value string
	name  string
}

func selectOptions(form htmlutil.Node, selectId string) ([]option, error) {
	nodes := form.Find(selectId + " option")
	if len(nodes) == 0 {
		return nil, structuralf("options", nil, "no options under %s", selectId)
	}
	out := make([]option, len(nodes))
	for i, n := range nodes {
		value, _ := n.Attr("value")
		out[i] = option{
			value: value,
			name:  strings.TrimSpace(n.Text()),
		}
	}
	return out, nil
}

// feeRemarks reads the nth fee table into fare name -> remark.
func feeRemarks(form htmlutil.Node, nth int) (map[string]string, error) {
	tables := form.FindClass(classFeeList)
	if len(tables) <= nth {
		return nil, structuralf("fee list", nil, "expected at least %d .%s tables, found %d", nth+1, classFeeList, len(tables))
	}

	remarks := map[string]string{}
	for i, row := range tables[nth].Find("tr") {
		var cells []string
		blank := true
		for _, td := range row.Find("td") {
			text := strings.TrimSpace(td.Text())
			if text != "" {
				blank = false
			}
			cells = append(cells, text)
		}
		if blank {
			continue
		}
		if len(cells) != 2 {
			return nil, structuralf("fee list", nil, "row %d has %d cells", i, len(cells))
		}
		remarks[cells[0]] = cells[1]
	}
	return remarks, nil
}

// uniqueByCode keeps the first record of every code.
func uniqueByCode[T fmt.Stringer](tel telemetry.API, catalog string, items []T) []T {
	seen := make(map[string]struct{}, len(items))
	out := items[:0:0]
	for _, item := range items {
		code := item.String()
		if _, ok := seen[code]; ok {
			tel.ReportWarning("duplicate-code", catalog, code)
			continue
		}
		seen[code] = struct{}{}
		out = append(out, item)
	}
	tel.ReportCount(catalog, int64(len(out)))
	return out
}

func recordCatalogError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

func shapeError(variable string, err error) error {
	return &quasijson.DataParseError{Variable: variable, Stage: quasijson.StageShape, Err: err}
}

// Cards lists the JAL card types.
func (c *Client) Cards(ctx context.Context) ([]CardType, error) {
	ctx, span := tracer.Start(ctx, "client:Cards")
	defer span.End()

	return c.cards.get(func() ([]CardType, error) {
		form, err := c.form(ctx)
		if err != nil {
			recordCatalogError(span, err)
			return nil, err
		}
		options, err := selectOptions(form, selectCards)
		if err != nil {
			recordCatalogError(span, err)
			return nil, err
		}
		cards := make([]CardType, len(options))
		for i, o := range options {
			cards[i] = CardType{Code: o.value, Name: o.name}
		}
		return uniqueByCode(c.tel, "cards", cards), nil
	})
}

// DomClasses lists the seat classes of domestic flights.
func (c *Client) DomClasses(ctx context.Context) ([]SeatClass, error) {
	ctx, span := tracer.Start(ctx, "client:DomClasses")
	defer span.End()

	return c.domClasses.get(func() ([]SeatClass, error) {
		form, err := c.form(ctx)
		if err != nil {
			recordCatalogError(span, err)
			return nil, err
		}
		options, err := selectOptions(form, selectDomClasses)
		if err != nil {
			recordCatalogError(span, err)
			return nil, err
		}
		classes := make([]SeatClass, len(options))
		for i, o := range options {
			classes[i] = SeatClass{Code: o.value, Name: o.name}
		}
		return uniqueByCode(c.tel, "dom_classes", classes), nil
	})
}

// Statuses lists the membership statuses of the JAL global club.
func (c *Client) Statuses(ctx context.Context) ([]Status, error) {
	ctx, span := tracer.Start(ctx, "client:Statuses")
	defer span.End()

	return c.statuses.get(func() ([]Status, error) {
		script, err := c.script(ctx)
		if err != nil {
			recordCatalogError(span, err)
			return nil, err
		}
		value, err := quasijson.Extract(script, varStatuses)
		if err != nil {
			recordCatalogError(span, err)
			return nil, err
		}
		hash, ok := value.(map[string]any)
		if !ok {
			err := shapeError(varStatuses, fmt.Errorf("expected an object, got %T", value))
			recordCatalogError(span, err)
			return nil, err
		}
		group, ok := hash[statusGroup]
		if !ok {
			err := shapeError(varStatuses, fmt.Errorf("no %q entry", statusGroup))
			recordCatalogError(span, err)
			return nil, err
		}
		pairs, err := quasijson.Pairs(group)
		if err != nil {
			err := shapeError(varStatuses, err)
			recordCatalogError(span, err)
			return nil, err
		}

		statuses := make([]Status, len(pairs))
		for i, p := range pairs {
			statuses[i] = Status{Code: p[1], Name: p[0]}
		}
		return uniqueByCode(c.tel, "statuses", statuses), nil
	})
}

// IntlAirportsForEarning lists the international airports mileage can be
// earned between, in the order of their areas in the data script.
func (c *Client) IntlAirportsForEarning(ctx context.Context) ([]Airport, error) {
	ctx, span := tracer.Start(ctx, "client:IntlAirportsForEarning")
	defer span.End()

	return c.intlAirports.get(func() ([]Airport, error) {
		script, err := c.script(ctx)
		if err != nil {
			recordCatalogError(span, err)
			return nil, err
		}
		areas, err := quasijson.ExtractEntries(script, varIntlAirports)
		if err != nil {
			recordCatalogError(span, err)
			return nil, err
		}

		var airports []Airport
		for _, area := range areas {
			pairs, err := quasijson.Pairs(area.Value)
			if err != nil {
				err := shapeError(varIntlAirports, fmt.Errorf("area %q: %w", area.Key, err))
				recordCatalogError(span, err)
				return nil, err
			}
			for _, p := range pairs {
				airports = append(airports, Airport{Code: p[1], Area: area.Key, Name: p[0]})
			}
		}
		span.SetAttributes(attribute.Int("areas", len(areas)))
		return uniqueByCode(c.tel, "intl_airports", airports), nil
	})
}

// DomAirports lists the domestic airports.
func (c *Client) DomAirports(ctx context.Context) ([]Airport, error) {
	ctx, span := tracer.Start(ctx, "client:DomAirports")
	defer span.End()

	return c.domAirports.get(func() ([]Airport, error) {
		script, err := c.script(ctx)
		if err != nil {
			recordCatalogError(span, err)
			return nil, err
		}
		value, err := quasijson.Extract(script, varDomAirports)
		if err != nil {
			recordCatalogError(span, err)
			return nil, err
		}
		pairs, err := quasijson.Pairs(value)
		if err != nil {
			err := shapeError(varDomAirports, err)
			recordCatalogError(span, err)
			return nil, err
		}

		airports := make([]Airport, len(pairs))
		for i, p := range pairs {
			airports[i] = Airport{Code: p[1], Name: p[0]}
		}
		return uniqueByCode(c.tel, "dom_airports", airports), nil
	})
}

func (c *Client) fares(ctx context.Context, selectId string, feeList int, catalog string) ([]Fare, error) {
	form, err := c.form(ctx)
	if err != nil {
		return nil, err
	}
	remarks, err := feeRemarks(form, feeList)
	if err != nil {
		return nil, err
	}
	options, err := selectOptions(form, selectId)
	if err != nil {
		return nil, err
	}

	fares := make([]Fare, len(options))
	for i, o := range options {
		fares[i] = Fare{Code: o.value, Name: o.name, Remark: remarks[o.name]}
	}
	return uniqueByCode(c.tel, catalog, fares), nil
}

// DomFares lists the domestic fares with their remarks from the first fee
// table of the form page.
func (c *Client) DomFares(ctx context.Context) ([]Fare, error) {
	ctx, span := tracer.Start(ctx, "client:DomFares")
	defer span.End()

	return c.domFares.get(func() ([]Fare, error) {
		fares, err := c.fares(ctx, selectDomFares, domFeeList, "dom_fares")
		if err != nil {
			recordCatalogError(span, err)
		}
		return fares, err
	})
}

// IntlFares lists the international fares with their remarks from the
// second fee table of the form page.
func (c *Client) IntlFares(ctx context.Context) ([]Fare, error) {
	ctx, span := tracer.Start(ctx, "client:IntlFares")
	defer span.End()

	return c.intlFares.get(func() ([]Fare, error) {
		fares, err := c.fares(ctx, selectIntlFares, intlFeeList, "intl_fares")
		if err != nil {
			recordCatalogError(span, err)
		}
		return fares, err
	})
}
