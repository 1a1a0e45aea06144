package milesearch

import (
	_ "embed"
	"fmt"
	"testing"

	"milesearch-backend/lib/htmlutil"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

//go:embed testdata/result_dom.html
var domResultPage string

//go:embed testdata/result_intl.html
var intlResultPage string

const markerItem = `<li class="FlightmilebnsItem FlightmilebnsItemMark">+</li>`

func breakdownItem(label, value string) string {
	return fmt.Sprintf(
		`<li class="FlightmilebnsItem"><span class="FlightmilebnsTitle">%s</span><span class="FlightmilebnsNum">%s</span></li>`,
		label, value,
	)
}

func resultFragment(totals, milesItems, fopItems string) string {
	return `<html><body><div id="result">` + totals +
		`<ul class="Flightmilebns">` + milesItems + `</ul>` +
		`<ul class="Flightmilebns">` + fopItems + `</ul>` +
		`</div></body></html>`
}

const defaultTotals = `<p><span class="milecount">1,234</span><span>(standard 1,000 miles)</span></p>` +
	`<p><span class="milecount">56</span></p>`

func parseFragment(t *testing.T, page string) (Result, error) {
	t.Helper()
	doc, err := htmlutil.ParseDocument(page)
	require.NoError(t, err)
	return ParseResult(htmlutil.First(doc, "#result"))
}

func TestParseResultWithoutBonuses(t *testing.T) {
	res, err := parseFragment(t, resultFragment(
		defaultTotals,
		breakdownItem("Flight Miles", "1,000"),
		breakdownItem("Segment", "1,000")+breakdownItem("Rate", "150.5"),
	))
	require.NoError(t, err)

	expected := Result{
		Miles:               1234,
		FOP:                 56,
		FlightMiles:         1000,
		FlightMilesRemark:   "Flight Miles",
		StandardFlightMiles: 1000,
		FOPRate:             150.5,
	}
	if diff := cmp.Diff(expected, res); diff != "" {
		t.Fatal(diff)
	}
}

func TestParseResultBonuses(t *testing.T) {
	res, err := parseFragment(t, resultFragment(
		defaultTotals,
		breakdownItem("Flight Miles", "1,000")+markerItem+breakdownItem("Bonus\n Miles", "200"),
		breakdownItem("Segment", "1,000")+markerItem+breakdownItem("Rate", "0.5")+markerItem+breakdownItem("  Boarding   Bonus ", "400"),
	))
	require.NoError(t, err)

	require.Equal(t, &Bonus{Value: 200, Remark: "Bonus Miles"}, res.BonusMiles)
	require.Equal(t, &Bonus{Value: 400, Remark: "Boarding Bonus"}, res.FOPBonus)
	require.Equal(t, 0.5, res.FOPRate)
}

func TestParseResultStructuralErrors(t *testing.T) {
	cases := []struct {
		name string
		page string
	}{
		{
			name: "single total",
			page: resultFragment(
				`<p><span class="milecount">1,234</span><span>(1,000)</span></p>`,
				breakdownItem("Flight Miles", "1000"),
				breakdownItem("Segment", "1000")+breakdownItem("Rate", "1"),
			),
		},
		{
			name: "non numeric total",
			page: resultFragment(
				`<p><span class="milecount">many</span><span>(1,000)</span></p><p><span class="milecount">56</span></p>`,
				breakdownItem("Flight Miles", "1000"),
				breakdownItem("Segment", "1000")+breakdownItem("Rate", "1"),
			),
		},
		{
			name: "no standard miles next to total",
			page: resultFragment(
				`<p><span class="milecount">1,234</span></p><p><span class="milecount">56</span></p>`,
				breakdownItem("Flight Miles", "1000"),
				breakdownItem("Segment", "1000")+breakdownItem("Rate", "1"),
			),
		},
		{
			name: "missing flight miles item",
			page: resultFragment(
				defaultTotals,
				markerItem,
				breakdownItem("Segment", "1000")+breakdownItem("Rate", "1"),
			),
		},
		{
			name: "missing fop rate item",
			page: resultFragment(
				defaultTotals,
				breakdownItem("Flight Miles", "1000"),
				breakdownItem("Segment", "1000")+markerItem,
			),
		},
		{
			name: "fop rate without value",
			page: resultFragment(
				defaultTotals,
				breakdownItem("Flight Miles", "1000"),
				breakdownItem("Segment", "1000")+`<li class="FlightmilebnsItem"><span class="FlightmilebnsTitle">Rate</span></li>`,
			),
		},
		{
			name: "single breakdown group",
			page: `<html><body><div id="result">` + defaultTotals +
				`<ul class="Flightmilebns">` + breakdownItem("Flight Miles", "1000") + `</ul></div></body></html>`,
		},
		{
			name: "missing container",
			page: `<html><body><div id="other"></div></body></html>`,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := parseFragment(t, c.page)
			require.ErrorIs(t, err, ErrStructure)

			var structural *StructuralError
			require.ErrorAs(t, err, &structural)
			require.NotEmpty(t, structural.Step)
		})
	}
}

func TestParseResultPages(t *testing.T) {
	cases := []struct {
		name      string
		page      string
		container string
		expected  Result
	}{
		{
			name:      "domestic",
			page:      domResultPage,
			container: resultDom,
			expected: Result{
				Miles:               1234,
				FOP:                 56,
				FlightMiles:         1000,
				FlightMilesRemark:   "フライト マイル",
				StandardFlightMiles: 1000,
				BonusMiles:          &Bonus{Value: 234, Remark: "ボーナス マイル"},
				FOPRate:             0.05,
				FOPBonus:            &Bonus{Value: 6, Remark: "搭乗 ボーナス"},
			},
		},
		{
			name:      "international",
			page:      intlResultPage,
			container: resultIntl,
			expected: Result{
				Miles:               5451,
				FOP:                 8176,
				FlightMiles:         5451,
				FlightMilesRemark:   "区間マイル",
				StandardFlightMiles: 5451,
				FOPRate:             1.5,
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			doc, err := htmlutil.ParseDocument(c.page)
			require.NoError(t, err)
			res, err := ParseResult(htmlutil.First(doc, c.container))
			require.NoError(t, err)
			if diff := cmp.Diff(c.expected, res); diff != "" {
				t.Fatal(diff)
			}
		})
	}
}
