package commands

import (
	"fmt"
	"io"
	"strconv"

	"milesearch-backend/lib/scrapers/milesearch"
	"milesearch-backend/lib/searchlog"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

func newTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(out)
	return t
}

func formatBonus(b *milesearch.Bonus) string {
	if b == nil {
		return "-"
	}
	return fmt.Sprintf("%d (%s)", b.Value, b.Remark)
}

func formatRate(rate float64) string {
	return strconv.FormatFloat(rate, 'f', -1, 64)
}

func renderResult(out io.Writer, res milesearch.Result) {
	t := newTable(out)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
	})
	t.AppendRows([]table.Row{
		{"Miles", res.Miles},
		{"FOP", res.FOP},
	})
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"Flight miles", fmt.Sprintf("%d (%s)", res.FlightMiles, res.FlightMilesRemark)},
		{"Standard flight miles", res.StandardFlightMiles},
		{"Bonus miles", formatBonus(res.BonusMiles)},
		{"FOP rate", formatRate(res.FOPRate)},
		{"FOP bonus", formatBonus(res.FOPBonus)},
	})
	t.Render()
}

func renderAirports(out io.Writer, airports []milesearch.Airport, withArea bool) {
	t := newTable(out)
	if withArea {
		t.AppendHeader(table.Row{"Area", "Code", "Name"})
		for _, a := range airports {
			t.AppendRow(table.Row{a.Area, a.Code, a.Name})
		}
		t.SetColumnConfigs([]table.ColumnConfig{{Number: 1, AutoMerge: true}})
	} else {
		t.AppendHeader(table.Row{"Code", "Name"})
		for _, a := range airports {
			t.AppendRow(table.Row{a.Code, a.Name})
		}
	}
	t.Render()
}

func renderFares(out io.Writer, fares []milesearch.Fare) {
	t := newTable(out)
	t.AppendHeader(table.Row{"Code", "Name", "Remark"})
	for _, f := range fares {
		t.AppendRow(table.Row{f.Code, f.Name, f.Remark})
	}
	t.Render()
}

// renderCodes renders any catalog of code/name records.
func renderCodes[T any](out io.Writer, items []T, row func(T) (string, string)) {
	t := newTable(out)
	t.AppendHeader(table.Row{"Code", "Name"})
	for _, item := range items {
		code, name := row(item)
		t.AppendRow(table.Row{code, name})
	}
	t.Render()
}

func renderHistory(out io.Writer, entries []searchlog.Entry) {
	t := newTable(out)
	t.AppendHeader(table.Row{"#", "Time", "Kind", "Route", "Fare", "Miles", "FOP", "Bonus miles", "FOP bonus"})
	for _, e := range entries {
		t.AppendRow(table.Row{
			e.ID,
			e.Time.Format("2006-01-02 15:04"),
			e.Kind,
			fmt.Sprintf("%s-%s", e.From, e.To),
			e.Fare,
			e.Result.Miles,
			e.Result.FOP,
			formatBonus(e.Result.BonusMiles),
			formatBonus(e.Result.FOPBonus),
		})
	}
	t.Render()
}
