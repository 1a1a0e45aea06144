package telemetry

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type recorded struct {
	kind   string
	id     string
	params []any
}

type recorder struct {
	events []recorded
}

func (r *recorder) ReportBroken(id string, params ...any) {
	r.events = append(r.events, recorded{kind: "broken", id: id, params: params})
}

func (r *recorder) ReportWarning(id string, params ...any) {
	r.events = append(r.events, recorded{kind: "warning", id: id, params: params})
}

func (r *recorder) ReportCount(id string, count int64) {
	r.events = append(r.events, recorded{kind: "count", id: id, params: []any{count}})
}

func TestScopedAPI(t *testing.T) {
	inner := &recorder{}
	scoped := NewScopedAPI("milesearch", inner)
	nested := NewScopedAPI("catalog", scoped)

	nested.ReportWarning("duplicate-code", "HND")
	scoped.ReportBroken("result-structure", "totals")
	nested.ReportCount("airports", 12)

	require.Equal(t, []recorded{
		{kind: "warning", id: "milesearch:catalog:duplicate-code", params: []any{"HND"}},
		{kind: "broken", id: "milesearch:result-structure", params: []any{"totals"}},
		{kind: "count", id: "milesearch:catalog:airports", params: []any{int64(12)}},
	}, inner.events)
}

func TestSlogAPI(t *testing.T) {
	var api API = SlogAPI{}
	api.ReportWarning("w", 1, "two")
	api.ReportBroken("b")
	api.ReportCount("c", 3)
}
