package commands

import (
	"bytes"
	"context"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"milesearch-backend/lib/scrapers/milesearch"

	"github.com/stretchr/testify/require"
)

const testForm = `<html><body>
<select id="domClass"><option value="Y">普通席</option><option value="J">クラスJ</option></select>
<select id="domFare"><option value="1">運賃1</option><option value="2">運賃2</option></select>
<select id="intCardtype"><option value="-">なし</option><option value="GOLD">ゴールド</option></select>
<select id="intFare"><option value="A">運賃A</option></select>
<table class="feelist"><tr><td>運賃1</td><td>大人普通運賃</td></tr></table>
<table class="feelist"><tr><td>運賃A</td><td>ファースト</td></tr></table>
</body></html>`

const testScript = `var dom_city = [
	["東京(羽田)", "HND"],
	["那覇", "OKA"]
];
var status_hash = {
	g_club: [
		["JGC Premier", "JGCP"]
	]
};
var save_city_hash = {
	日本: [
		["東京(成田)", "NRT"]
	],
	ヨーロッパ: [
		["ロンドン", "LON"]
	]
};
`

func testResult(container string) string {
	return `<html><body><div id="` + container + `">
<p><span class="milecount">1,234</span><span>(うち 1,000 マイル)</span></p>
<p><span class="milecount">56</span></p>
<ul class="Flightmilebns">
	<li class="FlightmilebnsItem"><span class="FlightmilebnsTitle">フライトマイル</span><span class="FlightmilebnsNum">1,000</span></li>
	<li class="FlightmilebnsItem"><span class="FlightmilebnsTitle">ボーナスマイル</span><span class="FlightmilebnsNum">234</span></li>
</ul>
<ul class="Flightmilebns">
	<li class="FlightmilebnsItem"><span class="FlightmilebnsTitle">区間マイル</span><span class="FlightmilebnsNum">1,000</span></li>
	<li class="FlightmilebnsItem"><span class="FlightmilebnsTitle">積算率</span><span class="FlightmilebnsNum">0.05</span></li>
</ul>
</div></body></html>`
}

type stubFetcher struct {
	posted []url.Values
}

func (f *stubFetcher) FormPage(ctx context.Context) (string, error) {
	return testForm, nil
}

func (f *stubFetcher) DataScript(ctx context.Context) (string, error) {
	return testScript, nil
}

func (f *stubFetcher) PostForm(ctx context.Context, form url.Values) (string, error) {
	f.posted = append(f.posted, form)
	if form.Get(milesearch.FieldType) == milesearch.TypeInternational {
		return testResult("contentInt"), nil
	}
	return testResult("contentDom"), nil
}

type harness struct {
	t       *testing.T
	fetcher *stubFetcher
	config  string
	db      string
}

func newHarness(t *testing.T) *harness {
	dir := t.TempDir()
	config := filepath.Join(dir, "milesearch.json5")
	require.NoError(t, os.WriteFile(config, []byte(`{
		history_limit: 1,
	}`), 0644))

	return &harness{
		t:       t,
		fetcher: &stubFetcher{},
		config:  config,
		db:      filepath.Join(dir, "history.db"),
	}
}

func (h *harness) run(args ...string) (string, error) {
	h.t.Helper()
	cmd := NewRootCmd(Options{Fetcher: h.fetcher, LogOutput: io.Discard})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append([]string{"--config", h.config}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCatalogCommands(t *testing.T) {
	h := newHarness(t)

	cases := []struct {
		args     []string
		contains []string
	}{
		{args: []string{"catalog", "airports"}, contains: []string{"HND", "那覇"}},
		{args: []string{"catalog", "airports", "--intl"}, contains: []string{"ヨーロッパ", "LON"}},
		{args: []string{"catalog", "fares"}, contains: []string{"運賃1", "大人普通運賃", "運賃2"}},
		{args: []string{"catalog", "fares", "--intl"}, contains: []string{"運賃A", "ファースト"}},
		{args: []string{"catalog", "statuses"}, contains: []string{"JGCP", "JGC Premier"}},
		{args: []string{"catalog", "cards"}, contains: []string{"GOLD"}},
		{args: []string{"catalog", "classes"}, contains: []string{"クラスJ"}},
	}
	for _, c := range cases {
		out, err := h.run(c.args...)
		require.NoError(t, err, c.args)
		for _, s := range c.contains {
			require.Contains(t, out, s, c.args)
		}
	}

	_, err := h.run("catalog", "airports", "--dom", "--intl")
	require.Error(t, err)
}

func TestSearchAndHistory(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("search", "dom", "--from", "HND", "--to", "OKA", "--class", "J", "--fare", "1", "--db", h.db)
	require.NoError(t, err)
	require.Contains(t, out, "1234")
	require.Contains(t, out, "234 (ボーナスマイル)")
	require.Len(t, h.fetcher.posted, 1)
	require.Equal(t, "J", h.fetcher.posted[0].Get(milesearch.FieldClass))

	out, err = h.run("search", "intl", "--from", "NRT", "--to", "LON", "--fare", "A", "--card", "GOLD", "--db", h.db)
	require.NoError(t, err)
	require.Contains(t, out, "1234")
	require.Equal(t, "ヨーロッパ", h.fetcher.posted[1].Get(milesearch.FieldAreaTo))

	// history_limit is 1 in the config
	out, err = h.run("history", "--db", h.db)
	require.NoError(t, err)
	require.Contains(t, out, "NRT-LON")
	require.NotContains(t, out, "HND-OKA")

	out, err = h.run("history", "--db", h.db, "--limit", "10")
	require.NoError(t, err)
	require.Contains(t, out, "NRT-LON")
	require.Contains(t, out, "HND-OKA")

	out, err = h.run("history", "prune", "--db", h.db, "--before", "2999-01-01")
	require.NoError(t, err)
	require.Contains(t, out, "deleted 2 searches")
}

func TestSearchErrors(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("search", "dom", "--from", "HDN", "--to", "OKA", "--class", "J", "--fare", "1")
	require.ErrorIs(t, err, milesearch.ErrInvalidAirport)
	require.Contains(t, err.Error(), "HND")
	require.Empty(t, h.fetcher.posted)

	_, err = h.run("search", "dom", "--from", "HND", "--to", "OKA", "--fare", "1")
	require.Error(t, err)

	_, err = h.run("history", "prune", "--db", h.db, "--before", "yesterday")
	require.Error(t, err)
}

func TestReadConfigDefaults(t *testing.T) {
	cfg, err := readConfig(newHarness(t).config)
	require.NoError(t, err)
	require.Equal(t, 1, cfg.HistoryLimit)
	require.Equal(t, defaultConfig.DB, cfg.DB)
	require.Equal(t, defaultConfig.Timeout(), cfg.Timeout())

	_, err = readConfig(filepath.Join(t.TempDir(), "missing.json5"))
	require.Error(t, err)
}
