package milesearch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/url"
	"time"

	"milesearch-backend/lib/restyutil"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"golang.org/x/net/html/charset"
)

// the site serves everything as Shift_JIS, mostly without saying so.
const defaultCharset = "shift_jis"

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

// HttpFetcher is the Fetcher that talks to the JAL website.
type HttpFetcher struct {
	http      *resty.Client
	endpoint  string
	scriptUrl string
}

type HttpFetcherOptions struct {
	// defaults to DefaultEndpoint
	Endpoint string
	// defaults to DefaultScriptUrl
	ScriptUrl string
	// defaults to 30 seconds
	Timeout time.Duration
	// if set, full http messages are written to it while debug logging is on
	Output restyutil.InstrumentOutput
	// skips wrapping the transport with the cloudflare bypass
	DisableCloudflareBypass bool
}

func NewHttpFetcher(opts HttpFetcherOptions) *HttpFetcher {
	if opts.Endpoint == "" {
		opts.Endpoint = DefaultEndpoint
	}
	if opts.ScriptUrl == "" {
		opts.ScriptUrl = DefaultScriptUrl
	}
	if opts.Timeout == 0 {
		opts.Timeout = time.Second * 30
	}

	client := resty.New()
	if !opts.DisableCloudflareBypass {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	}
	client.SetHeader("user-agent", userAgent)
	client.SetTimeout(opts.Timeout)
	restyutil.InstrumentClient(client, tracer, opts.Output)

	return &HttpFetcher{
		http:      client,
		endpoint:  opts.Endpoint,
		scriptUrl: opts.ScriptUrl,
	}
}

func (f *HttpFetcher) decode(res *resty.Response) (string, error) {
	if res.IsError() {
		return "", fmt.Errorf("unexpected status %d from %s", res.StatusCode(), res.Request.URL)
	}
	return decodeBody(res.Body(), res.Header().Get("Content-Type"))
}

// decodeBody converts a body into UTF-8 using the charset of the content
// type, or Shift_JIS if there is none.
func decodeBody(body []byte, contentType string) (string, error) {
	label := defaultCharset
	if contentType != "" {
		_, params, err := mime.ParseMediaType(contentType)
		if err == nil && params["charset"] != "" {
			label = params["charset"]
		}
	}

	reader, err := charset.NewReaderLabel(label, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("decode body as %s: %w", label, err)
	}
	decoded, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("decode body as %s: %w", label, err)
	}
	return string(decoded), nil
}

func (f *HttpFetcher) FormPage(ctx context.Context) (string, error) {
	res, err := f.http.R().
		SetContext(ctx).
		Get(f.endpoint)
	if err != nil {
		return "", err
	}
	return f.decode(res)
}

func (f *HttpFetcher) DataScript(ctx context.Context) (string, error) {
	res, err := f.http.R().
		SetContext(ctx).
		Get(f.scriptUrl)
	if err != nil {
		return "", err
	}
	return f.decode(res)
}

func (f *HttpFetcher) PostForm(ctx context.Context, form url.Values) (string, error) {
	res, err := f.http.R().
		SetContext(ctx).
		SetFormDataFromValues(form).
		Post(f.endpoint)
	if err != nil {
		return "", err
	}
	return f.decode(res)
}
