package crawler

import (
	"catalog-crawler/internal/components/assert"
	"catalog-crawler/internal/components/telemetry"
	"context"
	"fmt"
	"net/url"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

const report_client_fetch = "client.fetch"

// Client fetches catalog pages from a single site.
type Client struct {
	BaseUrl *url.URL
	Http    *resty.Client

	tel telemetry.API
}

type ClientOptions struct {
	BaseUrl string
	// requests per second
	RateLimit float64
	// Output receives every HTTP exchange when it is not nil.
	Output telemetry.MessageOutput
}

func NewClient(opts ClientOptions, tel telemetry.API) (Client, error) {
	assert.NotEmptyStr(opts.BaseUrl)
	assert.Positive(opts.RateLimit)
	assert.NotNil(tel)

	tel = telemetry.NewScopedAPI("catalog_crawler", tel)

	parsedBaseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return Client{}, err
	}

	httpClient := resty.New()
	httpClient.SetBaseURL(opts.BaseUrl)
	httpClient.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(httpClient.GetClient().Transport)
	httpClient.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	httpClient.SetHeader("accept-encoding", acceptEncoding)
	httpClient.SetTimeout(time.Second * 30)
	httpClient.SetRetryCount(2)
	httpClient.SetRetryWaitTime(time.Second)

	// max burst >= 1 just means that no requests will be dropped
	burst := int(opts.RateLimit)
	if burst < 1 {
		burst = 1
	}
	rateLimiter := rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return rateLimiter.Wait(req.Context())
	})

	// decoded before instrumentation so dumped responses are readable
	httpClient.OnAfterResponse(decodeBrotli)
	telemetry.InstrumentResty(httpClient, tel, opts.Output)

	return Client{
		BaseUrl: parsedBaseUrl,
		Http:    httpClient,
		tel:     tel,
	}, nil
}

// Resolve returns the absolute url of a path on the site.
func (c Client) Resolve(path string) *url.URL {
	ref, err := url.Parse(path)
	if err != nil {
		return c.BaseUrl
	}
	return c.BaseUrl.ResolveReference(ref)
}

// Fetch returns the body of the page, a non-2xx status is an error.
func (c Client) Fetch(ctx context.Context, path string) (string, error) {
	res, err := c.Http.R().
		SetContext(ctx).
		Get(path)
	if err != nil {
		c.tel.ReportBroken(report_client_fetch, fmt.Errorf("request: %w", err), path)
		return "", fmt.Errorf("fetch %s: %w", path, err)
	}
	if !res.IsSuccess() {
		err = fmt.Errorf("fetch %s: unexpected status %s", path, res.Status())
		c.tel.ReportWarning(report_client_fetch, err)
		return "", err
	}
	return string(res.Body()), nil
}
