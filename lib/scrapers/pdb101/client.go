package pdb101

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"motm-scrapers/lib/restyutil"
	"motm-scrapers/lib/retry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
)

const (
	DefaultBaseUrl = "https://pdb101.rcsb.org"
	DefaultTimeout = time.Second * 30
)

type ClientOptions struct {
	// defaults to DefaultBaseUrl
	BaseUrl string
	// defaults to DefaultTimeout
	Timeout time.Duration
	Retry   retry.Policy
	// skips the cloudflare bypass transport, requests are sent as resty sends them
	DisableBrowserTransport bool
	// if set, request/response pairs are dumped to it in verbose mode
	InstrumentOutput restyutil.InstrumentOutput
}

// Client fetches Molecule of the Month pages.
type Client struct {
	BaseUrl *url.URL
	Http    *resty.Client
	Retry   retry.Policy
}

func NewClient(opts ClientOptions) (*Client, error) {
	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	baseUrl, err := url.Parse(strings.TrimSuffix(opts.BaseUrl, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	client := resty.New()
	client.SetBaseURL(baseUrl.String())
	client.SetTimeout(opts.Timeout)
	if !opts.DisableBrowserTransport {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	}
	restyutil.InstrumentClient(client, tracer, opts.InstrumentOutput)

	return &Client{
		BaseUrl: baseUrl,
		Http:    client,
		Retry:   opts.Retry,
	}, nil
}

func moleculePath(number int) string {
	return fmt.Sprintf("/motm/%d", number)
}

// MoleculeUrl is the absolute url of a molecule page.
func (c *Client) MoleculeUrl(number int) string {
	return c.BaseUrl.JoinPath(moleculePath(number)).String()
}

// FetchMoleculePage returns the html of a molecule page. Transport errors and
// non-2xx responses are retried according to the client's policy, once it is
// exhausted the last error is returned.
func (c *Client) FetchMoleculePage(ctx context.Context, number int) (string, error) {
	ctx, span := tracer.Start(ctx, "FetchMoleculePage")
	defer span.End()
	span.SetAttributes(attribute.Int("molecule", number))

	var body string
	err := c.Retry.Do(ctx, func() error {
		res, err := c.Http.R().
			SetContext(ctx).
			Get(moleculePath(number))
		if err != nil {
			return err
		}
		err = restyutil.CheckStatus(res)
		if err != nil {
			return err
		}
		body = res.String()
		return nil
	}, func(attempt int, err error, wait time.Duration) {
		slog.WarnContext(
			ctx, "retrying molecule page",
			"molecule", number,
			"url", c.MoleculeUrl(number),
			"attempt", attempt,
			"wait", wait,
			"err", err,
		)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch molecule page")
		pageFetches.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "failed")))
		slog.ErrorContext(
			ctx, "failed to fetch molecule page",
			"molecule", number,
			"url", c.MoleculeUrl(number),
			"err", err,
		)
		return "", err
	}

	pageFetches.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "ok")))
	return body, nil
}
