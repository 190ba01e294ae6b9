package rcsb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"motm-scrapers/lib/restyutil"
	"motm-scrapers/lib/retry"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	DefaultBaseUrl = "https://data.rcsb.org"
	DefaultTimeout = time.Second * 30

	// recorded as the error of entries the api does not know about
	ErrorNotFound = "not_found"
)

var errNotFound = errors.New(ErrorNotFound)

// EntryInfo describes one PDB entry. Error is nil when the lookup succeeded,
// Title always holds something printable.
type EntryInfo struct {
	PdbCode string  `json:"pdb_code"`
	Title   string  `json:"title"`
	Error   *string `json:"error"`
}

func (e EntryInfo) Failed() bool {
	return e.Error != nil
}

func PlaceholderTitle(code string) string {
	return fmt.Sprintf("PDB entry %s", code)
}

type ClientOptions struct {
	// defaults to DefaultBaseUrl
	BaseUrl string
	// defaults to DefaultTimeout
	Timeout          time.Duration
	Retry            retry.Policy
	InstrumentOutput restyutil.InstrumentOutput
}

// Client queries the RCSB data api.
type Client struct {
	Http  *resty.Client
	Retry retry.Policy
}

func NewClient(opts ClientOptions) *Client {
	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	client := resty.New()
	client.SetBaseURL(strings.TrimSuffix(opts.BaseUrl, "/"))
	client.SetTimeout(opts.Timeout)
	client.SetHeader("Accept", "application/json")
	restyutil.InstrumentClient(client, tracer, opts.InstrumentOutput)

	return &Client{
		Http:  client,
		Retry: opts.Retry,
	}
}

type coreEntry struct {
	Struct *struct {
		Title *string `json:"title"`
	} `json:"struct"`
}

func (c *Client) lookup(ctx context.Context, code string) (string, error) {
	res, err := c.Http.R().
		SetContext(ctx).
		SetPathParam("code", code).
		Get("/rest/v1/core/entry/{code}")
	if err != nil {
		return "", err
	}
	if res.StatusCode() == http.StatusNotFound {
		return "", retry.Permanent(errNotFound)
	}
	err = restyutil.CheckStatus(res)
	if err != nil {
		return "", err
	}

	var entry coreEntry
	err = json.Unmarshal(res.Body(), &entry)
	if err != nil {
		return "", fmt.Errorf("decode entry %s: %w", code, err)
	}
	if entry.Struct == nil || entry.Struct.Title == nil {
		return PlaceholderTitle(code), nil
	}
	return *entry.Struct.Title, nil
}

// FetchEntryInfo looks up the title of a PDB entry. It never fails, an entry
// that is unknown or could not be fetched gets a placeholder title and the
// reason in Error. Unknown entries are not retried.
func (c *Client) FetchEntryInfo(ctx context.Context, code string) EntryInfo {
	ctx, span := tracer.Start(ctx, "FetchEntryInfo")
	defer span.End()
	span.SetAttributes(attribute.String("pdb_code", code))

	var title string
	err := c.Retry.Do(ctx, func() error {
		var err error
		title, err = c.lookup(ctx, code)
		return err
	}, func(attempt int, err error, wait time.Duration) {
		slog.WarnContext(
			ctx, "retrying entry lookup",
			"pdb_code", code,
			"attempt", attempt,
			"wait", wait,
			"err", err,
		)
	})

	if errors.Is(err, errNotFound) {
		entryLookups.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "not_found")))
		reason := ErrorNotFound
		return EntryInfo{PdbCode: code, Title: PlaceholderTitle(code), Error: &reason}
	}
	if err != nil {
		entryLookups.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "failed")))
		slog.ErrorContext(ctx, "failed to fetch entry", "pdb_code", code, "err", err)
		reason := err.Error()
		return EntryInfo{PdbCode: code, Title: PlaceholderTitle(code), Error: &reason}
	}

	entryLookups.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "ok")))
	return EntryInfo{PdbCode: code, Title: title}
}
