package pdb101

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var tracer = otel.Tracer("motm.lib.scrapers.pdb101")

var meter = otel.Meter("motm.lib.scrapers.pdb101")

var pageFetches, _ = meter.Int64Counter(
	"pdb101.page_fetches",
	metric.WithDescription("molecule page fetches, by outcome"),
)
