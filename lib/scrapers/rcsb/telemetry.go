package rcsb

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var tracer = otel.Tracer("motm.lib.scrapers.rcsb")

var meter = otel.Meter("motm.lib.scrapers.rcsb")

var entryLookups, _ = meter.Int64Counter(
	"rcsb.entry_lookups",
	metric.WithDescription("core entry lookups, by outcome"),
)
