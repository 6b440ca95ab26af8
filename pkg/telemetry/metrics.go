package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/ghuser/lostfound/listing"

// ListingMetrics counts directory activity. A nil *ListingMetrics records nothing.
type ListingMetrics struct {
	posted   metric.Int64Counter
	rejected metric.Int64Counter
	searches metric.Int64Counter
}

// NewListingMetrics registers the listing counters on the global MeterProvider.
// Call after Setup so the Prometheus reader sees them.
func NewListingMetrics() (*ListingMetrics, error) {
	return NewListingMetricsWithMeter(otel.Meter(meterName))
}

// NewListingMetricsWithMeter registers the counters on m.
func NewListingMetricsWithMeter(m metric.Meter) (*ListingMetrics, error) {
	posted, err := m.Int64Counter("listings_posted_total",
		metric.WithDescription("Listings accepted into the directory"))
	if err != nil {
		return nil, fmt.Errorf("listings_posted_total: %w", err)
	}
	rejected, err := m.Int64Counter("listing_rejections_total",
		metric.WithDescription("Submissions rejected by validation, by reason"))
	if err != nil {
		return nil, fmt.Errorf("listing_rejections_total: %w", err)
	}
	searches, err := m.Int64Counter("listing_searches_total",
		metric.WithDescription("Search queries executed"))
	if err != nil {
		return nil, fmt.Errorf("listing_searches_total: %w", err)
	}
	return &ListingMetrics{posted: posted, rejected: rejected, searches: searches}, nil
}

func (m *ListingMetrics) RecordPosted(ctx context.Context, itemType string) {
	if m == nil {
		return
	}
	m.posted.Add(ctx, 1, metric.WithAttributes(attribute.String("item_type", itemType)))
}

func (m *ListingMetrics) RecordRejected(ctx context.Context, reason string) {
	if m == nil {
		return
	}
	m.rejected.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}

func (m *ListingMetrics) RecordSearch(ctx context.Context) {
	if m == nil {
		return
	}
	m.searches.Add(ctx, 1)
}
