// Package telemetry provides OpenTelemetry integration for metrics collection.
// This file contains the service-level metrics recorded by the HTTP layer.
package telemetry

import (
	"context"
	"errors"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// ErrMeterNil is returned when a nil meter is passed to a metrics constructor.
var ErrMeterNil = errors.New("meter must not be nil")

// QueryMetrics holds the metric instruments for the read-side HTTP surface:
// request volume and latency, cache effectiveness, and rejected write attempts.
type QueryMetrics struct {
	// HTTP metrics
	requestsTotal   *Counter   // http_requests_total
	requestDuration *Histogram // http_request_duration_seconds

	// Cache metrics
	cacheRequestsTotal *Counter // query_cache_requests_total with result label

	// CQRS boundary metrics
	writeRejectedTotal *Counter // write_requests_rejected_total

	// Mobile metrics
	mobileRequestsTotal *Counter // mobile_requests_total with device_type label

	logger *zap.Logger
}

// NewQueryMetrics creates all service-level metric instruments on the given meter.
func NewQueryMetrics(meter metric.Meter, logger *zap.Logger) (*QueryMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	requestsTotal, err := NewCounter(
		meter,
		"http_requests_total",
		"Total number of HTTP requests by method, route and status code",
		"{request}",
	)
	if err != nil {
		return nil, err
	}

	requestDuration, err := NewHistogram(meter, HistogramOpts{
		Name:        "http_request_duration_seconds",
		Description: "HTTP request latency distribution in seconds",
		Unit:        "s",
		Boundaries:  HTTPDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	cacheRequestsTotal, err := NewCounter(
		meter,
		"query_cache_requests_total",
		"Total number of query cache lookups by result (hit/miss)",
		"{request}",
	)
	if err != nil {
		return nil, err
	}

	writeRejectedTotal, err := NewCounter(
		meter,
		"write_requests_rejected_total",
		"Total number of write-verb requests rejected by the read-only boundary",
		"{request}",
	)
	if err != nil {
		return nil, err
	}

	mobileRequestsTotal, err := NewCounter(
		meter,
		"mobile_requests_total",
		"Total number of requests served on mobile-optimized routes by device type",
		"{request}",
	)
	if err != nil {
		return nil, err
	}

	return &QueryMetrics{
		requestsTotal:       requestsTotal,
		requestDuration:     requestDuration,
		cacheRequestsTotal:  cacheRequestsTotal,
		writeRejectedTotal:  writeRejectedTotal,
		mobileRequestsTotal: mobileRequestsTotal,
		logger:              logger,
	}, nil
}

// RecordHTTPRequest records a completed HTTP request.
func (m *QueryMetrics) RecordHTTPRequest(ctx context.Context, method, route string, statusCode int, duration time.Duration) {
	if m == nil {
		return
	}

	m.requestsTotal.Inc(ctx,
		AttrHTTPMethod.String(method),
		AttrHTTPRoute.String(route),
		AttrHTTPStatusCode.String(strconv.Itoa(statusCode)),
	)
	m.requestDuration.RecordDuration(ctx, duration,
		AttrHTTPMethod.String(method),
		AttrHTTPRoute.String(route),
	)
}

// RecordCacheHit records a query cache hit.
func (m *QueryMetrics) RecordCacheHit(ctx context.Context) {
	if m == nil {
		return
	}
	m.cacheRequestsTotal.Inc(ctx, AttrCacheResult.String("hit"))
}

// RecordCacheMiss records a query cache miss.
func (m *QueryMetrics) RecordCacheMiss(ctx context.Context) {
	if m == nil {
		return
	}
	m.cacheRequestsTotal.Inc(ctx, AttrCacheResult.String("miss"))
}

// RecordWriteRejected records a write-verb request that was rejected with 405.
func (m *QueryMetrics) RecordWriteRejected(ctx context.Context, method, route string) {
	if m == nil {
		return
	}
	m.writeRejectedTotal.Inc(ctx,
		AttrHTTPMethod.String(method),
		AttrHTTPRoute.String(route),
	)
}

// RecordMobileRequest records a request served on a mobile-optimized route.
func (m *QueryMetrics) RecordMobileRequest(ctx context.Context, deviceType string) {
	if m == nil {
		return
	}
	if deviceType == "" {
		deviceType = "unknown"
	}
	m.mobileRequestsTotal.Inc(ctx, AttrDeviceType.String(deviceType))
}
