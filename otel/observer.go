// Package otel provides OpenTelemetry integration for tool dispatch.
package otel

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/petal-labs/tripflow"
)

// DispatchObserver records tool dispatch outcomes into OpenTelemetry.
type DispatchObserver struct {
	tracer trace.Tracer

	dispatches metric.Int64Counter
	failures   metric.Int64Counter
	latency    metric.Float64Histogram
}

// NewDispatchObserver creates a dispatch observer bound to the provided
// meter and tracer.
func NewDispatchObserver(meter metric.Meter, tracer trace.Tracer) (*DispatchObserver, error) {
	dispatches, err := meter.Int64Counter(
		"tripflow.tool.dispatches",
		metric.WithDescription("Number of tool dispatches"),
	)
	if err != nil {
		return nil, err
	}
	failures, err := meter.Int64Counter(
		"tripflow.tool.failures",
		metric.WithDescription("Number of failed tool dispatches"),
	)
	if err != nil {
		return nil, err
	}
	latency, err := meter.Float64Histogram(
		"tripflow.tool.latency",
		metric.WithDescription("Tool dispatch latency in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &DispatchObserver{
		tracer:     tracer,
		dispatches: dispatches,
		failures:   failures,
		latency:    latency,
	}, nil
}

// ObserveDispatch records one dispatch outcome.
func (o *DispatchObserver) ObserveDispatch(observation tripflow.DispatchObservation) {
	if o == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("tool_name", observation.Tool),
		attribute.Bool("success", observation.Success),
	}

	ctx := context.Background()
	options := metric.WithAttributes(attrs...)
	o.dispatches.Add(ctx, 1, options)
	o.latency.Record(ctx, float64(time.Duration(observation.DurationMS)*time.Millisecond)/float64(time.Second), options)
	if !observation.Success {
		o.failures.Add(ctx, 1, options)
	}

	if o.tracer == nil {
		return
	}
	spanAttrs := append(attrs, attribute.String("request_id", observation.RequestID))
	_, span := o.tracer.Start(ctx, "tool.dispatch", trace.WithAttributes(spanAttrs...))
	if observation.Success {
		span.SetStatus(codes.Ok, "")
	} else {
		span.SetStatus(codes.Error, observation.Error)
	}
	span.End()
}

var _ tripflow.Observer = (*DispatchObserver)(nil)
