package telemetry

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/nest/internal/core/ports"
)

// Bridge implements sdktrace.SpanProcessor to report finished spans as debug log lines.
type Bridge struct {
	logger ports.Logger
}

// NewBridge returns a new Bridge.
func NewBridge(logger ports.Logger) *Bridge {
	return &Bridge{logger: logger}
}

// OnStart does nothing.
func (b *Bridge) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd logs the span name, duration, attributes and failure status.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.logger == nil || !s.SpanContext().IsValid() {
		return
	}
	b.logger.Debug(FormatSpan(s.Name(), s.EndTime().Sub(s.StartTime()), spanAttributes(s), s.Status()))
}

// ForceFlush does nothing.
func (b *Bridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *Bridge) Shutdown(_ context.Context) error {
	return nil
}

// FormatSpan renders a finished span as a single line.
// Attributes are sorted by key.
func FormatSpan(name string, duration time.Duration, attrs map[string]string, status sdktrace.Status) string {
	var sb strings.Builder
	sb.WriteString(name)

	keys := make([]string, 0, len(attrs))
	for key := range attrs {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for _, key := range keys {
		fmt.Fprintf(&sb, " %s=%s", key, attrs[key])
	}

	fmt.Fprintf(&sb, " (%s)", duration.Round(time.Microsecond))

	if status.Code == codes.Error {
		desc := status.Description
		if desc == "" {
			desc = "failed"
		}
		sb.WriteString(" error=" + desc)
	}
	return sb.String()
}

func spanAttributes(s sdktrace.ReadOnlySpan) map[string]string {
	attrs := s.Attributes()
	out := make(map[string]string, len(attrs))
	for _, kv := range attrs {
		out[string(kv.Key)] = kv.Value.Emit()
	}
	return out
}

// Setup installs a global tracer provider whose spans are logged through logger.
// The returned function shuts the provider down.
func Setup(logger ports.Logger) func(context.Context) error {
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(NewBridge(logger)),
	)
	otel.SetTracerProvider(tp)
	return tp.Shutdown
}
