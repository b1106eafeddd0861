package generation

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// replyInstruments mirrors the Prometheus reply metrics onto the otel meter so
// they reach the OTLP collector alongside the generation spans.
type replyInstruments struct {
	replies metric.Int64Counter
	tokens  metric.Int64Counter
	latency metric.Float64Histogram
}

func newReplyInstruments(meter metric.Meter) (replyInstruments, error) {
	replies, err := meter.Int64Counter("botgpt.generation.replies",
		metric.WithDescription("Assistant replies produced"))
	if err != nil {
		return noopInstruments(), err
	}
	tokens, err := meter.Int64Counter("botgpt.generation.tokens",
		metric.WithDescription("Tokens reported by the model provider"))
	if err != nil {
		return noopInstruments(), err
	}
	latency, err := meter.Float64Histogram("botgpt.generation.duration",
		metric.WithDescription("Model call duration"),
		metric.WithUnit("s"))
	if err != nil {
		return noopInstruments(), err
	}
	return replyInstruments{replies: replies, tokens: tokens, latency: latency}, nil
}

func noopInstruments() replyInstruments {
	meter := noop.NewMeterProvider().Meter("")
	replies, _ := meter.Int64Counter("")
	tokens, _ := meter.Int64Counter("")
	latency, _ := meter.Float64Histogram("")
	return replyInstruments{replies: replies, tokens: tokens, latency: latency}
}

func (i replyInstruments) record(ctx context.Context, mode string, reply Reply, seconds float64) {
	modeAttr := attribute.String("mode", mode)
	i.replies.Add(ctx, 1, metric.WithAttributes(modeAttr, attribute.String("outcome", string(reply.Kind))))
	i.latency.Record(ctx, seconds, metric.WithAttributes(modeAttr))
	if reply.TokensUsed > 0 {
		i.tokens.Add(ctx, int64(reply.TokensUsed), metric.WithAttributes(modeAttr))
	}
}
