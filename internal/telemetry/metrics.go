package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds all application metrics
type Metrics struct {
	RequestCounter    metric.Int64Counter
	RequestDuration   metric.Float64Histogram
	AskOutcomes       metric.Int64Counter
	LlamaDuration     metric.Float64Histogram
	PromptTokens      metric.Int64Counter
	PDFProcessingTime metric.Float64Histogram
}

// InitMetrics initializes all application metrics
func InitMetrics() (*Metrics, error) {
	meter := otel.Meter("opioid-chatbot")

	requestCounter, err := meter.Int64Counter(
		"http.requests.total",
		metric.WithDescription("Total HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	requestDuration, err := meter.Float64Histogram(
		"http.request.duration",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	askOutcomes, err := meter.Int64Counter(
		"ask.requests.total",
		metric.WithDescription("Questions handled, by outcome"),
	)
	if err != nil {
		return nil, err
	}

	llamaDuration, err := meter.Float64Histogram(
		"llama.request.duration",
		metric.WithDescription("Llama 2 endpoint call duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	promptTokens, err := meter.Int64Counter(
		"llama.prompt.tokens",
		metric.WithDescription("Estimated prompt tokens sent to the Llama 2 endpoint"),
	)
	if err != nil {
		return nil, err
	}

	pdfProcessingTime, err := meter.Float64Histogram(
		"pdf.processing.duration",
		metric.WithDescription("PDF processing duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		RequestCounter:    requestCounter,
		RequestDuration:   requestDuration,
		AskOutcomes:       askOutcomes,
		LlamaDuration:     llamaDuration,
		PromptTokens:      promptTokens,
		PDFProcessingTime: pdfProcessingTime,
	}, nil
}

// RecordRequest records HTTP request metrics
func (m *Metrics) RecordRequest(method, path, status string, duration float64) {
	attrs := []attribute.KeyValue{
		attribute.String("http.method", method),
		attribute.String("http.path", path),
		attribute.String("http.status", status),
	}

	m.RequestCounter.Add(context.Background(), 1, metric.WithAttributes(attrs...))
	m.RequestDuration.Record(context.Background(), duration, metric.WithAttributes(attrs...))
}

// RecordAskOutcome counts a classified question (invalid, irrelevant, answered, upstream_error)
func (m *Metrics) RecordAskOutcome(ctx context.Context, outcome string) {
	m.AskOutcomes.Add(ctx, 1, metric.WithAttributes(attribute.String("ask.outcome", outcome)))
}

// RecordLlamaCall records one call to the model endpoint
func (m *Metrics) RecordLlamaCall(ctx context.Context, duration float64, promptTokens int, success bool) {
	attrs := metric.WithAttributes(
		attribute.String("llama.model", "llama2"),
		attribute.Bool("llama.success", success),
	)

	m.LlamaDuration.Record(ctx, duration, attrs)
	m.PromptTokens.Add(ctx, int64(promptTokens), attrs)
}

// RecordPDFProcessing records PDF processing metrics
func (m *Metrics) RecordPDFProcessing(duration float64, status string) {
	attrs := []attribute.KeyValue{
		attribute.String("pdf.status", status),
		attribute.String("service", "pdf_loader"),
	}

	m.PDFProcessingTime.Record(context.Background(), duration, metric.WithAttributes(attrs...))
}
