package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	OutcomeSaved     = "saved"
	OutcomeInvalid   = "invalid"
	OutcomeNotFound  = "not_found"
	OutcomeCancelled = "cancelled"
	OutcomeTransient = "transient"

	OutcomeRegistered = "registered"
	OutcomeDuplicate  = "duplicate"
	OutcomeFailed     = "failed"
)

// Metrics holds the portal's domain instruments. A nil *Metrics records
// nothing.
type Metrics struct {
	meetingSaves      metric.Int64Counter
	meetingSaveTime   metric.Float64Histogram
	registrations     metric.Int64Counter
	meetingsCompleted metric.Int64Counter
}

func NewMetrics(meter metric.Meter) (*Metrics, error) {
	var m Metrics
	var err error

	m.meetingSaves, err = meter.Int64Counter(
		"meetingportal_meeting_saves_total",
		metric.WithDescription("Meeting writes by operation and outcome"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create meeting saves counter: %w", err)
	}

	m.meetingSaveTime, err = meter.Float64Histogram(
		"meetingportal_meeting_save_duration_seconds",
		metric.WithDescription("Time spent writing a meeting to the store"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create meeting save histogram: %w", err)
	}

	m.registrations, err = meter.Int64Counter(
		"meetingportal_user_registrations_total",
		metric.WithDescription("Registration attempts by outcome"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create registrations counter: %w", err)
	}

	m.meetingsCompleted, err = meter.Int64Counter(
		"meetingportal_meetings_completed_total",
		metric.WithDescription("Meetings moved to completed by the status sweeper"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create completed meetings counter: %w", err)
	}

	return &m, nil
}

func (m *Metrics) RecordMeetingSave(ctx context.Context, op, outcome string) {
	if m == nil {
		return
	}
	m.meetingSaves.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", op),
		attribute.String("outcome", outcome),
	))
}

func (m *Metrics) RecordSaveDuration(ctx context.Context, op string, d time.Duration) {
	if m == nil {
		return
	}
	m.meetingSaveTime.Record(ctx, d.Seconds(), metric.WithAttributes(attribute.String("operation", op)))
}

func (m *Metrics) RecordRegistration(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	m.registrations.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

func (m *Metrics) RecordMeetingsCompleted(ctx context.Context, n int) {
	if m == nil || n == 0 {
		return
	}
	m.meetingsCompleted.Add(ctx, int64(n))
}
