// Package observability provides Prometheus metrics for domain events.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "upskillrr_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// SessionTransitions counts session lifecycle transitions by target status.
	SessionTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "upskillrr_session_transitions_total",
		Help: "Total number of session lifecycle transitions by target status",
	}, []string{"status"})

	// XPAwarded counts experience points granted, labeled by reason.
	XPAwarded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "upskillrr_xp_awarded_total",
		Help: "Total XP awarded by reason (teaching, learning, testimonial_bonus)",
	}, []string{"reason"})

	// EmailsSent counts outbound notification emails by kind.
	EmailsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "upskillrr_emails_sent_total",
		Help: "Total notification emails successfully handed to the mailer",
	}, []string{"kind"})

	// EmailsFailed counts outbound notification email failures by kind.
	EmailsFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "upskillrr_emails_failed_total",
		Help: "Total notification email send failures",
	}, []string{"kind"})

	// TestimonialsCreated counts accepted testimonials by rating.
	TestimonialsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "upskillrr_testimonials_created_total",
		Help: "Total testimonials created, labeled by rating",
	}, []string{"rating"})
)
