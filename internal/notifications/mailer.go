// Package notifications delivers session lifecycle notifications to users,
// by email and through Redis pub/sub channels for connected clients.
package notifications

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
	"time"

	"github.com/itsFiz/upskillrr/internal/config"
	"github.com/itsFiz/upskillrr/internal/middleware"
	"github.com/itsFiz/upskillrr/internal/observability"
)

// Mailer sends session lifecycle emails. Sends are single-attempt and
// fire-and-forget: a failed send must never abort the lifecycle transition
// that triggered it.
type Mailer interface {
	SendSessionRequest(ctx context.Context, to, teacherName, learnerName, skillName string, date time.Time, message string) error
	SendSessionConfirmation(ctx context.Context, to, teacherName, learnerName, skillName string, date time.Time) error
	SendSessionCancellation(ctx context.Context, to, recipientName, cancellerName, skillName string, date time.Time) error
}

// NewMailer picks the SMTP mailer when a relay is configured, otherwise a
// log-only mailer that keeps development flows observable.
func NewMailer(cfg *config.Config) Mailer {
	if cfg.SMTPHost == "" {
		return &logMailer{}
	}
	return &smtpMailer{
		host: cfg.SMTPHost,
		port: cfg.SMTPPort,
		user: cfg.SMTPUser,
		pass: cfg.SMTPPassword,
		from: cfg.EmailFrom,
	}
}

type smtpMailer struct {
	host string
	port string
	user string
	pass string
	from string
}

func (m *smtpMailer) send(kind, to, subject, htmlBody string) error {
	var msg strings.Builder
	msg.WriteString("From: " + m.from + "\r\n")
	msg.WriteString("To: " + to + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.pass, m.host)
	}

	err := smtp.SendMail(m.host+":"+m.port, auth, m.from, []string{to}, []byte(msg.String()))
	if err != nil {
		observability.EmailsFailed.WithLabelValues(kind).Inc()
		return fmt.Errorf("send %s email: %w", kind, err)
	}
	observability.EmailsSent.WithLabelValues(kind).Inc()
	return nil
}

func (m *smtpMailer) SendSessionRequest(ctx context.Context, to, teacherName, learnerName, skillName string, date time.Time, message string) error {
	body := fmt.Sprintf(
		"<h1>New Session Request!</h1>"+
			"<p>Hi %s,</p>"+
			"<p><strong>%s</strong> has requested a session with you to learn <strong>%s</strong>.</p>"+
			"<p><strong>Requested Date:</strong> %s</p>",
		teacherName, learnerName, skillName, date.Format(time.RFC1123))
	if message != "" {
		body += fmt.Sprintf("<p><strong>Message:</strong> %s</p>", message)
	}
	body += "<p>Please log in to your dashboard to confirm or cancel the request.</p><p>The Upskillrr Team</p>"
	return m.send("session_request", to, "New Session Request!", body)
}

func (m *smtpMailer) SendSessionConfirmation(ctx context.Context, to, teacherName, learnerName, skillName string, date time.Time) error {
	body := fmt.Sprintf(
		"<h1>Session Confirmed!</h1>"+
			"<p>Hi %s,</p>"+
			"<p>Your session with <strong>%s</strong> to learn <strong>%s</strong> has been confirmed.</p>"+
			"<p><strong>Date:</strong> %s</p>"+
			"<p>Get ready to learn and grow!</p><p>The Upskillrr Team</p>",
		learnerName, teacherName, skillName, date.Format(time.RFC1123))
	return m.send("session_confirmation", to, "Your Upcoming Session is Confirmed!", body)
}

func (m *smtpMailer) SendSessionCancellation(ctx context.Context, to, recipientName, cancellerName, skillName string, date time.Time) error {
	body := fmt.Sprintf(
		"<h1>Session Cancelled</h1>"+
			"<p>Hi %s,</p>"+
			"<p>Your session with <strong>%s</strong> for <strong>%s</strong> on <strong>%s</strong> has been cancelled.</p>"+
			"<p>Please visit your dashboard for more details. You can always find new mentors or learners to connect with.</p>"+
			"<p>The Upskillrr Team</p>",
		recipientName, cancellerName, skillName, date.Format(time.RFC1123))
	return m.send("session_cancellation", to, "A Session has been Cancelled", body)
}

// logMailer records every send to the structured log instead of delivering.
type logMailer struct{}

func (m *logMailer) SendSessionRequest(ctx context.Context, to, teacherName, learnerName, skillName string, date time.Time, message string) error {
	middleware.Logger.InfoContext(ctx, "email (dev): session request",
		slog.String("to", to),
		slog.String("teacher", teacherName),
		slog.String("learner", learnerName),
		slog.String("skill", skillName),
		slog.Time("date", date),
	)
	observability.EmailsSent.WithLabelValues("session_request").Inc()
	return nil
}

func (m *logMailer) SendSessionConfirmation(ctx context.Context, to, teacherName, learnerName, skillName string, date time.Time) error {
	middleware.Logger.InfoContext(ctx, "email (dev): session confirmation",
		slog.String("to", to),
		slog.String("teacher", teacherName),
		slog.String("learner", learnerName),
		slog.String("skill", skillName),
	)
	observability.EmailsSent.WithLabelValues("session_confirmation").Inc()
	return nil
}

func (m *logMailer) SendSessionCancellation(ctx context.Context, to, recipientName, cancellerName, skillName string, date time.Time) error {
	middleware.Logger.InfoContext(ctx, "email (dev): session cancellation",
		slog.String("to", to),
		slog.String("cancelled_by", cancellerName),
		slog.String("skill", skillName),
	)
	observability.EmailsSent.WithLabelValues("session_cancellation").Inc()
	return nil
}
