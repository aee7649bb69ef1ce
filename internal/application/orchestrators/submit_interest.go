package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"strings"

	emailAdapter "mmmweb/internal/adapters/email"
)

// SubmitInterestInput carries input for the registration interest orchestrator.
type SubmitInterestInput struct {
	Name        string
	Email       string
	Affiliation string
	Message     string
}

// SubmitInterestDeps holds dependencies for SubmitInterest.
type SubmitInterestDeps struct {
	EmailSender emailAdapter.Sender
	ToAddress   string // organizer inbox
	FromAddress string
}

var (
	ErrInterestNameRequired  = errors.New("name is required")
	ErrInterestEmailRequired = errors.New("a valid email address is required")
)

// ExecuteSubmitInterest notifies the organizers that someone wants to attend.
// User-provided text is HTML-escaped before it enters the email body.
// PRE: Name is non-empty; Email looks like an address
// POST: One notification email is queued to the organizer inbox
func ExecuteSubmitInterest(ctx context.Context, input SubmitInterestInput, deps SubmitInterestDeps) error {
	if strings.TrimSpace(input.Name) == "" {
		return ErrInterestNameRequired
	}
	email := strings.TrimSpace(input.Email)
	if email == "" || !strings.Contains(email, "@") {
		return ErrInterestEmailRequired
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<p><strong>Name:</strong> %s</p>", html.EscapeString(input.Name))
	fmt.Fprintf(&b, "<p><strong>Email:</strong> %s</p>", html.EscapeString(email))
	if input.Affiliation != "" {
		fmt.Fprintf(&b, "<p><strong>Affiliation:</strong> %s</p>", html.EscapeString(input.Affiliation))
	}
	if input.Message != "" {
		fmt.Fprintf(&b, "<p>%s</p>", html.EscapeString(input.Message))
	}

	_, err := deps.EmailSender.Send(ctx, emailAdapter.SendRequest{
		To:      []string{deps.ToAddress},
		From:    deps.FromAddress,
		Subject: "Registration interest: " + input.Name,
		HTML:    b.String(),
		ReplyTo: email,
	})
	if err != nil {
		return err
	}

	slog.Info("registration_event", "event", "interest_submitted", "email", email)
	return nil
}
