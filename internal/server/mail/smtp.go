package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"

	"github.com/knowhowcafe/auth/internal/server/config"
	"github.com/knowhowcafe/auth/internal/server/models"
)

// SMTPMailer delivers OTP emails through an SMTP relay (Brevo in the
// reference deployment). The client is safe for concurrent use and holds no
// mutable state after construction.
type SMTPMailer struct {
	client   *gomail.Client
	from     string
	fromName string
}

func NewSMTPMailer(cfg *config.Config) (*SMTPMailer, error) {
	opts := []gomail.Option{
		gomail.WithPort(cfg.SMTPPort),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if cfg.SMTPUser != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.SMTPUser),
			gomail.WithPassword(cfg.SMTPPassword),
		)
	}

	client, err := gomail.NewClient(cfg.SMTPHost, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client error: %w", err)
	}

	return &SMTPMailer{
		client:   client,
		from:     cfg.EmailFrom,
		fromName: cfg.EmailFromName,
	}, nil
}

func (m *SMTPMailer) SendOtpEmail(ctx context.Context, to string, name string, code string, purpose models.OtpPurpose) error {
	body, err := renderBody(purpose, name, code)
	if err != nil {
		return err
	}

	msg := gomail.NewMsg()
	if err := msg.FromFormat(m.fromName, m.from); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject(purpose))
	msg.SetBodyString(gomail.TypeTextHTML, body)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("error sending otp email: %w", err)
	}

	return nil
}

// Ping dials the relay and disconnects, reporting reachability. Used at
// startup for a log-only health check.
func (m *SMTPMailer) Ping(ctx context.Context) error {
	if err := m.client.DialWithContext(ctx); err != nil {
		return fmt.Errorf("smtp dial error: %w", err)
	}
	return m.client.Close()
}
