package email

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"

	"github.com/apconnect/directory-api/internal/config"
	"github.com/apconnect/directory-api/pkg/circuitbreaker"
)

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPService delivers mail through an SMTP relay.
type SMTPService struct {
	dialer  dialer
	breaker *circuitbreaker.CircuitBreaker
	from    string
	links   Links
}

func NewSMTPService(cfg config.SMTPConfig, links Links) *SMTPService {
	return &SMTPService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		breaker: circuitbreaker.NewCircuitBreaker(circuitbreaker.Settings{
			Name:        "smtp",
			MaxFailures: 5,
			Timeout:     time.Minute,
		}),
		from:  cfg.From,
		links: links,
	}
}

func (s *SMTPService) SendVerification(ctx context.Context, email string, token string) error {
	return s.SendCustom(ctx, email, "Confirm your AP Connect account", verificationBody(s.links.VerifyEmail(token)))
}

func (s *SMTPService) SendPasswordReset(ctx context.Context, email string, token string) error {
	return s.SendCustom(ctx, email, "Reset your AP Connect password", resetBody(s.links.ResetPassword(token)))
}

func (s *SMTPService) SendCustom(ctx context.Context, to string, subject string, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := s.message(to, subject, content)
	if err := s.breaker.Execute(func() error { return s.dialer.DialAndSend(msg) }); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	log.Debug().Str("to", to).Str("subject", subject).Msg("email sent")
	return nil
}

func (s *SMTPService) message(to, subject, content string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", content)
	return m
}
