package email

import (
	"context"

	"github.com/rs/zerolog/log"
)

// LogService writes emails to the log instead of sending them. Used when no
// SMTP host is configured.
type LogService struct {
	links Links
}

func NewLogService(links Links) *LogService {
	return &LogService{links: links}
}

func (s *LogService) SendVerification(ctx context.Context, email string, token string) error {
	return s.SendCustom(ctx, email, "Confirm your AP Connect account", s.links.VerifyEmail(token))
}

func (s *LogService) SendPasswordReset(ctx context.Context, email string, token string) error {
	return s.SendCustom(ctx, email, "Reset your AP Connect password", s.links.ResetPassword(token))
}

// SendCustom logs only the recipient and subject.
func (s *LogService) SendCustom(_ context.Context, to string, subject string, _ string) error {
	log.Info().Str("to", to).Str("subject", subject).Msg("email not sent, smtp disabled")
	return nil
}
