package email

import (
	"context"
	"fmt"
	"strings"
)

type Service interface {
	SendVerification(ctx context.Context, email string, token string) error
	SendPasswordReset(ctx context.Context, email string, token string) error
	SendCustom(ctx context.Context, to string, subject string, content string) error
}

// Links builds the site URLs embedded in emails.
type Links struct {
	SiteURL string
}

func (l Links) VerifyEmail(token string) string {
	return fmt.Sprintf("%s/auth/verify-email?token=%s", strings.TrimRight(l.SiteURL, "/"), token)
}

func (l Links) ResetPassword(token string) string {
	return fmt.Sprintf("%s/auth/reset-password?token=%s", strings.TrimRight(l.SiteURL, "/"), token)
}

func verificationBody(link string) string {
	return "Welcome to AP Connect.\n\n" +
		"Confirm your email address to finish creating your practitioner account:\n\n" +
		link + "\n"
}

func resetBody(link string) string {
	return "We received a request to reset your AP Connect password.\n\n" +
		"Use the link below within one hour. If you did not ask for this, ignore this email.\n\n" +
		link + "\n"
}
