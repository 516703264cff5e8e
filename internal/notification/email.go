// Package notification delivers member-facing mails over SMTP.
package notification

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/hoelscher-berlin/tapir/internal/core/domain"
	portssvc "github.com/hoelscher-berlin/tapir/internal/core/ports/services"
)

type EmailConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	From     string
	FromName string
}

// EmailService sends the membership mails. It is safe for concurrent use.
type EmailService struct {
	config EmailConfig
}

func NewEmailService(config EmailConfig) *EmailService {
	return &EmailService{config: config}
}

var _ portssvc.EmailSender = (*EmailService)(nil)

func (s *EmailService) SendMembershipConfirmation(ctx context.Context, recipient domain.MemberInfo, investing bool, actorID string) error {
	if recipient.Email == "" {
		return fmt.Errorf("no email address for %s", recipient.DisplayName())
	}
	subject := "Willkommen bei SuperCoop - Deine Mitgliedschaft"
	kind := "ordentliches Mitglied"
	if investing {
		kind = "investierendes Mitglied"
	}
	body := fmt.Sprintf(`<html><body>
		<p>Hallo %s,</p>
		<p>wir bestätigen Deine Aufnahme als %s unserer Genossenschaft.</p>
		<p>Eine Bestätigung Deiner Geschäftsanteile erhältst Du im Mitgliedsbüro.</p>
		<p>Herzliche Grüße<br>Dein Mitgliedsbüro</p>
	</body></html>`, recipient.DisplayName(), kind)
	return s.sendEmail(ctx, recipient.Email, subject, body)
}

func (s *EmailService) SendExtraSharesConfirmation(ctx context.Context, recipient domain.MemberInfo, numShares int, actorID string) error {
	if recipient.Email == "" {
		return fmt.Errorf("no email address for %s", recipient.DisplayName())
	}
	subject := "Bestätigung über weitere Genossenschaftsanteile"
	body := fmt.Sprintf(`<html><body>
		<p>Hallo %s,</p>
		<p>wir bestätigen die Zeichnung von %d weiteren Geschäftsanteil(en).</p>
		<p>Die schriftliche Bestätigung erhältst Du im Mitgliedsbüro.</p>
		<p>Herzliche Grüße<br>Dein Mitgliedsbüro</p>
	</body></html>`, recipient.DisplayName(), numShares)
	return s.sendEmail(ctx, recipient.Email, subject, body)
}

func (s *EmailService) SendAccountCreated(ctx context.Context, user domain.TapirUser, actorID string) error {
	if user.Email == "" {
		return fmt.Errorf("no email address for user %s", user.Username)
	}
	subject := "Dein Mitgliederkonto wurde angelegt"
	body := fmt.Sprintf(`<html><body>
		<p>Hallo %s,</p>
		<p>für Dich wurde das Mitgliederkonto <b>%s</b> angelegt.</p>
		<p>Im Mitgliedsbüro erhältst Du Deine Zugangsdaten und weitere Informationen.</p>
		<p>Herzliche Grüße<br>Dein Mitgliedsbüro</p>
	</body></html>`, user.FirstName, user.Username)
	return s.sendEmail(ctx, user.Email, subject, body)
}

func (s *EmailService) SendDraftUserRegistered(ctx context.Context, draft domain.DraftUser) error {
	if draft.Email == "" {
		return fmt.Errorf("no email address for applicant %s %s", draft.FirstName, draft.LastName)
	}
	subject := "Deine Anmeldung bei SuperCoop"
	body := fmt.Sprintf(`<html><body>
		<p>Hallo %s,</p>
		<p>danke für Deine Anmeldung! Wir haben Deinen Antrag über %d Geschäftsanteil(e) erhalten.</p>
		<p>Das Mitgliedsbüro meldet sich bei Dir mit den nächsten Schritten.</p>
		<p>Herzliche Grüße<br>Dein Mitgliedsbüro</p>
	</body></html>`, draft.FirstName, draft.NumShares)
	return s.sendEmail(ctx, draft.Email, subject, body)
}

func (s *EmailService) sendEmail(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	from := s.config.From
	if s.config.FromName != "" {
		from = fmt.Sprintf("%s <%s>", s.config.FromName, s.config.From)
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		from, to, subject, body)

	var auth smtp.Auth
	if s.config.User != "" {
		auth = smtp.PlainAuth("", s.config.User, s.config.Password, s.config.Host)
	}
	addr := fmt.Sprintf("%s:%s", s.config.Host, s.config.Port)
	return smtp.SendMail(addr, auth, s.config.From, []string{to}, []byte(msg))
}
