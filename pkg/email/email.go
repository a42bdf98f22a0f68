// Package email, uygulama genelinde email gönderimi için soyutlama katmanı sağlar.
//
// Sender interface'i ile gönderim detayları soyutlanır (Dependency Inversion).
// Şu anki implementasyon Resend API kullanır. İleride farklı bir sağlayıcıya
// geçmek için sadece yeni bir implementasyon yazıp constructor'da değiştirmek yeterli.
//
// Bu paket dışarıya üç şey sunar:
// 1. Sender interface — email kuyruğu worker'ı buna bağımlı olur
// 2. NewResendSender constructor — main.go'da wire-up için
// 3. WelcomeMessage template builder — hoş geldin email içeriği
package email

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v3"
)

// Sender, email gönderimi için interface.
// Kuyruk worker'ı bu interface'e bağımlıdır, concrete Resend implementasyonuna değil.
type Sender interface {
	// Send, tek bir email gönderir. body HTML olarak yorumlanır.
	Send(ctx context.Context, toEmail, subject, body string) error
}

type resendSender struct {
	client    *resend.Client
	fromEmail string // Gönderici adresi (ör: noreply@firmenportal.app)
}

// NewResendSender, Resend API client'ı ile yeni bir Sender oluşturur.
//
// apiKey: Resend dashboard'dan alınan API key (re_xxxxxxxx formatında).
// fromEmail: Gönderici email adresi — Resend'de doğrulanmış domain altında olmalı.
func NewResendSender(apiKey, fromEmail string) Sender {
	return &resendSender{
		client:    resend.NewClient(apiKey),
		fromEmail: fromEmail,
	}
}

// Send, email'i Resend API üzerinden gönderir.
func (s *resendSender) Send(ctx context.Context, toEmail, subject, body string) error {
	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Firmenportal <%s>", s.fromEmail),
		To:      []string{toEmail},
		Subject: subject,
		Html:    body,
	}

	_, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// WelcomeMessage, role göre hoş geldin email'inin subject + HTML body'sini üretir.
//
// role plain string alınır (models'a bağımlılık yok — leaf paket).
// Bilinmeyen rol için genel karşılama metni kullanılır.
func WelcomeMessage(role, appURL string) (subject, body string) {
	var intro string
	switch role {
	case "admin":
		subject = "Willkommen im Firmenportal — Admin-Zugang"
		intro = "Ihr Administrator-Konto wurde angelegt. Sie können Benutzer, Medien und Seiteninhalte verwalten."
	case "mitarbeiter":
		subject = "Willkommen im Firmenportal — Mitarbeiterbereich"
		intro = "Ihr Mitarbeiter-Konto wurde angelegt. Im Mitarbeiterbereich finden Sie Ihre Aufträge und Unterlagen."
	default:
		subject = "Willkommen im Firmenportal"
		intro = "Ihr Kundenkonto wurde angelegt. Im Kundenbereich können Sie Ihre Aufträge und Rechnungen einsehen."
	}

	body = fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="margin:0;padding:0;background-color:#f4f5f7;font-family:Arial,Helvetica,sans-serif;">
  <table width="100%%" cellpadding="0" cellspacing="0" style="background-color:#f4f5f7;padding:40px 0;">
    <tr>
      <td align="center">
        <table width="480" cellpadding="0" cellspacing="0" style="background-color:#ffffff;border-radius:8px;padding:40px;">
          <tr>
            <td>
              <h1 style="color:#1e293b;font-size:24px;margin:0 0 8px 0;">Firmenportal</h1>
              <p style="color:#475569;font-size:15px;line-height:1.6;margin:0 0 24px 0;">%s</p>
              <table cellpadding="0" cellspacing="0" style="margin:0 0 24px 0;">
                <tr>
                  <td style="background-color:#2563eb;border-radius:6px;padding:12px 32px;">
                    <a href="%s/login" style="color:#ffffff;text-decoration:none;font-size:15px;font-weight:600;">
                      Zum Portal
                    </a>
                  </td>
                </tr>
              </table>
              <p style="color:#94a3b8;font-size:13px;line-height:1.6;margin:0;">
                Wenn Sie dieses Konto nicht erwartet haben, wenden Sie sich bitte an die Verwaltung.
              </p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`, intro, appURL)

	return subject, body
}
