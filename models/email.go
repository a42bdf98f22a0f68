package models

import "time"

// EmailStatus, kuyruktaki bir email'in gönderim durumunu temsil eder.
type EmailStatus string

// İzin verilen EmailStatus değerleri.
// pending → worker tarafından alınmayı bekliyor
// sent    → başarıyla gönderildi
// failed  → gönderim hatası (otomatik retry yok — manuel yeniden kuyruklanır)
const (
	EmailStatusPending EmailStatus = "pending"
	EmailStatusSent    EmailStatus = "sent"
	EmailStatusFailed  EmailStatus = "failed"
)

// EmailMessage, email_queue tablosundaki bir satırı temsil eder.
//
// Email'ler senkron gönderilmez — HTTP handler kuyruk satırı yazar,
// background worker kuyruğu tarayıp Resend üzerinden gönderir.
// Böylece Resend API yavaşlığı veya kesintisi request latency'sine yansımaz.
type EmailMessage struct {
	ID        string      `json:"id"`
	ToEmail   string      `json:"to_email"`
	Subject   string      `json:"subject"`
	Text      string      `json:"text"`
	Status    EmailStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	SentAt    *time.Time  `json:"sent_at"`
}
