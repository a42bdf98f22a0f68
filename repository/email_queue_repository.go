package repository

import (
	"context"

	"github.com/akinalp/firmenportal/models"
)

// EmailQueueRepository, email kuyruğu için interface.
//
// NextPending, en eski bekleyen mesajları döner (FIFO). Worker tek
// goroutine olduğu için claim/lock mekanizmasına gerek yoktur — aynı
// mesajı iki worker'ın alması mümkün değildir.
type EmailQueueRepository interface {
	Enqueue(ctx context.Context, msg *models.EmailMessage) error
	NextPending(ctx context.Context, limit int) ([]models.EmailMessage, error)
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string) error
}
