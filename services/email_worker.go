package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/akinalp/firmenportal/pkg/email"
	"github.com/akinalp/firmenportal/repository"
)

// workerBatchSize, tek taramada işlenecek maksimum mesaj sayısı.
const workerBatchSize = 10

// EmailWorker, email_queue tablosunu periyodik tarayıp bekleyen
// mesajları gönderen background worker.
//
// Tek goroutine çalışır — aynı mesajın iki kez gönderilmesi mümkün
// değildir. Gönderim hatası mesajı "failed" işaretler, worker durmaz.
type EmailWorker struct {
	emailRepo repository.EmailQueueRepository
	sender    email.Sender
	interval  time.Duration

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// NewEmailWorker, constructor. sender nil olabilir (API key yoksa) —
// worker o durumda kuyruğa dokunmaz, mesajlar pending kalır.
func NewEmailWorker(emailRepo repository.EmailQueueRepository, sender email.Sender, pollSeconds int) *EmailWorker {
	return &EmailWorker{
		emailRepo: emailRepo,
		sender:    sender,
		interval:  time.Duration(pollSeconds) * time.Second,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Start, worker goroutine'ini başlatır. Bir kez çağrılmalıdır.
func (w *EmailWorker) Start() {
	go w.run()
}

func (w *EmailWorker) run() {
	defer close(w.done)

	if w.sender == nil {
		log.Println("[email] no sender configured, worker idle (messages stay pending)")
		<-w.stop
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stop:
			return
		case <-ticker.C:
			w.processBatch()
		}
	}
}

// processBatch, bekleyen mesajları FIFO sırayla gönderir.
func (w *EmailWorker) processBatch() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pending, err := w.emailRepo.NextPending(ctx, workerBatchSize)
	if err != nil {
		log.Printf("[email] failed to read queue: %v", err)
		return
	}

	for _, msg := range pending {
		if err := w.sender.Send(ctx, msg.ToEmail, msg.Subject, msg.Text); err != nil {
			log.Printf("[email] send failed: id=%s err=%v", msg.ID, err)
			if markErr := w.emailRepo.MarkFailed(ctx, msg.ID); markErr != nil {
				log.Printf("[email] failed to mark message failed: id=%s err=%v", msg.ID, markErr)
			}
			continue
		}

		if err := w.emailRepo.MarkSent(ctx, msg.ID); err != nil {
			log.Printf("[email] failed to mark message sent: id=%s err=%v", msg.ID, err)
			continue
		}

		log.Printf("[email] sent: id=%s to=%s", msg.ID, msg.ToEmail)
	}
}

// Stop, worker'ı durdurur ve goroutine bitene kadar bekler. İdempotent.
func (w *EmailWorker) Stop() {
	w.stopOnce.Do(func() {
		close(w.stop)
	})
	<-w.done
}
