package services

import (
	"context"
	"testing"
	"time"

	"github.com/akinalp/firmenportal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func enqueueTestMessage(t *testing.T, repo *fakeEmailRepo, id, to string) {
	t.Helper()
	require.NoError(t, repo.Enqueue(context.Background(), &models.EmailMessage{
		ID:      id,
		ToEmail: to,
		Subject: "Willkommen",
		Text:    "Hallo",
	}))
}

func TestEmailWorkerSendsPendingMessages(t *testing.T) {
	repo := newFakeEmailRepo()
	sender := &fakeSender{}

	enqueueTestMessage(t, repo, "m1", "a@example.com")
	enqueueTestMessage(t, repo, "m2", "b@example.com")

	worker := NewEmailWorker(repo, sender, 1)
	worker.processBatch()

	assert.Equal(t, []string{"a@example.com", "b@example.com"}, sender.sentTo())

	for _, m := range repo.queued() {
		assert.Equal(t, models.EmailStatusSent, m.Status)
	}

	// İkinci tarama boş — sent mesajlar tekrar gönderilmez.
	worker.processBatch()
	assert.Len(t, sender.sentTo(), 2)
}

func TestEmailWorkerMarksFailedAndContinues(t *testing.T) {
	repo := newFakeEmailRepo()
	sender := &fakeSender{failFor: map[string]bool{"kaputt@example.com": true}}

	enqueueTestMessage(t, repo, "m1", "kaputt@example.com")
	enqueueTestMessage(t, repo, "m2", "ok@example.com")

	worker := NewEmailWorker(repo, sender, 1)
	worker.processBatch()

	// Hatalı mesaj worker'ı durdurmaz, sıradaki gönderilir.
	assert.Equal(t, []string{"ok@example.com"}, sender.sentTo())

	queued := repo.queued()
	assert.Equal(t, models.EmailStatusFailed, queued[0].Status)
	assert.Equal(t, models.EmailStatusSent, queued[1].Status)

	// failed mesaj sonraki taramada tekrar denenmez.
	worker.processBatch()
	assert.Len(t, sender.sentTo(), 1)
}

func TestEmailWorkerStop(t *testing.T) {
	repo := newFakeEmailRepo()
	worker := NewEmailWorker(repo, &fakeSender{}, 1)
	worker.Start()

	done := make(chan struct{})
	go func() {
		worker.Stop()
		worker.Stop() // idempotent
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop")
	}
}

func TestEmailWorkerIdleWithoutSender(t *testing.T) {
	repo := newFakeEmailRepo()
	enqueueTestMessage(t, repo, "m1", "a@example.com")

	worker := NewEmailWorker(repo, nil, 1)
	worker.Start()
	time.Sleep(50 * time.Millisecond)
	worker.Stop()

	// Sender yokken mesajlar pending kalır.
	assert.Equal(t, models.EmailStatusPending, repo.queued()[0].Status)
}
