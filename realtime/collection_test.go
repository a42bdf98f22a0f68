package realtime

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectionInitialFetch(t *testing.T) {
	hub := NewHub()

	c := NewCollection(context.Background(), hub, "media", func(ctx context.Context) ([]string, error) {
		return []string{"a", "b"}, nil
	})
	defer c.Close()

	// Initial fetch senkron — constructor döndüğünde veri hazır olmalı.
	data, err := c.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, data)
	assert.True(t, c.Loaded())
	assert.False(t, c.Loading())
}

func TestCollectionRefetchesOnChangeSignal(t *testing.T) {
	hub := NewHub()

	var calls atomic.Int32
	c := NewCollection(context.Background(), hub, "media", func(ctx context.Context) ([]string, error) {
		if calls.Add(1) == 1 {
			return []string{"v1"}, nil
		}
		return []string{"v2"}, nil
	})
	defer c.Close()

	data, _ := c.Snapshot()
	require.Equal(t, []string{"v1"}, data)

	hub.NotifyChange("media", ActionUpdate)

	require.Eventually(t, func() bool {
		data, _ := c.Snapshot()
		return len(data) == 1 && data[0] == "v2"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestCollectionKeepsStaleDataOnFailedRefetch(t *testing.T) {
	hub := NewHub()

	var calls atomic.Int32
	c := NewCollection(context.Background(), hub, "media", func(ctx context.Context) ([]string, error) {
		if calls.Add(1) == 1 {
			return []string{"v1"}, nil
		}
		return nil, assert.AnError
	})
	defer c.Close()

	hub.NotifyChange("media", ActionDelete)

	require.Eventually(t, func() bool {
		_, err := c.Snapshot()
		return err != nil
	}, 2*time.Second, 10*time.Millisecond)

	// Başarısız re-fetch önceki veriyi korur.
	data, _ := c.Snapshot()
	assert.Equal(t, []string{"v1"}, data)
	assert.True(t, c.Loaded())
}

func TestCollectionLatestWins(t *testing.T) {
	hub := NewHub()

	var calls atomic.Int32
	slowStarted := make(chan struct{})
	release := make(chan struct{})

	c := NewCollection(context.Background(), hub, "media", func(ctx context.Context) ([]string, error) {
		switch calls.Add(1) {
		case 1:
			return []string{"v1"}, nil
		case 2:
			// Yavaş fetch — sonucu ancak release sonrası döner.
			close(slowStarted)
			<-release
			return []string{"slow"}, nil
		default:
			return []string{"fresh"}, nil
		}
	})
	defer c.Close()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.Refetch(context.Background())
	}()

	<-slowStarted

	// Yavaş fetch hâlâ yoldayken daha yeni bir fetch tamamlanır.
	c.Refetch(context.Background())
	data, err := c.Snapshot()
	require.NoError(t, err)
	require.Equal(t, []string{"fresh"}, data)

	// Yavaş fetch'in geç gelen sonucu taze veriyi EZMEMELİ.
	close(release)
	wg.Wait()

	data, err = c.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, []string{"fresh"}, data)
}

func TestCollectionCoalescesBursts(t *testing.T) {
	hub := NewHub()

	var calls atomic.Int32
	fetchStarted := make(chan struct{})
	release := make(chan struct{})

	c := NewCollection(context.Background(), hub, "media", func(ctx context.Context) ([]string, error) {
		n := calls.Add(1)
		if n == 2 {
			close(fetchStarted)
			<-release
		}
		return []string{"data"}, nil
	})
	defer c.Close()

	// İlk sinyal re-fetch'i başlatır, fetch gate'te bekler.
	hub.NotifyChange("media", ActionInsert)
	<-fetchStarted

	// Fetch yoldayken gelen burst kanalda birikir.
	for i := 0; i < 5; i++ {
		hub.NotifyChange("media", ActionUpdate)
	}

	close(release)

	// Biriken 5 sinyal tek bir trailing re-fetch'e coalese edilmeli:
	// initial (1) + ilk sinyal (2) + trailing (3) = toplam 3 fetch.
	require.Eventually(t, func() bool {
		return calls.Load() == 3
	}, 2*time.Second, 10*time.Millisecond)

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(3), calls.Load())
}

func TestCollectionCloseReleasesSubscription(t *testing.T) {
	hub := NewHub()

	c := NewCollection(context.Background(), hub, "media", func(ctx context.Context) ([]string, error) {
		return nil, nil
	})
	require.Equal(t, 1, hub.LocalSubscriberCount("media"))

	c.Close()
	assert.Equal(t, 0, hub.LocalSubscriberCount("media"))

	// İdempotent — ikinci Close panic'lememeli.
	c.Close()

	// Kapat + yeniden oluştur: her an en fazla tek abonelik açık kalır.
	c2 := NewCollection(context.Background(), hub, "media", func(ctx context.Context) ([]string, error) {
		return nil, nil
	})
	defer c2.Close()
	assert.Equal(t, 1, hub.LocalSubscriberCount("media"))
}
