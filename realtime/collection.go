package realtime

import (
	"context"
	"log"
	"sync"
)

// Collection, bir tablonun güncel içeriğini bellekte tutan ve değişiklik
// sinyali üzerine kaynaktan yeniden yükleyen reaktif cache'tir.
//
// Sözleşme:
// - Oluşturulduğunda bir kez tam liste sorgusu çalışır (initial fetch).
// - Hub'dan gelen HER değişiklik sinyalinde (insert/update/delete farkı
//   gözetmeden) tam liste sorgusu tekrarlanır. Delta uygulanmaz — her
//   zaman kaynaktan yeniden kurulur; sıra-bozuk güncelleme bug'ları bu
//   basitlik sayesinde baştan elenir, bedeli fazladan okumadır.
// - Bir burst içinde biriken sinyaller tek re-fetch'e coalese edilir;
//   re-fetch zaten güncel durumu okuduğu için sonuç aynıdır.
// - Üst üste binen fetch'lerde latest-wins: her fetch artan bir sequence
//   alır; eski bir fetch'in geç gelen sonucu daha yeni bir sonucun üzerine
//   YAZAMAZ. (Sıralama guard'ı olmadan yavaş bir ilk fetch, sonraki
//   re-fetch'in taze verisini ezebilirdi.)
// - Başarısız re-fetch önceki veriyi KORUR (stale-but-present) — sadece
//   Err set edilir. İlk fetch başarısızsa veri boş kalır.
// - Close() aboneliği ve goroutine'i her durumda serbest bırakır;
//   idempotent'tir.
type Collection[T any] struct {
	table string
	fetch func(ctx context.Context) ([]T, error)

	mu      sync.RWMutex
	data    []T
	err     error
	loading bool
	loaded  bool // ilk başarılı fetch tamamlandı mı

	// nextSeq/appliedSeq: latest-wins guard.
	// nextSeq fetch başlarken artar; sonuç sadece appliedSeq'ten büyük
	// bir sequence taşıyorsa uygulanır.
	nextSeq    int64
	appliedSeq int64

	events <-chan ChangeData
	cancel func()

	closeOnce sync.Once
	done      chan struct{}
}

// NewCollection, tabloya abone olur, initial fetch'i yapar ve değişiklik
// dinleyen goroutine'i başlatır.
//
// Initial fetch senkron çalışır — constructor döndüğünde Snapshot ya
// veriyi ya da Err'i taşır; caller "loading" ara durumunu görmez.
// Dinleyici goroutine Close() çağrılana kadar yaşar.
func NewCollection[T any](ctx context.Context, hub *Hub, table string, fetch func(ctx context.Context) ([]T, error)) *Collection[T] {
	events, cancel := hub.SubscribeLocal(table)

	c := &Collection[T]{
		table:  table,
		fetch:  fetch,
		events: events,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	c.Refetch(ctx)

	go c.listen()

	return c
}

// listen, değişiklik sinyallerini bekler ve her sinyalde re-fetch yapar.
func (c *Collection[T]) listen() {
	for {
		select {
		case <-c.done:
			return
		case _, ok := <-c.events:
			if !ok {
				return
			}
			// Burst coalescing: bekleyen diğer sinyalleri boşalt —
			// tek re-fetch hepsini kapsar (güncel durumu okur).
			c.drainPending()
			c.Refetch(context.Background())
		}
	}
}

// drainPending, events kanalında birikmiş sinyalleri non-blocking tüketir.
func (c *Collection[T]) drainPending() {
	for {
		select {
		case <-c.events:
		default:
			return
		}
	}
}

// Refetch, tam liste sorgusunu çalıştırır ve sonucu (güncelse) uygular.
// Manuel retry için dışarıya da açıktır — otomatik retry yoktur.
func (c *Collection[T]) Refetch(ctx context.Context) {
	c.mu.Lock()
	c.nextSeq++
	seq := c.nextSeq
	c.loading = true
	c.mu.Unlock()

	data, err := c.fetch(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	// Latest-wins: daha yeni bir fetch'in sonucu zaten uygulandıysa
	// bu (bayat) sonuç atılır.
	if seq <= c.appliedSeq {
		return
	}
	c.appliedSeq = seq
	c.loading = false

	if err != nil {
		// Önceki veri korunur — kullanıcıya boş ekran gösterilmez.
		c.err = err
		log.Printf("[realtime] collection %s refetch failed: %v", c.table, err)
		return
	}

	c.data = data
	c.err = nil
	c.loaded = true
}

// Snapshot, mevcut veri ve hata durumunun kopyasını döner.
// Dönen slice Collection'ın iç slice'ı DEĞİLDİR — caller güvenle tutabilir.
func (c *Collection[T]) Snapshot() ([]T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, len(c.data))
	copy(out, c.data)
	return out, c.err
}

// Loading, devam eden bir fetch olup olmadığını döner.
func (c *Collection[T]) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// Loaded, en az bir başarılı fetch tamamlanıp tamamlanmadığını döner.
func (c *Collection[T]) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// Close, aboneliği bırakır ve dinleyici goroutine'i durdurur.
// Her exit path'te çağrılabilir — idempotent.
func (c *Collection[T]) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.cancel()
	})
}
