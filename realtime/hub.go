package realtime

import (
	"encoding/json"
	"log"
	"sync"
	"sync/atomic"
)

// ChangeNotifier, service katmanının tablo değişikliklerini duyurmak için
// kullandığı interface.
//
// Dependency Inversion: Service'ler Hub'ın concrete struct'ına değil bu
// interface'e bağımlıdır — testlerde fake notifier kullanılabilir ve Hub
// implementasyonu değişse bile service kodu etkilenmez.
type ChangeNotifier interface {
	NotifyChange(table string, action ChangeAction)
}

// SubscribableTables, client'ların abone olabildiği tablo isimleri.
// Whitelist — tanınmayan tablo adına abonelik sessizce reddedilir,
// client keyfi string'lerle Hub map'ini şişiremez.
var SubscribableTables = []string{"profiles", "media", "seo_metadata"}

// localSubscriber, in-process abone (Collection) için buffer'lı kanal.
// Buffer doluysa event düşürülür — re-fetch zaten güncel durumu okuduğu
// için bekleyen bir sinyal varken ikincisinin kaybı sonucu değiştirmez.
const localBufferSize = 8

// Hub, tüm WebSocket bağlantılarını ve tablo aboneliklerini yöneten
// merkezi yapıdır (Observer pattern).
//
// register/unregister channel'ları Run() goroutine'i tarafından okunur;
// clients map'ine erişim mutex ile korunur çünkü NotifyChange herhangi
// bir service goroutine'inden çağrılabilir.
type Hub struct {
	// clients: bağlı tüm client'lar. map[*Client]bool — Go'da set yoktur,
	// bool değeri sadece varlık kontrolü içindir.
	clients map[*Client]bool
	mu      sync.RWMutex

	register   chan *Client
	unregister chan *Client

	// localSubs: tablo adı → in-process subscriber kanalları.
	// Collection'lar buradan beslenir; WS client'larından bağımsızdır.
	localSubs map[string]map[chan ChangeData]bool
	localMu   sync.RWMutex

	// seq: her outbound event'e verilen artan sayaç.
	seq atomic.Int64
}

// NewHub, yeni bir Hub oluşturur.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		localSubs:  make(map[string]map[chan ChangeData]bool),
	}
}

// Run, Hub'ın ana event loop'udur. main.go'da `go hub.Run()` ile başlatılır.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)

		case client := <-h.unregister:
			h.removeClient(client)
		}
	}
}

// addClient, yeni bir client'ı Hub'a ekler.
func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = true
	log.Printf("[realtime] client connected: user=%s (total: %d)", client.userID, len(h.clients))
}

// removeClient, bir client'ı Hub'dan çıkarır ve send channel'ını kapatır.
func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
		log.Printf("[realtime] client disconnected: user=%s (remaining: %d)", client.userID, len(h.clients))
	}
}

// NotifyChange, bir tablodaki değişikliği duyurur.
//
// İki hedef kitle vardır:
// 1. O tabloya abone WS client'ları — table_change event'i alır
// 2. In-process local subscriber'lar (Collection) — kanaldan sinyal alır
//
// Payload satır verisi içermez; abone taraf tam re-fetch yapar.
func (h *Hub) NotifyChange(table string, action ChangeAction) {
	change := ChangeData{Table: table, Action: action}

	// WS client'ları
	event := Event{Op: OpTableChange, Data: change, Seq: h.seq.Add(1)}
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[realtime] failed to marshal change event: %v", err)
		return
	}

	h.mu.RLock()
	for client := range h.clients {
		if !client.subscribedTo(table) {
			continue
		}
		select {
		case client.send <- data:
		default:
			// Buffer dolu — bu client yavaş, bağlantısını kapat.
			// unregister'a ayrı goroutine'den gönderilir, RLock altında
			// Run() goroutine'i ile deadlock oluşmaz.
			go func(c *Client) { h.unregister <- c }(client)
		}
	}
	h.mu.RUnlock()

	// Local subscriber'lar
	h.localMu.RLock()
	for ch := range h.localSubs[table] {
		select {
		case ch <- change:
		default:
			// Buffer dolu — bekleyen sinyal zaten re-fetch tetikleyecek
		}
	}
	h.localMu.RUnlock()
}

// SubscribeLocal, in-process bir abonelik açar (Collection için).
//
// Dönen cancel fonksiyonu aboneliği kapatır ve kanalı localSubs'tan
// çıkarır — her exit path'te çağrılması Collection.Close'un sorumluluğudur.
// Cancel idempotent'tir.
func (h *Hub) SubscribeLocal(table string) (<-chan ChangeData, func()) {
	ch := make(chan ChangeData, localBufferSize)

	h.localMu.Lock()
	if h.localSubs[table] == nil {
		h.localSubs[table] = make(map[chan ChangeData]bool)
	}
	h.localSubs[table][ch] = true
	h.localMu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.localMu.Lock()
			delete(h.localSubs[table], ch)
			h.localMu.Unlock()
			close(ch)
		})
	}

	return ch, cancel
}

// LocalSubscriberCount, bir tablo için aktif in-process abonelik sayısını döner.
func (h *Hub) LocalSubscriberCount(table string) int {
	h.localMu.RLock()
	defer h.localMu.RUnlock()
	return len(h.localSubs[table])
}

// ConnectedClients, bağlı WS client sayısını döner.
func (h *Hub) ConnectedClients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Shutdown, tüm client bağlantılarını kapatır (graceful shutdown).
func (h *Hub) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		close(client.send)
	}
	h.clients = make(map[*Client]bool)
	log.Println("[realtime] hub shut down, all connections closed")
}

// isSubscribableTable, tablo adının whitelist'te olup olmadığını kontrol eder.
func isSubscribableTable(table string) bool {
	for _, t := range SubscribableTables {
		if t == table {
			return true
		}
	}
	return false
}
