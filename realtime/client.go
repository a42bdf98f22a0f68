package realtime

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// WebSocket bağlantı sabitleri
const (
	// writeWait: Bir mesajı yazmak için maksimum bekleme süresi.
	writeWait = 10 * time.Second

	// pongWait: Client'ın heartbeat göndermesi için beklenen maksimum süre.
	// 3 heartbeat kaçırma = 30s × 3 = 90s.
	pongWait = 90 * time.Second

	// maxMessageSize: Client'ın gönderebileceği maksimum mesaj boyutu (byte).
	// subscribe/heartbeat mesajları küçüktür — büyük veri HTTP ile gider.
	maxMessageSize = 1024

	// sendBufferSize: Her client'ın send channel'ının buffer boyutu.
	// Buffer dolarsa client yavaş demektir — bağlantı kapatılır.
	sendBufferSize = 64
)

// Client, tek bir WebSocket bağlantısını temsil eder.
//
// Her bağlantı için iki goroutine çalışır:
// - ReadPump: Client'dan gelen subscribe/heartbeat mesajlarını okur
// - WritePump: Hub'dan gelen event'leri client'a yazar
//
// gorilla/websocket aynı anda tek okuma + tek yazma destekler;
// iki ayrı goroutine ile okuma ve yazma birbirini bloklamaz.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	userID string
	send   chan []byte

	// tables: bu client'ın abone olduğu tablolar.
	// ReadPump (yazma) ve NotifyChange (okuma) farklı goroutine'lerden
	// eriştiği için mutex ile korunur.
	tables  map[string]bool
	tableMu sync.RWMutex

	writeMu sync.Mutex // conn.WriteMessage çağrılarını korur
}

// subscribedTo, client'ın verilen tabloya abone olup olmadığını döner.
func (c *Client) subscribedTo(table string) bool {
	c.tableMu.RLock()
	defer c.tableMu.RUnlock()
	return c.tables[table]
}

// ReadPump, WebSocket bağlantısından gelen mesajları okur ve işler.
// Bağlantı kapanana kadar döngüde kalır; kapandığında Hub'dan çıkış yapar.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)

	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.Printf("[realtime] failed to set read deadline for user %s: %v", c.userID, err)
		return
	}

	for {
		_, rawMessage, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[realtime] unexpected close for user %s: %v", c.userID, err)
			}
			return
		}

		var event Event
		if err := json.Unmarshal(rawMessage, &event); err != nil {
			log.Printf("[realtime] invalid message from user %s: %v", c.userID, err)
			continue
		}

		c.handleEvent(event)
	}
}

// handleEvent, client'dan gelen event'leri türüne göre işler.
func (c *Client) handleEvent(event Event) {
	switch event.Op {
	case OpHeartbeat:
		// Heartbeat geldi — deadline'ı yenile ve ack gönder.
		if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			log.Printf("[realtime] failed to set read deadline for user %s: %v", c.userID, err)
			return
		}
		c.sendEvent(Event{Op: OpHeartbeatAck})

	case OpSubscribe:
		c.handleSubscribe(event, true)

	case OpUnsubscribe:
		c.handleSubscribe(event, false)

	default:
		log.Printf("[realtime] unknown op from user %s: %s", c.userID, event.Op)
	}
}

// handleSubscribe, subscribe/unsubscribe operasyonlarını işler.
//
// event.Data tipi any'dir — doğrudan cast edilemez, JSON round-trip ile
// SubscribeData'ya parse edilir.
func (c *Client) handleSubscribe(event Event, subscribe bool) {
	dataBytes, err := json.Marshal(event.Data)
	if err != nil {
		return
	}

	var data SubscribeData
	if err := json.Unmarshal(dataBytes, &data); err != nil {
		return
	}

	if !isSubscribableTable(data.Table) {
		log.Printf("[realtime] subscribe to unknown table %q from user %s", data.Table, c.userID)
		return
	}

	c.tableMu.Lock()
	if subscribe {
		c.tables[data.Table] = true
	} else {
		delete(c.tables, data.Table)
	}
	c.tableMu.Unlock()
}

// sendEvent, client'a tek bir event gönderir.
func (c *Client) sendEvent(event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[realtime] failed to marshal event for user %s: %v", c.userID, err)
		return
	}

	select {
	case c.send <- data:
	default:
		// Buffer dolu — client muhtemelen donmuş, bağlantıyı kapat
		log.Printf("[realtime] send buffer full for user %s, dropping connection", c.userID)
		c.hub.unregister <- c
	}
}

// WritePump, Hub'dan gelen mesajları WebSocket bağlantısına yazar.
func (c *Client) WritePump() {
	defer c.conn.Close()

	for {
		message, ok := <-c.send
		if !ok {
			// Channel kapatıldı — Hub client'ı çıkardı
			c.writeMessage(websocket.CloseMessage, nil)
			return
		}

		if err := c.writeMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
}

// writeMessage, WebSocket'e mesaj yazar.
// gorilla/websocket conn'a aynı anda birden fazla yazma YASAK — mutex şart.
func (c *Client) writeMessage(messageType int, data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteMessage(messageType, data)
}
