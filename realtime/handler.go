package realtime

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/akinalp/firmenportal/models"
)

// TokenValidator, WebSocket handler'ın JWT doğrulaması için kullandığı interface.
//
// Neden services.AuthService yerine kendi interface'imiz?
// Circular dependency'yi önlemek için: services paketi realtime.ChangeNotifier
// kullanıyor — realtime paketi services'e bağlanırsa döngü oluşur.
// Ayrıca handler'ın AuthService'in tamamına ihtiyacı yok (Interface
// Segregation); sadece ValidateAccessToken yeterli.
type TokenValidator interface {
	ValidateAccessToken(tokenString string) (*models.TokenClaims, error)
}

// upgrader, HTTP bağlantısını WebSocket bağlantısına yükseltir.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// CheckOrigin: CORS katmanı WS upgrade'e uygulanmaz; origin kontrolü
	// burada yapılmalı. Development için tüm origin'lere izin veriliyor.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler, WebSocket bağlantı isteklerini işleyen HTTP handler'ı.
type Handler struct {
	hub            *Hub
	tokenValidator TokenValidator
}

// NewHandler, yeni bir WebSocket handler oluşturur.
func NewHandler(hub *Hub, tokenValidator TokenValidator) *Handler {
	return &Handler{
		hub:            hub,
		tokenValidator: tokenValidator,
	}
}

// HandleConnection, HTTP bağlantısını WebSocket'e yükseltir ve client'ı Hub'a kaydeder.
//
// Token URL query parameter olarak gelir (ws://server/ws?token=JWT) —
// tarayıcılar WebSocket upgrade sırasında custom header gönderemez.
//
// Flow:
// 1. Query'den token al, doğrula
// 2. HTTP → WebSocket upgrade
// 3. Client oluştur, Hub'a kaydet
// 4. ready event'i gönder (abone olunabilir tablolar)
// 5. WritePump goroutine'de, ReadPump mevcut goroutine'de çalışır —
//    ReadPump bağlantı kapanana kadar bloklar
func (h *Handler) HandleConnection(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}

	claims, err := h.tokenValidator.ValidateAccessToken(token)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[realtime] upgrade failed for user %s: %v", claims.UserID, err)
		return
	}

	client := &Client{
		hub:    h.hub,
		conn:   conn,
		userID: claims.UserID,
		send:   make(chan []byte, sendBufferSize),
		tables: make(map[string]bool),
	}

	h.hub.register <- client

	client.sendEvent(Event{
		Op:   OpReady,
		Data: ReadyData{Tables: SubscribableTables},
	})

	go client.WritePump()
	client.ReadPump()
}
