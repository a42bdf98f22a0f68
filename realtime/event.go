// Package realtime, WebSocket bağlantı yönetimi ve tablo bazlı değişiklik
// bildirimlerini sağlar.
//
// Mimari:
// - Hub: Tüm bağlantıları ve abonelikleri yöneten merkezi yapı
// - Client: Her WebSocket bağlantısını temsil eder
// - Event: Client-server arası iletilen mesaj formatı
// - Collection: Değişiklik sinyali üzerine tam re-fetch yapan in-process cache
//
// Değişiklik akışı:
// 1. Bir service tablo yazar (INSERT/UPDATE/DELETE) → DB kayıt
// 2. Service, Hub.NotifyChange(table, action) çağırır
// 3. Hub, o tabloya abone tüm WS client'larına table_change event'i iletir
//    ve in-process local subscriber'ları (Collection) uyandırır
// 4. Client tarafı payload'ı incelemez — event'in varlığı tek sinyaldir,
//    güncel veri tam liste sorgusu ile yeniden çekilir
package realtime

// Event, WebSocket üzerinden iletilen bir mesajı temsil eder.
//
// Op: Event türü — "subscribe", "table_change" vb.
// Data: Event'e özgü payload.
// Seq: Her outbound event'e verilen artan sayı — client eksik event
// tespiti için takip edebilir.
type Event struct {
	Op   string `json:"op"`
	Data any    `json:"d,omitempty"`
	Seq  int64  `json:"seq,omitempty"`
}

// Client → Server operasyonları
const (
	OpHeartbeat   = "heartbeat"   // Client her 30sn'de gönderir — "hâlâ bağlıyım" sinyali
	OpSubscribe   = "subscribe"   // Bir tablonun değişiklik event'lerine abone ol
	OpUnsubscribe = "unsubscribe" // Aboneliği bırak
)

// Server → Client operasyonları
const (
	OpReady        = "ready"         // Bağlantı kurulduğunda ilk gönderilen
	OpHeartbeatAck = "heartbeat_ack" // Heartbeat'e yanıt
	OpTableChange  = "table_change"  // Abone olunan tabloda değişiklik oldu
)

// ChangeAction, bir tabloda gerçekleşen değişikliğin türünü belirtir.
// Client tarafı action'ı sadece bilgi amaçlı kullanır — hangi action
// gelirse gelsin tam re-fetch yapılır.
type ChangeAction string

// İzin verilen ChangeAction değerleri.
const (
	ActionInsert ChangeAction = "insert"
	ActionUpdate ChangeAction = "update"
	ActionDelete ChangeAction = "delete"
)

// ChangeData, table_change event'inin payload'ı.
// Değişen satır KASITLI olarak taşınmaz — client güncel durumu her zaman
// kaynak sorgudan okur, delta uygulama bug'ları baştan elenir.
type ChangeData struct {
	Table  string       `json:"table"`
	Action ChangeAction `json:"action"`
}

// SubscribeData, subscribe/unsubscribe operasyonlarının payload'ı.
type SubscribeData struct {
	Table string `json:"table"`
}

// ReadyData, bağlantı kurulduğunda client'a gönderilen ilk event'in payload'ı.
// Tables: abone olunabilir tablo isimleri.
type ReadyData struct {
	Tables []string `json:"tables"`
}
