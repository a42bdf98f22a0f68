package models

// Role, bir profilin yetki seviyesini temsil eden kapalı enum'dur.
//
// Rol serbest string olarak taşınmaz — veri erişim sınırında (request parse,
// repository yazma) her zaman Valid() ile doğrulanır. Geçersiz bir değer
// hiçbir zaman DB'ye yazılmaz, DB'den gelen tanınmayan bir değer ise
// yetkisiz (unset) muamelesi görür.
type Role string

// İzin verilen Role değerleri.
// RoleUnset: henüz rol atanmamış hesap — hiçbir korumalı alana erişemez.
const (
	RoleAdmin       Role = "admin"
	RoleMitarbeiter Role = "mitarbeiter"
	RoleKunde       Role = "kunde"
	RoleUnset       Role = ""
)

// Valid, rolün tanımlı değerlerden biri olup olmadığını kontrol eder.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleMitarbeiter, RoleKunde, RoleUnset:
		return true
	default:
		return false
	}
}

// IsAdmin, fail-closed admin kontrolü.
// Tanınmayan veya boş rol asla admin değildir.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// IsStaff, admin veya mitarbeiter rollerini kapsar.
// Medya yönetimi gibi iç operasyonlar bu seviyeyi gerektirir.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleMitarbeiter
}
