package services

import "github.com/google/uuid"

// IDGenerator, yeni kayıtlar için benzersiz ID üretir.
// Testlerde deterministik ID basmak için interface olarak tanımlı.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator, production implementasyonu (UUIDv4).
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}
