// Package pkg, projede paylaşılan utility'leri barındırır.
// Bu dosya domain-level error tanımlarını içerir.
//
// Error karşılaştırması string yerine sentinel değerler ile yapılır:
//
//	if errors.Is(err, pkg.ErrNotFound) { ... }
//
// Service katmanı bu error'ları (çoğunlukla fmt.Errorf("%w: ...") ile
// sarılmış halde) döner, handler katmanı HTTP status code'larına map'ler.
package pkg

import "errors"

// Domain-level error'lar.
//
// Yetki kontrolü açısından kritik ayrım:
// ErrUnauthorized → kimlik yok/geçersiz (401)
// ErrForbidden → kimlik var ama rol yetersiz (403)
var (
	ErrNotFound      = errors.New("not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrAlreadyExists = errors.New("already exists")
	ErrBadRequest    = errors.New("bad request")
	ErrInternal      = errors.New("internal error")
)
