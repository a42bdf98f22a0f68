// Package models, uygulamanın domain modellerini (veri yapıları) tanımlar.
//
// Model, veritabanındaki bir tablonun Go karşılığıdır ve aynı zamanda
// API'den gelen/giden verilerin şeklini belirler. Request struct'ları
// Validate() metodları ile kendi doğrulamalarını taşır — handler katmanı
// parse eder, Validate çağırır, service'e geçirir.
package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// emailRegex, pragmatik bir email format kontrolü.
// RFC 5322'nin tamamını kapsamaz — kasıtlı olarak basit tutulmuştur.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// EmailRegex, email format doğrulaması için paylaşılan regex'i döner.
func EmailRegex() *regexp.Regexp {
	return emailRegex
}

// Profile, bir kullanıcı hesabını temsil eder.
//
// Kimlik (auth) ve profil tek satırda tutulur: id hem oturum sahibinin
// kimliği hem profil anahtarıdır — bir kimlik için en fazla bir profil
// satırı olabilir (idx_profiles_email + PK garantisi).
//
// Profiller normal akışta silinmez; hesap kapatma is_active=false ile yapılır.
type Profile struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"` // API response'a DAHİL ETME
	Role         Role       `json:"role"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	IsActive     bool       `json:"is_active"`
	LastSignInAt *time.Time `json:"last_sign_in_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// RegisterRequest, müşteri self-service kaydı için frontend'den gelen veri.
// Kayıt olan herkes kunde rolü alır — yükseltme sadece admin operasyonudur.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Validate, RegisterRequest'in geçerli olup olmadığını kontrol eder.
func (r *RegisterRequest) Validate() error {
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	if r.Email == "" {
		return fmt.Errorf("email is required")
	}
	if !emailRegex.MatchString(r.Email) {
		return fmt.Errorf("invalid email format")
	}

	if utf8.RuneCountInString(r.Password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}

	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	if utf8.RuneCountInString(r.FirstName) > 64 || utf8.RuneCountInString(r.LastName) > 64 {
		return fmt.Errorf("name must be at most 64 characters")
	}

	return nil
}

// LoginRequest, giriş yaparken frontend'den gelen veri.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate, LoginRequest'in geçerli olup olmadığını kontrol eder.
func (r *LoginRequest) Validate() error {
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	if r.Email == "" {
		return fmt.Errorf("email is required")
	}
	if r.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

// UpdateProfileRequest, kullanıcının kendi profil güncellemesi.
// Pointer field'lar "gönderilmedi" ile "boş gönderildi"yi ayırır.
type UpdateProfileRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

// Validate, UpdateProfileRequest'in geçerli olup olmadığını kontrol eder.
func (r *UpdateProfileRequest) Validate() error {
	if r.FirstName != nil {
		*r.FirstName = strings.TrimSpace(*r.FirstName)
		if utf8.RuneCountInString(*r.FirstName) > 64 {
			return fmt.Errorf("name must be at most 64 characters")
		}
	}
	if r.LastName != nil {
		*r.LastName = strings.TrimSpace(*r.LastName)
		if utf8.RuneCountInString(*r.LastName) > 64 {
			return fmt.Errorf("name must be at most 64 characters")
		}
	}
	return nil
}
