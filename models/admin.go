package models

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// AdminUserListItem — admin panelde gösterilen kullanıcı satırı.
// Profil tablosundan tek sorgu ile gelir; password hash asla taşınmaz.
type AdminUserListItem struct {
	ID           string  `json:"id"`
	Email        string  `json:"email"`
	Role         Role    `json:"role"`
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	CreatedAt    string  `json:"created_at"`
	LastSignInAt *string `json:"last_sign_in_at"`
	IsActive     bool    `json:"is_active"`
}

// AdminUpdateUserRequest, bir kullanıcının rol ve/veya aktiflik durumunu
// değiştirme isteği. Her iki field da opsiyoneldir ama en az biri gereklidir.
type AdminUpdateUserRequest struct {
	Role     *string `json:"role"`
	IsActive *bool   `json:"is_active"`
}

// Validate, AdminUpdateUserRequest'in geçerli olup olmadığını kontrol eder.
// Rol değeri kapalı enum'a karşı burada — veri erişim sınırında — doğrulanır.
func (r *AdminUpdateUserRequest) Validate() error {
	if r.Role == nil && r.IsActive == nil {
		return fmt.Errorf("at least one of role or is_active is required")
	}

	if r.Role != nil {
		role := Role(strings.TrimSpace(*r.Role))
		if !role.Valid() {
			return fmt.Errorf("role must be one of: admin, mitarbeiter, kunde, or empty")
		}
		*r.Role = string(role)
	}

	return nil
}

// CreateAdminUserRequest, yeni admin hesabı oluşturma isteği.
type CreateAdminUserRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Validate, CreateAdminUserRequest'in geçerli olup olmadığını kontrol eder.
func (r *CreateAdminUserRequest) Validate() error {
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	if r.Email == "" {
		return fmt.Errorf("email is required")
	}
	if !EmailRegex().MatchString(r.Email) {
		return fmt.Errorf("invalid email format")
	}

	if utf8.RuneCountInString(r.Password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}

	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)

	return nil
}

// WelcomeEmailRequest, hoş geldin email'i kuyruklama isteği.
type WelcomeEmailRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Validate, WelcomeEmailRequest'in geçerli olup olmadığını kontrol eder.
func (r *WelcomeEmailRequest) Validate() error {
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	if r.Email == "" {
		return fmt.Errorf("email is required")
	}
	if !EmailRegex().MatchString(r.Email) {
		return fmt.Errorf("invalid email format")
	}

	if !Role(r.Role).Valid() {
		return fmt.Errorf("role must be one of: admin, mitarbeiter, kunde, or empty")
	}

	return nil
}
