// Package main, firmenportal backend uygulamasının giriş noktasıdır.
//
// Bu dosyanın görevi — Dependency Injection "wire-up":
//   1. Config'i yükle
//   2. Database'i başlat (embedded migration'lar ile)
//   3. Repository'leri oluştur
//   4. Realtime Hub'ı başlat
//   5. Service'leri + email worker'ı oluştur
//   6. Handler'ları oluştur
//   7. Middleware'ları oluştur
//   8. HTTP router'ı kur, route'ları bağla
//   9. CORS yapılandır
//  10. HTTP Server'ı başlat
//  11. Graceful shutdown
//
// Global değişken YOK — her şey bu fonksiyonda oluşturulup birbirine bağlanıyor.
package main

import (
	"context"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/akinalp/firmenportal/config"
	"github.com/akinalp/firmenportal/database"
	"github.com/akinalp/firmenportal/handlers"
	"github.com/akinalp/firmenportal/middleware"
	"github.com/akinalp/firmenportal/pkg/email"
	"github.com/akinalp/firmenportal/pkg/ratelimit"
	"github.com/akinalp/firmenportal/realtime"
	"github.com/akinalp/firmenportal/repository"
	"github.com/akinalp/firmenportal/services"
	"github.com/rs/cors"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("[main] firmenportal server starting...")

	// ─── 1. Config ───
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[main] failed to load config: %v", err)
	}
	log.Printf("[main] config loaded (port=%d)", cfg.Server.Port)

	// ─── 2. Database ───
	migrationsFS, err := fs.Sub(database.EmbeddedMigrations, "migrations")
	if err != nil {
		log.Fatalf("[main] failed to open embedded migrations: %v", err)
	}

	db, err := database.New(cfg.Database.Path, migrationsFS)
	if err != nil {
		log.Fatalf("[main] failed to initialize database: %v", err)
	}
	defer db.Close()

	// ─── 3. Repository Layer ───
	profileRepo := repository.NewSQLiteProfileRepo(db.Conn)
	sessionRepo := repository.NewSQLiteSessionRepo(db.Conn)
	mediaRepo := repository.NewSQLiteMediaRepo(db.Conn)
	seoRepo := repository.NewSQLiteSEORepo(db.Conn)
	emailRepo := repository.NewSQLiteEmailQueueRepo(db.Conn)

	if n, err := profileRepo.Count(context.Background()); err == nil {
		log.Printf("[main] %d registered profiles", n)
	}

	// ─── 4. Realtime Hub ───
	//
	// Hub, tüm WebSocket bağlantılarını ve in-process abonelikleri yöneten
	// merkezi yapıdır. `go hub.Run()` register/unregister event loop'unu
	// başlatır. Service'ler hub'a ChangeNotifier interface'i üzerinden erişir.
	hub := realtime.NewHub()
	go hub.Run()

	// ─── 5. Service Layer ───
	idGen := services.UUIDGenerator{}
	txRunner := services.NewTxRunner(db.Conn)

	authService := services.NewAuthService(
		profileRepo,
		sessionRepo,
		idGen,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	profileService := services.NewProfileService(profileRepo, hub)
	adminService := services.NewAdminService(profileRepo, sessionRepo, emailRepo, txRunner, hub, idGen, cfg.Email.AppURL)
	mediaService := services.NewMediaService(mediaRepo, hub, idGen)
	seoService := services.NewSEOService(context.Background(), seoRepo, hub)

	uploadService, err := services.NewUploadService(cfg.Upload.Dir, cfg.Upload.MaxSize)
	if err != nil {
		log.Fatalf("[main] failed to initialize upload service: %v", err)
	}

	// Email worker — kuyruğu tarayıp Resend üzerinden gönderir.
	// API key yoksa sender nil kalır, worker idle çalışır (local dev).
	var sender email.Sender
	if cfg.Email.ResendAPIKey != "" {
		sender = email.NewResendSender(cfg.Email.ResendAPIKey, cfg.Email.FromAddress)
	}
	emailWorker := services.NewEmailWorker(emailRepo, sender, cfg.Email.PollSeconds)
	emailWorker.Start()

	// Login brute-force koruması: IP başına 5 deneme / 15 dakika.
	loginLimiter := ratelimit.NewLoginRateLimiter(5, 15*time.Minute)

	// ─── 6. Handler Layer ───
	authHandler := handlers.NewAuthHandler(authService, profileService, loginLimiter)
	adminHandler := handlers.NewAdminHandler(adminService)
	mediaHandler := handlers.NewMediaHandler(mediaService, uploadService)
	seoHandler := handlers.NewSEOHandler(seoService)
	healthHandler := handlers.NewHealthHandler(db.Conn, hub)
	wsHandler := realtime.NewHandler(hub, authService)

	// ─── 7. Middleware ───
	authMw := middleware.NewAuthMiddleware(authService, profileRepo)
	roleMw := middleware.NewRoleMiddleware()

	// ─── 8. HTTP Router ───
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /api/health", healthHandler.Check)

	// Auth — public endpoint'ler (token gerekmez)
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/auth/refresh", authHandler.Refresh)
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)

	// SEO lookup — public, her sayfa yüklemesinde çağrılır
	mux.HandleFunc("GET /api/seo/lookup", seoHandler.Lookup)

	// Session — authMiddleware.Require() sarar
	mux.Handle("GET /api/auth/me", authMw.Require(http.HandlerFunc(authHandler.Me)))
	mux.Handle("PATCH /api/auth/me", authMw.Require(http.HandlerFunc(authHandler.UpdateMe)))
	mux.Handle("POST /api/auth/change-password", authMw.Require(http.HandlerFunc(authHandler.ChangePassword)))

	// Media — okuma tüm authenticated kullanıcılara, yazma admin + mitarbeiter'a
	mux.Handle("GET /api/media", authMw.Require(http.HandlerFunc(mediaHandler.List)))
	mux.Handle("GET /api/media/{id}", authMw.Require(http.HandlerFunc(mediaHandler.Get)))
	mux.Handle("POST /api/media", authMw.Require(
		roleMw.RequireStaff(http.HandlerFunc(mediaHandler.Create))))
	mux.Handle("POST /api/media/upload", authMw.Require(
		roleMw.RequireStaff(http.HandlerFunc(mediaHandler.Upload))))
	mux.Handle("PATCH /api/media/{id}", authMw.Require(
		roleMw.RequireStaff(http.HandlerFunc(mediaHandler.Update))))
	mux.Handle("DELETE /api/media/{id}", authMw.Require(
		roleMw.RequireStaff(http.HandlerFunc(mediaHandler.Delete))))

	// Admin — kullanıcı yönetimi, sadece admin rolü.
	// Yetki kontrolü middleware'de biter: 403 alan istek handler'a,
	// dolayısıyla hiçbir mutasyona ULAŞMAZ.
	mux.Handle("GET /api/admin/users", authMw.Require(
		roleMw.RequireAdmin(http.HandlerFunc(adminHandler.ListUsers))))
	mux.Handle("PATCH /api/admin/users/{id}", authMw.Require(
		roleMw.RequireAdmin(http.HandlerFunc(adminHandler.UpdateUser))))
	mux.Handle("POST /api/admin/users", authMw.Require(
		roleMw.RequireAdmin(http.HandlerFunc(adminHandler.CreateAdminUser))))
	mux.Handle("POST /api/admin/welcome-email", authMw.Require(
		roleMw.RequireAdmin(http.HandlerFunc(adminHandler.SendWelcomeEmail))))

	// Admin — SEO yönetimi
	mux.Handle("GET /api/admin/seo", authMw.Require(
		roleMw.RequireAdmin(http.HandlerFunc(seoHandler.List))))
	mux.Handle("PUT /api/admin/seo", authMw.Require(
		roleMw.RequireAdmin(http.HandlerFunc(seoHandler.Upsert))))
	mux.Handle("DELETE /api/admin/seo", authMw.Require(
		roleMw.RequireAdmin(http.HandlerFunc(seoHandler.Delete))))

	// Static file serving — yüklenen medya dosyalarına erişim.
	// Sadece düz dosya isimleri kabul edilir, subdirectory traversal engellenir.
	uploadsHandler := http.StripPrefix("/api/uploads/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "/") || strings.Contains(r.URL.Path, "\\") {
			http.NotFound(w, r)
			return
		}
		http.FileServer(http.Dir(cfg.Upload.Dir)).ServeHTTP(w, r)
	}))
	mux.Handle("GET /api/uploads/", uploadsHandler)

	// WebSocket — token query parameter ile authenticate edilir.
	// Upgrade sırasında tarayıcılar custom header gönderemediği için JWT
	// URL'de taşınır: ws://server/ws?token=JWT_TOKEN
	mux.HandleFunc("GET /ws", wsHandler.HandleConnection)

	// ─── 9. CORS ───
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := corsHandler.Handler(mux)

	// ─── 10. HTTP Server ───
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ─── 11. Graceful Shutdown ───
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("[main] server listening on %s", cfg.Server.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[main] server error: %v", err)
		}
	}()

	<-done
	log.Println("[main] shutting down...")

	// Önce WebSocket bağlantıları ve cache abonelikleri kapanır, sonra
	// HTTP server mevcut request'lerin bitmesini bekler (5sn timeout).
	seoService.Close()
	hub.Shutdown()
	emailWorker.Stop()
	loginLimiter.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("[main] forced shutdown: %v", err)
	}

	log.Println("[main] server stopped gracefully")
}
