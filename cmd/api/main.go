package main

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"bookstore/internal/auth"
	"bookstore/internal/book"
	"bookstore/internal/config"
	"bookstore/internal/httpx"
	"bookstore/internal/notify"
	"bookstore/internal/platform/imagestore"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	dbPool := mustOpenDB(cfg.DatabaseDSN)
	defer dbPool.Close()

	images, err := imagestore.NewMinIO(imagestore.Config{
		Endpoint:      cfg.ImageStore.Endpoint,
		AccessKey:     cfg.ImageStore.AccessKey,
		SecretKey:     cfg.ImageStore.SecretKey,
		Bucket:        cfg.ImageStore.Bucket,
		UseSSL:        cfg.ImageStore.UseSSL,
		PublicBaseURL: cfg.ImageStore.PublicBaseURL,
	})
	if err != nil {
		log.Fatalf("cannot create image store client: %v", err)
	}

	bookRepository := book.NewPostgresRepo(dbPool, 5*time.Second)
	bookService := book.NewService(bookRepository, images, cfg.ImageStore.Folder)
	bookHandler := book.NewHTTPHandler(bookService)

	mailer := notify.NewSMTPSender(cfg.SMTP)
	notifyHandler := notify.NewHTTPHandler(mailer, cfg.SMTP.StoreAddress)

	router := http.NewServeMux()

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := dbPool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	adminOnly := auth.AdminMiddleware(cfg.AdminJWTSecret)

	router.HandleFunc("GET /api/books", bookHandler.List)
	router.HandleFunc("GET /api/books/{id}", bookHandler.Get)
	router.Handle("POST /api/books", adminOnly(http.HandlerFunc(bookHandler.Create)))
	router.Handle("PUT /api/books/{id}", adminOnly(http.HandlerFunc(bookHandler.Update)))
	router.Handle("DELETE /api/books/{id}", adminOnly(http.HandlerFunc(bookHandler.Delete)))

	router.HandleFunc("POST /send", notifyHandler.Contact)
	router.HandleFunc("POST /api/send-email", notifyHandler.Order)

	rateLimit := httpx.NewRateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst)

	var handler http.Handler = router
	handler = httpx.RequestSizeLimitMiddleware(cfg.MaxBodyBytes)(handler)
	handler = rateLimit.Middleware(handler)
	handler = httpx.CORSMiddleware(cfg.AllowedOrigins)(handler)
	handler = httpx.SecurityHeadersMiddleware(cfg.EnableHSTS)(handler)
	// Recovery sits inside the access log so its write-tracking wrapper
	// is the writer recovery inspects after a panic.
	handler = httpx.RecoveryMiddleware(handler)
	handler = httpx.AccessLogMiddleware(handler)
	handler = httpx.RequestIDMiddleware(handler)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("Starting server on %s", cfg.Addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}

func mustOpenDB(dsn string) *pgxpool.Pool {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("cannot create db pool: %v", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		log.Fatalf("cannot ping database (%s): %v", redactDSN(dsn), err)
	}
	log.Println("database connection OK")
	return pool
}

func redactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.Index(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}
