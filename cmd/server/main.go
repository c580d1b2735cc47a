// Package main is the entry point for the Exam Prep API server.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Shimizu-Technology/exam-prep-api/internal/cache"
	"github.com/Shimizu-Technology/exam-prep-api/internal/catalog"
	"github.com/Shimizu-Technology/exam-prep-api/internal/config"
	"github.com/Shimizu-Technology/exam-prep-api/internal/database"
	"github.com/Shimizu-Technology/exam-prep-api/internal/handlers"
	"github.com/Shimizu-Technology/exam-prep-api/internal/middleware"
	"github.com/Shimizu-Technology/exam-prep-api/internal/router"
	"github.com/Shimizu-Technology/exam-prep-api/internal/services/pdf"
	"github.com/Shimizu-Technology/exam-prep-api/internal/services/youtube"
	"github.com/Shimizu-Technology/exam-prep-api/internal/storage/docstore"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("🚀 Exam Prep API %s starting...", Version)

	// Step 1: Load Configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	log.Printf("📋 Config loaded: port=%s, gin_mode=%s, rate_limit=%d/h", cfg.Port, cfg.GinMode, cfg.DefaultRateLimit)

	os.Setenv("GIN_MODE", cfg.GinMode)

	// Step 2: Connect to Database
	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("✅ Database connected")

	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}

	// Step 3: Document storage and the extraction pipeline
	docs, err := docstore.New(cfg.UploadDir, cfg.ExtractedDir)
	if err != nil {
		log.Fatalf("❌ Failed to prepare document storage: %v", err)
	}
	log.Printf("📂 Uploads staged in %s, records written to %s", cfg.UploadDir, cfg.ExtractedDir)

	recognizer := pdf.NewTesseractRecognizer(cfg.TesseractPath, cfg.OCRLanguage)
	pipeline := pdf.NewPipeline(
		pdf.NewTextLayerExtractor(),
		pdf.NewOCRExtractor(pdf.NewFitzRasterizer(), recognizer),
	)
	if recognizer.Available() {
		log.Printf("✅ OCR enabled (tesseract: %s, lang: %s)", cfg.TesseractPath, cfg.OCRLanguage)
	} else {
		log.Println("⚠️  Tesseract not found, scanned PDFs will fail (set TESSERACT_PATH to enable OCR)")
	}

	// Step 4: Curated catalog and YouTube recommendations
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		log.Fatalf("❌ Failed to load catalog: %v", err)
	}
	log.Printf("📚 Catalog loaded: %d topics", len(cat.Topics))

	ctx := context.Background()
	videos, err := youtube.New(ctx, youtube.Config{
		APIKey:            cfg.YouTubeAPIKey,
		SearchTimeout:     cfg.YouTubeTimeout,
		ChannelTimeout:    cfg.YouTubeChannelTimeout,
		RequestsPerSecond: cfg.YouTubeRPS,
		TrustedChannels:   cat.TrustedChannelIDs(),
		QualityKeywords:   cat.QualityKeywords,
		SearchCache:       cache.NewLRU[string, []youtube.Video](cfg.CacheCapacity, cfg.CacheTTL),
		ChannelCache:      cache.NewLRU[string, float64](cfg.ChannelCacheCapacity, cfg.ChannelCacheTTL),
	})
	if err != nil {
		log.Fatalf("❌ Failed to create YouTube client: %v", err)
	}
	if videos.Configured() {
		log.Println("✅ YouTube Data API configured")
	} else {
		log.Println("⚠️  No YouTube API key (set YOUTUBE_API_KEY), serving fallback recommendations")
	}

	// Step 5: Setup HTTP Router
	rateLimiter := middleware.NewRateLimiter(cfg.DefaultRateLimit)
	defer rateLimiter.Stop()

	h := &handlers.Handler{
		DB:           db,
		Pipeline:     pipeline,
		Documents:    docs,
		YouTube:      videos,
		Catalog:      cat,
		JWTSecret:    cfg.JWTSecret,
		OCRAvailable: recognizer.Available(),
	}
	r := router.Setup(h, rateLimiter, cfg.AllowedOrigins)

	// Step 6: Start the HTTP Server
	// WriteTimeout covers OCR of a large scanned upload.
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("🌐 Server listening on http://localhost:%s", cfg.Port)
		log.Printf("📖 Health check: http://localhost:%s/health", cfg.Port)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Server failed: %v", err)
		}
	}()

	// Step 7: Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quit
	log.Printf("🛑 Received signal %v, shutting down gracefully...", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("⚠️  Server forced to shutdown: %v", err)
	}

	log.Println("👋 Server stopped. Goodbye!")
}
