package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jerkwad-backend/internal/config"
	"jerkwad-backend/internal/handlers"
	"jerkwad-backend/internal/logging"
	"jerkwad-backend/internal/router"
	"jerkwad-backend/internal/services"
	"jerkwad-backend/internal/websocket"
)

func main() {
	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()

	logFile, err := logging.Setup(cfg.LogFile, cfg.LogMaxSizeMB)
	if err != nil {
		log.Printf("✗ Log file disabled: %v", err)
	}
	defer logFile.Close()

	log.Printf("🚀 Starting Jerkwad AI (%s)...", cfg.Env)
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize Gemini Client ────
	genCfg := services.DefaultGenerationConfig()

	var generator services.Generator
	if cfg.GeminiAPIKey == "" {
		log.Println("✗ GEMINI_API_KEY is not set; chat requests will fail until it is configured")
	} else {
		generator, err = services.NewGenerator(context.Background(), cfg.GeminiAPIKey, cfg.GeminiResponseMode)
		if err != nil {
			log.Fatalf("✗ Gemini client initialization failed: %v", err)
		}
		if c, ok := generator.(io.Closer); ok {
			defer c.Close()
		}
		log.Printf("✓ Gemini client initialized (model %s, %s mode)", genCfg.Model, cfg.GeminiResponseMode)
	}

	chatService := services.NewChatService(genCfg, cfg.GeminiAPIKey, generator)

	// ──── Step 3: Initialize Handlers ────
	chatHandler := handlers.NewChatHandler(chatService)
	wsHub := websocket.NewHub(chatService)

	// ──── Step 4: Start HTTP Server ────
	r := router.New(chatHandler, wsHub, cfg.FrontendURL)

	// No WriteTimeout: a reply takes as long as the upstream model does.
	server := &http.Server{
		Addr:        fmt.Sprintf(":%s", cfg.Port),
		Handler:     r,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		wsHub.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ Jerkwad AI ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api/chat", cfg.Port)
	log.Printf("  WS:  ws://localhost:%s/api/chat/ws", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
