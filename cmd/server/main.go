package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"

	"github.com/Adarshn09/YoutubeDownloder1/config"
	"github.com/Adarshn09/YoutubeDownloder1/controller"
	"github.com/Adarshn09/YoutubeDownloder1/router"
	"github.com/Adarshn09/YoutubeDownloder1/services"
	"github.com/Adarshn09/YoutubeDownloder1/storage"
	util "github.com/Adarshn09/YoutubeDownloder1/utils"
	ytdlp "github.com/Adarshn09/YoutubeDownloder1/yt-dlp"
)

func main() {
	cfg := config.Load()

	store, err := storage.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("[Server] Failed to open database: %v", err)
	}
	defer store.Close()

	engine := ytdlp.NewBinaryEngine(cfg.YtdlpPath)
	orch := ytdlp.NewOrchestrator(engine)
	svc := services.New(store, orch, cfg)
	r := router.SetupRouter(controller.New(svc))

	handler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: false,
	}).Handler(r)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Sweep leaked scratch dirs from crashed requests.
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for {
			if err := util.DeleteFilesOlderThan(cfg.ScratchDir, cfg.CleanupMaxAge); err != nil {
				log.Printf("[Cleanup] Sweep failed: %v", err)
			}
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	go func() {
		log.Printf("[Server] Listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[Server] Listen failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("[Server] Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[Server] Forced shutdown: %v", err)
	}
	log.Println("[Server] Stopped")
}
