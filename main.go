package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"angkot/internal/bot"
	intconfig "angkot/internal/config"
	router "angkot/internal/http"
	"angkot/internal/repositories"
	"angkot/internal/services"
	"angkot/internal/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	loc, err := time.LoadLocation(env.Timezone)
	if err != nil {
		log.Fatalf("Zona waktu tidak valid %q: %v", env.Timezone, err)
	}
	utils.SetLocation(loc)

	db := intconfig.ConnectDB(env.DBDSN)
	defer intconfig.CloseDB()

	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), 30*time.Second)
	if err := repositories.Migrate(migrateCtx, db); err != nil {
		cancelMigrate()
		log.Fatalf("Migrasi database gagal: %v", err)
	}
	cancelMigrate()

	store := repositories.LedgerRepository{DB: db}
	trips := services.NewTripService(store)
	reports := services.ReportService{Store: store}
	registry := services.RegistryService{Store: store}

	botCtx, stopBot := context.WithCancel(context.Background())
	defer stopBot()

	if env.TelegramToken != "" {
		tg, err := bot.New(env.TelegramToken, trips, reports, registry)
		if err != nil {
			log.Fatalf("Gagal menjalankan bot telegram: %v", err)
		}
		go tg.Run(botCtx)
	} else {
		log.Println("TELEGRAM_TOKEN kosong, bot telegram tidak dijalankan")
	}

	r := router.NewRouter(env)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server berjalan di http://localhost%s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Gagal menjalankan server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Mematikan server...")
	stopBot()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Shutdown server gagal: %v", err)
	}

	log.Println("Server berhenti dengan aman.")
}
