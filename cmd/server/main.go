package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jengzang/metro-live-backend-go/internal/api"
	"github.com/jengzang/metro-live-backend-go/internal/config"
	"github.com/jengzang/metro-live-backend-go/internal/database"
	"github.com/jengzang/metro-live-backend-go/internal/dataset"
	"github.com/jengzang/metro-live-backend-go/internal/live"
	"github.com/jengzang/metro-live-backend-go/internal/repository"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化数据库
	dbConfig := database.Config{
		Path: cfg.DBPath,
	}
	if err := database.Init(dbConfig); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.Close()
	db := database.GetDB()

	// 空库时导入站点数据
	if cfg.SeedOnStart {
		seedIfEmpty(db, cfg.DataDir)
	}

	// 初始化路由
	hub := live.NewHub()
	router := api.SetupRouter(cfg, db, hub)

	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // SSE streams stay open
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
}

func seedIfEmpty(db *sql.DB, dir string) {
	ctx := context.Background()
	stations := repository.NewStationRepository(db)

	count, err := stations.CountStations(ctx)
	if err != nil {
		log.Printf("Failed to count stations: %v", err)
		return
	}
	if count > 0 {
		return
	}

	res, err := dataset.Seed(ctx, dir, stations)
	if err != nil {
		log.Printf("Skipping startup seed: %v", err)
		return
	}
	log.Printf("Seeded %d stations and %d edges from %s", res.Stations, res.Edges, dir)
}
