package main

import (
	"context"
	"flag"
	"log"

	"github.com/jengzang/metro-live-backend-go/internal/config"
	"github.com/jengzang/metro-live-backend-go/internal/database"
	"github.com/jengzang/metro-live-backend-go/internal/dataset"
	"github.com/jengzang/metro-live-backend-go/internal/repository"
)

func main() {
	cfg := config.Load()

	dataDir := flag.String("data", cfg.DataDir, "directory holding stations.json and edges.json")
	dbPath := flag.String("db", cfg.DBPath, "SQLite database path")
	flag.Parse()

	conn, err := database.Open(database.Config{Path: *dbPath})
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}
	defer conn.Close()

	res, err := dataset.Seed(context.Background(), *dataDir, repository.NewStationRepository(conn))
	if err != nil {
		log.Fatal("Failed to seed network:", err)
	}

	log.Printf("Seeded %d stations and %d edges (%d nodes) from %s into %s",
		res.Stations, res.Edges, res.Nodes, *dataDir, *dbPath)
}
