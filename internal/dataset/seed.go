package dataset

import (
	"context"
	"fmt"

	"github.com/jengzang/metro-live-backend-go/internal/models"
	"github.com/jengzang/metro-live-backend-go/internal/network"
)

// NetworkWriter replaces the stored station network
type NetworkWriter interface {
	ReplaceNetwork(ctx context.Context, stations []models.Station, edges []models.Edge) error
}

// SeedResult reports what was written
type SeedResult struct {
	Stations int
	Edges    int
	Nodes    int
}

// Seed loads dir, checks the network builds cleanly and writes it through w
func Seed(ctx context.Context, dir string, w NetworkWriter) (*SeedResult, error) {
	stations, edges, err := LoadDir(dir)
	if err != nil {
		return nil, err
	}

	n, err := network.Build(stations, edges)
	if err != nil {
		return nil, fmt.Errorf("refusing to seed %s: %w", dir, err)
	}

	if err := w.ReplaceNetwork(ctx, stations, edges); err != nil {
		return nil, err
	}

	return &SeedResult{Stations: len(stations), Edges: len(edges), Nodes: n.Len()}, nil
}
