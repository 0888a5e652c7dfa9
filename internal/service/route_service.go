package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jengzang/metro-live-backend-go/internal/models"
	"github.com/jengzang/metro-live-backend-go/internal/network"
	"github.com/jengzang/metro-live-backend-go/internal/routing"
	"github.com/patrickmn/go-cache"
)

const datasetCacheKey = "network"

type dataset struct {
	stations []models.Station
	edges    []models.Edge
}

// RouteService answers shortest-path queries over the stored network
type RouteService struct {
	stations StationStore
	cache    *cache.Cache
}

// NewRouteService creates a route service caching the dataset for ttl
func NewRouteService(stations StationStore, ttl time.Duration) *RouteService {
	return &RouteService{
		stations: stations,
		cache:    cache.New(ttl, 2*ttl),
	}
}

// Invalidate drops the cached dataset
func (s *RouteService) Invalidate() {
	s.cache.Delete(datasetCacheKey)
}

func (s *RouteService) load(ctx context.Context) (*dataset, error) {
	if cached, found := s.cache.Get(datasetCacheKey); found {
		return cached.(*dataset), nil
	}

	stations, err := s.stations.ListStations(ctx)
	if err != nil {
		return nil, err
	}
	edges, err := s.stations.ListEdges(ctx)
	if err != nil {
		return nil, err
	}

	ds := &dataset{stations: stations, edges: edges}
	s.cache.SetDefault(datasetCacheKey, ds)
	return ds, nil
}

// ShortestRoute finds the minimum-distance path between two station names
func (s *RouteService) ShortestRoute(ctx context.Context, req models.RouteRequest) (*models.RouteResponse, error) {
	if req.From == "" || req.To == "" {
		return nil, fmt.Errorf("%w: from and to are required", ErrValidation)
	}

	ds, err := s.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load network: %w", err)
	}

	n, err := network.Build(ds.stations, ds.edges)
	if err != nil {
		return nil, err
	}

	result, err := routing.NewRouter(ds.stations, n).Route(req.From, req.To)
	if err != nil {
		return nil, err
	}

	return &models.RouteResponse{
		From:       result.From.Name,
		To:         result.To.Name,
		Path:       result.Names,
		StationIDs: result.StationIDs,
		Distance:   result.Distance,
	}, nil
}
