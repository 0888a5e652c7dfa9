// Package routing answers shortest-path queries between named stations.
package routing

import (
	"errors"
	"strings"

	"github.com/jengzang/metro-live-backend-go/internal/models"
	"github.com/jengzang/metro-live-backend-go/internal/network"
)

// ErrStationNotFound is returned when a name does not match any station
var ErrStationNotFound = errors.New("station not found")

// Result is a resolved route between two stations
type Result struct {
	From       models.Station
	To         models.Station
	StationIDs []string
	Names      []string
	Distance   float64
}

// Router resolves station names and runs the path search
type Router struct {
	network *network.Network
	byName  map[string]models.Station
	names   map[string]string
}

// NewRouter indexes stations by lower-cased name. When two stations share a
// name the first one listed wins.
func NewRouter(stations []models.Station, n *network.Network) *Router {
	r := &Router{
		network: n,
		byName:  make(map[string]models.Station, len(stations)),
		names:   make(map[string]string, len(stations)),
	}
	for _, s := range stations {
		key := strings.ToLower(s.Name)
		if _, ok := r.byName[key]; !ok {
			r.byName[key] = s
		}
		if _, ok := r.names[s.StationID]; !ok {
			r.names[s.StationID] = s.Name
		}
	}
	return r
}

// Resolve finds a station by case-insensitive exact name
func (r *Router) Resolve(name string) (models.Station, bool) {
	s, ok := r.byName[strings.ToLower(strings.TrimSpace(name))]
	return s, ok
}

// Route returns the shortest path between two station names
func (r *Router) Route(fromName, toName string) (*Result, error) {
	from, ok := r.Resolve(fromName)
	if !ok {
		return nil, ErrStationNotFound
	}
	to, ok := r.Resolve(toName)
	if !ok {
		return nil, ErrStationNotFound
	}

	path, err := ShortestPath(r.network, from.StationID, to.StationID)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(path.StationIDs))
	for i, id := range path.StationIDs {
		if name, ok := r.names[id]; ok {
			names[i] = name
		} else {
			names[i] = id
		}
	}

	return &Result{
		From:       from,
		To:         to,
		StationIDs: path.StationIDs,
		Names:      names,
		Distance:   path.Distance,
	}, nil
}
