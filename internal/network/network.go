// Package network builds the immutable adjacency model the router runs on.
package network

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/jengzang/metro-live-backend-go/internal/models"
)

// ErrDataIntegrity is wrapped by every construction failure
var ErrDataIntegrity = errors.New("network data integrity violation")

// Neighbor is one adjacent station and the weight of the edge to it
type Neighbor struct {
	ID     string
	Weight float64
}

// Network maps station ids to their neighbors. It is read-only once built.
type Network struct {
	adjacency map[string][]Neighbor
	nodes     []string
}

type pairKey struct {
	a, b string
}

func newPairKey(x, y string) pairKey {
	if x > y {
		x, y = y, x
	}
	return pairKey{a: x, b: y}
}

// Build folds stations and edges into a symmetric adjacency model.
// Edges may reference ids absent from stations.
func Build(stations []models.Station, edges []models.Edge) (*Network, error) {
	adjacency := make(map[string][]Neighbor, len(stations))
	for _, s := range stations {
		if s.StationID == "" {
			continue
		}
		if _, ok := adjacency[s.StationID]; !ok {
			adjacency[s.StationID] = nil
		}
	}

	seen := make(map[pairKey]float64, len(edges))
	for i, e := range edges {
		if e.From == "" || e.To == "" {
			return nil, fmt.Errorf("%w: edge %d has an empty endpoint", ErrDataIntegrity, i)
		}
		if e.From == e.To {
			return nil, fmt.Errorf("%w: edge %d is a self-loop on %s", ErrDataIntegrity, i, e.From)
		}
		if math.IsNaN(e.Weight) || math.IsInf(e.Weight, 0) {
			return nil, fmt.Errorf("%w: edge %s-%s has a non-finite weight", ErrDataIntegrity, e.From, e.To)
		}
		if e.Weight < 0 {
			return nil, fmt.Errorf("%w: edge %s-%s has negative weight %v", ErrDataIntegrity, e.From, e.To, e.Weight)
		}

		key := newPairKey(e.From, e.To)
		if w, dup := seen[key]; dup {
			if w != e.Weight {
				return nil, fmt.Errorf("%w: edge %s-%s listed with weights %v and %v", ErrDataIntegrity, e.From, e.To, w, e.Weight)
			}
			continue
		}
		seen[key] = e.Weight

		adjacency[e.From] = append(adjacency[e.From], Neighbor{ID: e.To, Weight: e.Weight})
		adjacency[e.To] = append(adjacency[e.To], Neighbor{ID: e.From, Weight: e.Weight})
	}

	nodes := make([]string, 0, len(adjacency))
	for id, neighbors := range adjacency {
		nodes = append(nodes, id)
		sort.Slice(neighbors, func(i, j int) bool { return neighbors[i].ID < neighbors[j].ID })
	}
	sort.Strings(nodes)

	return &Network{adjacency: adjacency, nodes: nodes}, nil
}

// Has reports whether id is a node of the network
func (n *Network) Has(id string) bool {
	_, ok := n.adjacency[id]
	return ok
}

// Neighbors returns the neighbors of id in ascending id order.
// The returned slice must not be modified.
func (n *Network) Neighbors(id string) []Neighbor {
	return n.adjacency[id]
}

// Nodes returns every node id in ascending order
func (n *Network) Nodes() []string {
	out := make([]string, len(n.nodes))
	copy(out, n.nodes)
	return out
}

// Len returns the node count
func (n *Network) Len() int {
	return len(n.nodes)
}
