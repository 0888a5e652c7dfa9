package routing

import (
	"container/heap"
	"errors"

	"github.com/jengzang/metro-live-backend-go/internal/network"
)

// ErrNoRoute is returned when the destination cannot be reached
var ErrNoRoute = errors.New("no route found")

// Path is a minimum-weight path expressed in station ids
type Path struct {
	StationIDs []string
	Distance   float64
}

// ShortestPath runs Dijkstra from origin to destination.
//
// Ties between equal tentative distances settle the lowest station id first,
// and a predecessor is only replaced by a strictly shorter distance, so the
// result is deterministic for a given network.
func ShortestPath(n *network.Network, origin, destination string) (Path, error) {
	if !n.Has(origin) || !n.Has(destination) {
		return Path{}, ErrNoRoute
	}
	if origin == destination {
		return Path{StationIDs: []string{origin}}, nil
	}

	dist := map[string]float64{origin: 0}
	prev := make(map[string]string)
	settled := make(map[string]bool)

	pq := &priorityQueue{}
	heap.Init(pq)
	heap.Push(pq, pqItem{id: origin, dist: 0})

	for pq.Len() > 0 {
		item := heap.Pop(pq).(pqItem)
		if settled[item.id] || item.dist > dist[item.id] {
			continue
		}
		settled[item.id] = true
		if item.id == destination {
			break
		}

		for _, nb := range n.Neighbors(item.id) {
			if settled[nb.ID] {
				continue
			}
			alt := item.dist + nb.Weight
			if old, ok := dist[nb.ID]; !ok || alt < old {
				dist[nb.ID] = alt
				prev[nb.ID] = item.id
				heap.Push(pq, pqItem{id: nb.ID, dist: alt})
			}
		}
	}

	if !settled[destination] {
		return Path{}, ErrNoRoute
	}

	ids, err := reconstructPath(prev, origin, destination, n.Len())
	if err != nil {
		return Path{}, err
	}
	return Path{StationIDs: ids, Distance: dist[destination]}, nil
}

// reconstructPath walks predecessors back from destination. A chain longer than
// maxSteps or one that never reaches origin is treated as unreachable.
func reconstructPath(prev map[string]string, origin, destination string, maxSteps int) ([]string, error) {
	path := []string{destination}
	current := destination
	for steps := 0; current != origin; steps++ {
		if steps >= maxSteps {
			return nil, ErrNoRoute
		}
		p, ok := prev[current]
		if !ok {
			return nil, ErrNoRoute
		}
		path = append(path, p)
		current = p
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}

type pqItem struct {
	id   string
	dist float64
}

type priorityQueue []pqItem

func (pq priorityQueue) Len() int { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}
	return pq[i].id < pq[j].id
}
func (pq priorityQueue) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *priorityQueue) Push(x interface{}) {
	*pq = append(*pq, x.(pqItem))
}

func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[0 : n-1]
	return item
}
