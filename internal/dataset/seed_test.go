package dataset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jengzang/metro-live-backend-go/internal/models"
	"github.com/jengzang/metro-live-backend-go/internal/network"
)

type recordingWriter struct {
	stations []models.Station
	edges    []models.Edge
	calls    int
}

func (w *recordingWriter) ReplaceNetwork(ctx context.Context, stations []models.Station, edges []models.Edge) error {
	w.calls++
	w.stations, w.edges = stations, edges
	return nil
}

func writeDataset(t *testing.T, stations, edges string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, StationsFile), []byte(stations), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, EdgesFile), []byte(edges), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestSeed(t *testing.T) {
	t.Parallel()
	dir := writeDataset(t,
		`[{"stationId": "a", "name": "A"}, {"stationId": "b", "name": "B"}]`,
		`[{"from": "a", "to": "b", "distance": 1.5}, {"from": "b", "to": "c", "travelTime": 2}]`,
	)

	w := &recordingWriter{}
	res, err := Seed(context.Background(), dir, w)
	if err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	if res.Stations != 2 || res.Edges != 2 || res.Nodes != 3 {
		t.Errorf("Seed() = %+v, want 2 stations, 2 edges, 3 nodes", res)
	}
	if w.calls != 1 || len(w.edges) != 2 {
		t.Errorf("writer got %d calls, %d edges", w.calls, len(w.edges))
	}
}

func TestSeedRejectsBrokenNetwork(t *testing.T) {
	t.Parallel()
	dir := writeDataset(t,
		`[{"stationId": "a"}]`,
		`[{"from": "a", "to": "a", "distance": 1}]`,
	)

	w := &recordingWriter{}
	if _, err := Seed(context.Background(), dir, w); !errors.Is(err, network.ErrDataIntegrity) {
		t.Fatalf("Seed() error = %v, want ErrDataIntegrity", err)
	}
	if w.calls != 0 {
		t.Fatal("broken network was written")
	}
}
