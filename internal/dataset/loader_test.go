package dataset

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseStations(t *testing.T) {
	t.Parallel()

	data := []byte(`[
		{"stationId": "rajiv-chowk", "name": "Rajiv Chowk",
		 "coords": {"type": "Point", "coordinates": [77.2197, 28.6328]},
		 "lines": ["blue", "yellow"], "meta": {"entryCount": 12}},
		{"stationId": "patel-chowk", "longitude": 77.214, "latitude": 28.6229, "lines": ["yellow"]}
	]`)

	stations, err := ParseStations(data)
	if err != nil {
		t.Fatalf("ParseStations() error = %v", err)
	}
	if len(stations) != 2 {
		t.Fatalf("len(stations) = %d, want 2", len(stations))
	}
	rc := stations[0]
	if rc.Longitude != 77.2197 || rc.Latitude != 28.6328 || !rc.IsInterchange() || rc.EntryCount != 12 {
		t.Fatalf("rajiv-chowk = %+v", rc)
	}
	if stations[1].Name != "patel-chowk" || stations[1].Latitude != 28.6229 {
		t.Fatalf("patel-chowk = %+v", stations[1])
	}
}

func TestParseStationsRequiresID(t *testing.T) {
	t.Parallel()

	if _, err := ParseStations([]byte(`[{"name": "Nameless"}]`)); err == nil {
		t.Fatal("expected error for station without stationId")
	}
}

func TestParseEdges(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		data    string
		want    float64
		wantErr bool
	}{
		{name: "distance", data: `[{"from":"a","to":"b","distance":1.5,"line":"blue"}]`, want: 1.5},
		{name: "travel time", data: `[{"from":"a","to":"b","travelTime":3}]`, want: 3},
		{name: "weight", data: `[{"from":"a","to":"b","weight":0}]`, want: 0},
		{name: "missing weight", data: `[{"from":"a","to":"b"}]`, wantErr: true},
		{name: "bad json", data: `{`, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			edges, err := ParseEdges([]byte(tt.data))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseEdges() error = %v", err)
			}
			if len(edges) != 1 || edges[0].Weight != tt.want {
				t.Fatalf("edges = %+v, want weight %v", edges, tt.want)
			}
		})
	}
}

func TestLoadDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	stations := `[{"stationId":"a","name":"A"},{"stationId":"b","name":"B"}]`
	edges := `[{"from":"a","to":"b","distance":2}]`
	if err := os.WriteFile(filepath.Join(dir, StationsFile), []byte(stations), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, EdgesFile), []byte(edges), 0o644); err != nil {
		t.Fatal(err)
	}

	s, e, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}
	if len(s) != 2 || len(e) != 1 {
		t.Fatalf("LoadDir() = %d stations, %d edges", len(s), len(e))
	}

	if _, _, err := LoadDir(t.TempDir()); err == nil {
		t.Fatal("expected error for empty directory")
	}
}
