package spatial

import (
	"math"
	"testing"

	"github.com/jengzang/metro-live-backend-go/internal/models"
)

func TestStationBounds(t *testing.T) {
	t.Parallel()

	if b := StationBounds(nil); b != nil {
		t.Fatalf("StationBounds(nil) = %+v, want nil", b)
	}

	b := StationBounds([]models.Station{
		{StationID: "kashmere-gate", Longitude: 77.2284, Latitude: 28.6675},
		{StationID: "khan-market", Longitude: 77.2275, Latitude: 28.6003},
		{StationID: "karol-bagh", Longitude: 77.1903, Latitude: 28.6440},
		{StationID: "yamuna-bank", Longitude: 77.2680, Latitude: 28.6231},
	})

	approx := func(got, want float64) bool { return math.Abs(got-want) < 1e-6 }
	if !approx(b.MinLatitude, 28.6003) || !approx(b.MaxLatitude, 28.6675) {
		t.Errorf("latitude range = %v..%v", b.MinLatitude, b.MaxLatitude)
	}
	if !approx(b.MinLongitude, 77.1903) || !approx(b.MaxLongitude, 77.2680) {
		t.Errorf("longitude range = %v..%v", b.MinLongitude, b.MaxLongitude)
	}
	lng, lat := b.Center[0], b.Center[1]
	if lng < b.MinLongitude || lng > b.MaxLongitude || lat < b.MinLatitude || lat > b.MaxLatitude {
		t.Errorf("center %v outside bounds", b.Center)
	}
}
