package geocoder

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mapquestBody = `{
  "results": [
    {
      "locations": [
        {
          "street": "220 King St W",
          "adminArea5": "Toronto",
          "adminArea1": "CA",
          "postalCode": "M5H 1K4",
          "latLng": {"lat": 43.647, "lng": -79.385}
        },
        {
          "street": "ignored second candidate",
          "latLng": {"lat": 0, "lng": 0}
        }
      ]
    }
  ]
}`

func TestGeocodeFirstResult(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("location")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(mapquestBody))
	}))
	defer srv.Close()

	t.Setenv("GEOCODER_URL", srv.URL)
	t.Setenv("GEOCODER_API_KEY", "k")

	loc, err := Geocode(context.Background(), "220 King St W, Toronto")
	require.NoError(t, err)

	assert.Equal(t, "220 King St W, Toronto", gotQuery)
	assert.Equal(t, "Point", loc.Type)
	require.Len(t, loc.Coordinates, 2)
	assert.Equal(t, -79.385, loc.Coordinates[0])
	assert.Equal(t, 43.647, loc.Coordinates[1])
	assert.Equal(t, "Toronto", loc.City)
	assert.Equal(t, "M5H 1K4", loc.Zipcode)
	assert.Equal(t, "CA", loc.Country)
	assert.Equal(t, "220 King St W, Toronto", loc.FormattedAddress)
}

func TestGeocodeNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": []}`))
	}))
	defer srv.Close()

	t.Setenv("GEOCODER_URL", srv.URL)

	_, err := Geocode(context.Background(), "nowhere")
	assert.Error(t, err)
}

func TestGeocodeUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	t.Setenv("GEOCODER_URL", srv.URL)

	_, err := Geocode(context.Background(), "anywhere")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestGeocodeMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	t.Setenv("GEOCODER_URL", srv.URL)

	_, err := Geocode(context.Background(), "anywhere")
	assert.Error(t, err)
}
