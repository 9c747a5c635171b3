// Package geocoder is a thin client for a MapQuest-style forward geocoding
// service. The first candidate of the first result is taken; the rest are
// ignored.
package geocoder

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"bootcamper/config"
	"bootcamper/models"
)

var httpClient = &http.Client{Timeout: 10 * time.Second}

type response struct {
	Results []struct {
		Locations []struct {
			Street     string `json:"street"`
			AdminArea5 string `json:"adminArea5"`
			AdminArea1 string `json:"adminArea1"`
			PostalCode string `json:"postalCode"`
			LatLng     struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"latLng"`
		} `json:"locations"`
	} `json:"results"`
}

// Geocode resolves a free-form place (address or zipcode) into a GeoJSON
// point with locality fields.
func Geocode(ctx context.Context, place string) (models.Location, error) {
	endpoint := config.GetEnv("GEOCODER_URL", "https://www.mapquestapi.com/geocoding/v1/address")
	key := config.GetEnv("GEOCODER_API_KEY", "")

	reqURL := fmt.Sprintf("%s?key=%s&location=%s", endpoint, url.QueryEscape(key), url.QueryEscape(place))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return models.Location{}, err
	}

	res, err := httpClient.Do(req)
	if err != nil {
		return models.Location{}, fmt.Errorf("geocoding request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return models.Location{}, fmt.Errorf("geocoding service returned status %d", res.StatusCode)
	}

	var body response
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return models.Location{}, fmt.Errorf("geocoding response decode failed: %w", err)
	}
	if len(body.Results) == 0 || len(body.Results[0].Locations) == 0 {
		return models.Location{}, fmt.Errorf("no geocoding result for %q", place)
	}

	loc := body.Results[0].Locations[0]
	formatted := loc.Street
	if formatted != "" && loc.AdminArea5 != "" {
		formatted += ", " + loc.AdminArea5
	} else if loc.AdminArea5 != "" {
		formatted = loc.AdminArea5
	}

	return models.Location{
		Type:             "Point",
		Coordinates:      []float64{loc.LatLng.Lng, loc.LatLng.Lat},
		FormattedAddress: formatted,
		Street:           loc.Street,
		City:             loc.AdminArea5,
		Zipcode:          loc.PostalCode,
		Country:          loc.AdminArea1,
	}, nil
}
