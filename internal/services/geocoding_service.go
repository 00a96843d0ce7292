package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"wanderai/internal/models/plan_models"
)

// GeocoderInterface resolves a free-text place name to a coordinate. Only
// the first candidate is used; every failure is silent (ok=false) and is
// never surfaced to the user.
type GeocoderInterface interface {
	Lookup(ctx context.Context, place string) (plan_models.GeoPoint, bool)
}

const nominatimBaseURL = "https://nominatim.openstreetmap.org"

type NominatimGeocoder struct {
	httpClient *http.Client
	baseURL    string
	cache      *gocache.Cache
}

func NewNominatimGeocoder(baseURL string) GeocoderInterface {
	if baseURL == "" {
		baseURL = nominatimBaseURL
	}
	return &NominatimGeocoder{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
		cache:      gocache.New(15*time.Minute, 30*time.Minute),
	}
}

type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

func (g *NominatimGeocoder) Lookup(ctx context.Context, place string) (plan_models.GeoPoint, bool) {
	if place == "" {
		return plan_models.GeoPoint{}, false
	}
	if cached, found := g.cache.Get(place); found {
		return cached.(plan_models.GeoPoint), true
	}

	endpoint := fmt.Sprintf("%s/search?format=json&limit=1&q=%s", g.baseURL, url.QueryEscape(place))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return plan_models.GeoPoint{}, false
	}
	// Nominatim's usage policy requires an identifying agent.
	req.Header.Set("User-Agent", "wanderai/1.0")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		log.Printf("Geocoding lookup failed for %q: %v", place, err)
		return plan_models.GeoPoint{}, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("Geocoding lookup for %q returned status %d", place, resp.StatusCode)
		return plan_models.GeoPoint{}, false
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil || len(results) == 0 {
		return plan_models.GeoPoint{}, false
	}

	lat, errLat := strconv.ParseFloat(results[0].Lat, 64)
	lng, errLng := strconv.ParseFloat(results[0].Lon, 64)
	if errLat != nil || errLng != nil {
		return plan_models.GeoPoint{}, false
	}

	point := plan_models.GeoPoint{Lat: lat, Lng: lng}
	g.cache.Set(place, point, gocache.DefaultExpiration)
	return point, true
}
