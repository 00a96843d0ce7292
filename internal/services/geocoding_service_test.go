package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wanderai/internal/models/plan_models"
)

func TestLookupReturnsFirstCandidate(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Paris", r.URL.Query().Get("q"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"lat":"48.8566","lon":"2.3522"},{"lat":"1.0","lon":"1.0"}]`))
	}))
	defer server.Close()

	geocoder := NewNominatimGeocoder(server.URL)

	point, ok := geocoder.Lookup(context.Background(), "Paris")
	require.True(t, ok)
	assert.Equal(t, plan_models.GeoPoint{Lat: 48.8566, Lng: 2.3522}, point)
	assert.Equal(t, 1, requests)
}

func TestLookupCachesSuccessfulResults(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		_, _ = w.Write([]byte(`[{"lat":"35.6762","lon":"139.6503"}]`))
	}))
	defer server.Close()

	geocoder := NewNominatimGeocoder(server.URL)

	_, ok := geocoder.Lookup(context.Background(), "Tokyo")
	require.True(t, ok)
	_, ok = geocoder.Lookup(context.Background(), "Tokyo")
	require.True(t, ok)

	assert.Equal(t, 1, requests)
}

func TestLookupFailsSilently(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"no candidates", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[]`))
		}},
		{"garbage body", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		}},
		{"unparseable coordinates", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[{"lat":"north","lon":"west"}]`))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			geocoder := NewNominatimGeocoder(server.URL)
			_, ok := geocoder.Lookup(context.Background(), "Atlantis")
			assert.False(t, ok)
		})
	}
}

func TestLookupEmptyPlace(t *testing.T) {
	geocoder := NewNominatimGeocoder("http://127.0.0.1:0")
	_, ok := geocoder.Lookup(context.Background(), "")
	assert.False(t, ok)
}

func TestLookupUnreachableHost(t *testing.T) {
	geocoder := NewNominatimGeocoder("http://127.0.0.1:1")
	_, ok := geocoder.Lookup(context.Background(), "Paris")
	assert.False(t, ok)
}
