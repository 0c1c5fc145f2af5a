// Package vendors talks to the vendors catalog service. The catalog owns
// vendor CRUD; this gateway only reads the slice checkout needs.
package vendors

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"quickbite-orders/internal/domain"
)

// StatusError signals a non-2xx catalog response.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("vendors catalog: unexpected status %d", e.Code)
}

// HTTPGateway is a vendors gateway backed by the catalog's JSON API.
type HTTPGateway struct {
	baseURL string
	client  *http.Client
}

// NewHTTPGateway creates a vendors gateway for the given base URL.
func NewHTTPGateway(baseURL string, client *http.Client) *HTTPGateway {
	if strings.TrimSpace(baseURL) == "" {
		return nil
	}
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	return &HTTPGateway{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

type vendorDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location *struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	} `json:"location"`
}

func (d vendorDTO) toModel() *domain.Vendor {
	v := &domain.Vendor{ID: d.ID, Name: d.Name}
	if d.Location != nil {
		v.Location = &domain.Coordinate{Lat: d.Location.Lat, Lng: d.Location.Lng}
	}
	return v
}

// GetByID fetches a vendor by ID from the catalog. A missing vendor is
// (nil, nil), not an error.
func (g *HTTPGateway) GetByID(ctx context.Context, id string) (*domain.Vendor, error) {
	url := g.baseURL + "/vendors/" + id
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("vendors gateway: build request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("vendors gateway: GetByID: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, nil
	case resp.StatusCode != http.StatusOK:
		return nil, &StatusError{Code: resp.StatusCode}
	}

	var dto vendorDTO
	if err := json.NewDecoder(resp.Body).Decode(&dto); err != nil {
		return nil, fmt.Errorf("vendors gateway: decode vendor %q: %w", id, err)
	}
	return dto.toModel(), nil
}
