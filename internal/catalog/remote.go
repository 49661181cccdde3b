package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/coolfootwear/storefront/internal/entity"
)

// RemoteSource reads products from an external REST collection endpoint. The collection
// may answer with a bare list or with {"allProducts": [...]}; items are fetched at <base>/<id>.
type RemoteSource struct {
	baseURL string
	client  *http.Client
}

func NewRemoteSource(baseURL string, client *http.Client) *RemoteSource {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &RemoteSource{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

func (s *RemoteSource) FindAll(ctx context.Context) ([]entity.Product, error) {
	body, err := s.get(ctx, s.baseURL)
	if err != nil {
		return nil, err
	}
	return decodeCollection(body)
}

func (s *RemoteSource) FindByID(ctx context.Context, id string) (*entity.Product, error) {
	body, err := s.get(ctx, s.baseURL+"/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}
	if body == nil {
		return nil, nil
	}

	var p entity.Product
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("failed to decode product %s: %w", id, err)
	}
	return &p, nil
}

// get returns nil without error on 404.
func (s *RemoteSource) get(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog response: %w", err)
	}
	return body, nil
}

func decodeCollection(body []byte) ([]entity.Product, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var products []entity.Product
		if err := json.Unmarshal(trimmed, &products); err != nil {
			return nil, fmt.Errorf("failed to decode product list: %w", err)
		}
		return products, nil
	}

	var wrapped struct {
		AllProducts []entity.Product `json:"allProducts"`
	}
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return nil, fmt.Errorf("failed to decode product collection: %w", err)
	}
	return wrapped.AllProducts, nil
}
