// internal/store/escatalog/catalog.go
package escatalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"wedding-matching-workers/internal/matching"
)

const defaultMaxResults = 1000

var ErrIndexNotFound = errors.New("INDEX_NOT_FOUND")

// VendorCatalog reads vendor profiles from a search index whose documents use the
// VendorProfile JSON shape. Only the category is queried; every other constraint
// belongs to the hard filters.
type VendorCatalog struct {
	client     *elasticsearch.Client
	index      string
	maxResults int
}

func NewVendorCatalog(client *elasticsearch.Client, index string) *VendorCatalog {
	if index == "" {
		index = "vendors"
	}
	return &VendorCatalog{client: client, index: index, maxResults: defaultMaxResults}
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			ID     string          `json:"_id"`
			Source json.RawMessage `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func (c *VendorCatalog) ListVendors(ctx context.Context, category matching.Category) ([]matching.VendorProfile, error) {
	return c.search(ctx, map[string]interface{}{
		"query": map[string]interface{}{
			"term": map[string]interface{}{"category": string(category)},
		},
		"sort": []interface{}{
			map[string]interface{}{"id": "asc"},
		},
	}, c.maxResults)
}

func (c *VendorCatalog) GetVendorsByIDs(ctx context.Context, ids []string) ([]matching.VendorProfile, error) {
	if len(ids) == 0 {
		return []matching.VendorProfile{}, nil
	}
	return c.search(ctx, map[string]interface{}{
		"query": map[string]interface{}{
			"ids": map[string]interface{}{"values": ids},
		},
	}, len(ids))
}

func (c *VendorCatalog) search(ctx context.Context, body map[string]interface{}, size int) ([]matching.VendorProfile, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode vendor query: %w", err)
	}

	req := esapi.SearchRequest{
		Index: []string{c.index},
		Body:  bytes.NewReader(payload),
		Size:  &size,
	}
	res, err := req.Do(ctx, c.client)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", c.index, err)
	}
	defer res.Body.Close()

	if res.StatusCode == 404 {
		return nil, fmt.Errorf("%w: %s", ErrIndexNotFound, c.index)
	}
	if res.IsError() {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return nil, fmt.Errorf("search %s: %s: %s", c.index, res.Status(), bytes.TrimSpace(msg))
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	vendors := make([]matching.VendorProfile, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		var v matching.VendorProfile
		if err := json.Unmarshal(hit.Source, &v); err != nil {
			return nil, fmt.Errorf("decode vendor %s: %w", hit.ID, err)
		}
		if v.ID == "" {
			v.ID = hit.ID
		}
		vendors = append(vendors, v)
	}
	return vendors, nil
}
