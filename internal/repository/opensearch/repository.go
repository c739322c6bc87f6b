package opensearch

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/opensearch-project/opensearch-go/v2"
	"github.com/opensearch-project/opensearch-go/v2/opensearchapi"

	"github.com/kingrain94/school-tenancy-api/internal/config"
	"github.com/kingrain94/school-tenancy-api/internal/domain"
	"github.com/kingrain94/school-tenancy-api/internal/repository"
)

type securityEventRepository struct {
	client *opensearch.Client
	config *config.OpenSearchConfig

	mu      sync.Mutex
	indices map[string]struct{}
}

func NewRepository(client *opensearch.Client, config *config.OpenSearchConfig) repository.OpenSearchRepository {
	return &securityEventRepository{
		client:  client,
		config:  config,
		indices: make(map[string]struct{}),
	}
}

func eventTime(e *domain.SecurityEvent) time.Time {
	if e.OccurredAt.IsZero() {
		return time.Now()
	}
	return e.OccurredAt
}

func (r *securityEventRepository) Index(ctx context.Context, event *domain.SecurityEvent) error {
	indexName := r.config.GetIndexName(eventTime(event))
	if err := r.ensureIndex(ctx, indexName); err != nil {
		return fmt.Errorf("failed to ensure index exists: %w", err)
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	req := opensearchapi.IndexRequest{
		Index:      indexName,
		DocumentID: event.ID,
		Body:       strings.NewReader(string(data)),
	}

	res, err := req.Do(ctx, r.client)
	if err != nil {
		return fmt.Errorf("failed to index document: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error indexing document: %s", res.String())
	}
	return nil
}

func (r *securityEventRepository) BulkIndex(ctx context.Context, events []domain.SecurityEvent) error {
	if len(events) == 0 {
		return nil
	}

	body, indices, err := buildBulkBody(r.config, events)
	if err != nil {
		return err
	}
	for _, indexName := range indices {
		if err := r.ensureIndex(ctx, indexName); err != nil {
			return fmt.Errorf("failed to ensure index %s exists: %w", indexName, err)
		}
	}

	req := opensearchapi.BulkRequest{Body: strings.NewReader(body)}
	res, err := req.Do(ctx, r.client)
	if err != nil {
		return fmt.Errorf("failed to execute bulk request: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("bulk request failed: %s", res.String())
	}
	return nil
}

// buildBulkBody renders the NDJSON bulk payload and the distinct target indices.
func buildBulkBody(cfg *config.OpenSearchConfig, events []domain.SecurityEvent) (string, []string, error) {
	var (
		body    strings.Builder
		indices []string
		seen    = make(map[string]bool)
	)
	for i := range events {
		indexName := cfg.GetIndexName(eventTime(&events[i]))
		if !seen[indexName] {
			seen[indexName] = true
			indices = append(indices, indexName)
		}

		action, err := json.Marshal(map[string]any{
			"index": map[string]any{"_index": indexName, "_id": events[i].ID},
		})
		if err != nil {
			return "", nil, fmt.Errorf("failed to marshal action: %w", err)
		}
		doc, err := json.Marshal(events[i])
		if err != nil {
			return "", nil, fmt.Errorf("failed to marshal document: %w", err)
		}
		body.Write(action)
		body.WriteString("\n")
		body.Write(doc)
		body.WriteString("\n")
	}
	return body.String(), indices, nil
}

func (r *securityEventRepository) Search(ctx context.Context, filter *domain.SecurityEventFilter) ([]domain.SecurityEvent, error) {
	queryJSON, err := json.Marshal(buildSearchQuery(filter))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal query: %w", err)
	}

	req := opensearchapi.SearchRequest{
		Index: []string{r.config.GetIndexPattern()},
		Body:  strings.NewReader(string(queryJSON)),
	}

	res, err := req.Do(ctx, r.client)
	if err != nil {
		return nil, fmt.Errorf("failed to execute search: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		if res.StatusCode == 404 {
			return []domain.SecurityEvent{}, nil
		}
		return nil, fmt.Errorf("search request failed: %s", res.String())
	}

	var searchResult struct {
		Hits struct {
			Hits []struct {
				Source domain.SecurityEvent `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&searchResult); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	events := make([]domain.SecurityEvent, 0, len(searchResult.Hits.Hits))
	for _, hit := range searchResult.Hits.Hits {
		events = append(events, hit.Source)
	}
	return events, nil
}

// buildSearchQuery constructs the OpenSearch query based on the filter
func buildSearchQuery(filter *domain.SecurityEventFilter) map[string]any {
	must := make([]map[string]any, 0)

	if filter.Kind != "" {
		must = append(must, termQuery("kind", string(filter.Kind)))
	}
	if filter.PrincipalID != "" {
		must = append(must, termQuery("principal_id", filter.PrincipalID))
	}
	if filter.PrincipalTenantID != 0 {
		must = append(must, termQuery("principal_tenant_id", filter.PrincipalTenantID))
	}
	if filter.RequestedTenantID != 0 {
		must = append(must, termQuery("requested_tenant_id", filter.RequestedTenantID))
	}
	if filter.SourceIP != "" {
		must = append(must, termQuery("source_ip", filter.SourceIP))
	}
	if !filter.StartTime.IsZero() || !filter.EndTime.IsZero() {
		timeRange := make(map[string]any)
		if !filter.StartTime.IsZero() {
			timeRange["gte"] = filter.StartTime
		}
		if !filter.EndTime.IsZero() {
			timeRange["lte"] = filter.EndTime
		}
		must = append(must, map[string]any{"range": map[string]any{"occurred_at": timeRange}})
	}

	query := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{"must": must},
		},
		"sort": []map[string]any{
			{"occurred_at": map[string]any{"order": "desc"}},
		},
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		query["from"] = (filter.Page - 1) * filter.PageSize
		query["size"] = filter.PageSize
	}
	return query
}

func termQuery(field string, value any) map[string]any {
	return map[string]any{"term": map[string]any{field: value}}
}

const indexMapping = `{
	"mappings": {
		"properties": {
			"id": { "type": "keyword" },
			"kind": { "type": "keyword" },
			"principal_id": { "type": "keyword" },
			"principal_tenant_id": { "type": "long" },
			"requested_tenant_id": { "type": "long" },
			"requested_tenant_code": { "type": "keyword" },
			"source_ip": { "type": "keyword" },
			"method": { "type": "keyword" },
			"url": { "type": "text" },
			"user_agent": { "type": "text" },
			"request_id": { "type": "keyword" },
			"occurred_at": { "type": "date" },
			"created_at": { "type": "date" }
		}
	},
	"settings": {
		"index": {
			"number_of_shards": 1,
			"number_of_replicas": 1,
			"refresh_interval": "1s"
		}
	}
}`

// ensureIndex creates indexName with the security event mapping unless it
// exists. Known indices are remembered to skip the round trip.
func (r *securityEventRepository) ensureIndex(ctx context.Context, indexName string) error {
	r.mu.Lock()
	_, known := r.indices[indexName]
	r.mu.Unlock()
	if known {
		return nil
	}

	exists := opensearchapi.IndicesExistsRequest{Index: []string{indexName}}
	res, err := exists.Do(ctx, r.client)
	if err != nil {
		return fmt.Errorf("failed to check index existence: %w", err)
	}
	res.Body.Close()

	if res.StatusCode != 200 {
		create := opensearchapi.IndicesCreateRequest{
			Index: indexName,
			Body:  strings.NewReader(indexMapping),
		}
		res, err = create.Do(ctx, r.client)
		if err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
		defer res.Body.Close()

		// 400 resource_already_exists_exception means another worker won the race.
		if res.IsError() && !strings.Contains(res.String(), "resource_already_exists_exception") {
			return fmt.Errorf("error creating index: %s", res.String())
		}
	}

	r.mu.Lock()
	r.indices[indexName] = struct{}{}
	r.mu.Unlock()
	return nil
}
