package opensearch

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/opensearch-project/opensearch-go/v2"
	"github.com/opensearch-project/opensearch-go/v2/opensearchapi"

	"github.com/filippocalippo/vittoria-order-api/internal/config"
	"github.com/filippocalippo/vittoria-order-api/internal/domain"
)

// Repository is the secondary search index over the audit trail. Postgres
// stays the source of truth; the index worker feeds this asynchronously.
type Repository interface {
	Index(ctx context.Context, entry *domain.AuditLogEntry) error
	BulkIndex(ctx context.Context, entries []domain.AuditLogEntry) error
	Search(ctx context.Context, filter *domain.AuditLogFilter) ([]domain.AuditLogEntry, error)
	CreateIndex(ctx context.Context, tenantID string, t time.Time) error
	DeleteIndex(ctx context.Context, tenantID string) error
}

type repository struct {
	client *opensearch.Client
	config *config.OpenSearchConfig
}

func NewRepository(client *opensearch.Client, config *config.OpenSearchConfig) Repository {
	return &repository{
		client: client,
		config: config,
	}
}

func (r *repository) Index(ctx context.Context, entry *domain.AuditLogEntry) error {
	indexTime := time.Now()
	if !entry.Timestamp.IsZero() {
		indexTime = entry.Timestamp
	}
	indexName := r.config.GetIndexName(entry.TenantID, indexTime)

	if err := r.CreateIndex(ctx, entry.TenantID, indexTime); err != nil {
		return fmt.Errorf("failed to ensure index exists: %w", err)
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal entry: %w", err)
	}

	req := opensearchapi.IndexRequest{
		Index:      indexName,
		DocumentID: entry.ID,
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

func (r *repository) BulkIndex(ctx context.Context, entries []domain.AuditLogEntry) error {
	if len(entries) == 0 {
		return nil
	}

	// Group entries by their daily index.
	groups := make(map[string][]domain.AuditLogEntry)
	for _, entry := range entries {
		indexTime := time.Now()
		if !entry.Timestamp.IsZero() {
			indexTime = entry.Timestamp
		}
		indexName := r.config.GetIndexName(entry.TenantID, indexTime)
		groups[indexName] = append(groups[indexName], entry)
	}

	for indexName, groupEntries := range groups {
		if err := r.bulkIndexGroup(ctx, indexName, groupEntries); err != nil {
			return fmt.Errorf("failed to bulk index group for index %s: %w", indexName, err)
		}
	}

	return nil
}

func (r *repository) bulkIndexGroup(ctx context.Context, indexName string, entries []domain.AuditLogEntry) error {
	if len(entries) > 0 {
		indexTime := time.Now()
		if !entries[0].Timestamp.IsZero() {
			indexTime = entries[0].Timestamp
		}
		if err := r.CreateIndex(ctx, entries[0].TenantID, indexTime); err != nil {
			return fmt.Errorf("failed to ensure index exists: %w", err)
		}
	}

	var bulkBody strings.Builder
	for _, entry := range entries {
		action := map[string]any{
			"index": map[string]any{
				"_index": indexName,
				"_id":    entry.ID,
			},
		}
		actionLine, err := json.Marshal(action)
		if err != nil {
			return fmt.Errorf("failed to marshal action: %w", err)
		}
		bulkBody.Write(actionLine)
		bulkBody.WriteString("\n")

		docLine, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("failed to marshal document: %w", err)
		}
		bulkBody.Write(docLine)
		bulkBody.WriteString("\n")
	}

	req := opensearchapi.BulkRequest{
		Body: strings.NewReader(bulkBody.String()),
	}

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

func (r *repository) Search(ctx context.Context, filter *domain.AuditLogFilter) ([]domain.AuditLogEntry, error) {
	if filter.TenantID == "" {
		return nil, fmt.Errorf("tenant_id is required for audit search")
	}

	query := r.buildSearchQuery(filter)

	queryJSON, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal query: %w", err)
	}

	req := opensearchapi.SearchRequest{
		Index: []string{r.config.GetIndexPattern(filter.TenantID)},
		Body:  strings.NewReader(string(queryJSON)),
	}

	res, err := req.Do(ctx, r.client)
	if err != nil {
		return nil, fmt.Errorf("failed to execute search: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		if res.StatusCode == 404 {
			return []domain.AuditLogEntry{}, nil
		}
		return nil, fmt.Errorf("search request failed: %s", res.String())
	}

	var searchResult struct {
		Hits struct {
			Hits []struct {
				Source domain.AuditLogEntry `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}

	if err := json.NewDecoder(res.Body).Decode(&searchResult); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	var entries []domain.AuditLogEntry
	for _, hit := range searchResult.Hits.Hits {
		entries = append(entries, hit.Source)
	}

	return entries, nil
}

func (r *repository) buildSearchQuery(filter *domain.AuditLogFilter) map[string]any {
	must := make([]map[string]any, 0)

	exactMatches := map[string]string{
		"actor_id":   filter.ActorID,
		"action":     string(filter.Action),
		"table_name": filter.Table,
		"record_id":  filter.RecordID,
	}
	for field, value := range exactMatches {
		if value != "" {
			must = append(must, createTermQuery(field, value))
		}
	}

	if !filter.StartTime.IsZero() || !filter.EndTime.IsZero() {
		must = append(must, createTimeRangeQuery(filter.StartTime, filter.EndTime))
	}

	query := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": must,
			},
		},
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		query["from"] = (filter.Page - 1) * filter.PageSize
		query["size"] = filter.PageSize
	}

	query["sort"] = []map[string]any{
		{
			"timestamp": map[string]any{
				"order": "desc",
			},
		},
	}

	return query
}

func createTermQuery(field, value string) map[string]any {
	return map[string]any{
		"term": map[string]any{
			field: value,
		},
	}
}

func createTimeRangeQuery(startTime, endTime time.Time) map[string]any {
	timeRange := make(map[string]any)
	if !startTime.IsZero() {
		timeRange["gte"] = startTime
	}
	if !endTime.IsZero() {
		timeRange["lte"] = endTime
	}
	return map[string]any{
		"range": map[string]any{
			"timestamp": timeRange,
		},
	}
}

func (r *repository) getIndexMapping() string {
	return `{
		"mappings": {
			"properties": {
				"id": { "type": "keyword" },
				"tenant_id": { "type": "keyword" },
				"actor_id": { "type": "keyword" },
				"action": { "type": "keyword" },
				"table_name": { "type": "keyword" },
				"record_id": { "type": "keyword" },
				"before_state": {
					"type": "object",
					"dynamic": true
				},
				"after_state": {
					"type": "object",
					"dynamic": true
				},
				"timestamp": { "type": "date" }
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
}

func (r *repository) CreateIndex(ctx context.Context, tenantID string, t time.Time) error {
	indexName := r.config.GetIndexName(tenantID, t)

	exists := opensearchapi.IndicesExistsRequest{
		Index: []string{indexName},
	}
	res, err := exists.Do(ctx, r.client)
	if err != nil {
		return fmt.Errorf("failed to check index existence: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == 200 {
		return nil
	}

	create := opensearchapi.IndicesCreateRequest{
		Index: indexName,
		Body:  strings.NewReader(r.getIndexMapping()),
	}

	res, err = create.Do(ctx, r.client)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error creating index: %s", res.String())
	}

	return nil
}

func (r *repository) DeleteIndex(ctx context.Context, tenantID string) error {
	indexName := r.config.GetIndexPattern(tenantID)

	delete := opensearchapi.IndicesDeleteRequest{
		Index: []string{indexName},
	}

	res, err := delete.Do(ctx, r.client)
	if err != nil {
		return fmt.Errorf("failed to delete index: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error deleting index: %s", res.String())
	}

	return nil
}
