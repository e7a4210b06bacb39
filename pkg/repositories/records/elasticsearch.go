package records

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/fadedpez/dugout/internal/logging"
	"github.com/fadedpez/dugout/pkg/entities"
)

const (
	battingMapping = `{
		"mappings": {
			"properties": {
				"id": { "type": "keyword" },
				"player": { "type": "keyword" },
				"opponent": { "type": "keyword" },
				"date": { "type": "keyword" },
				"month": { "type": "keyword" },
				"pa": { "type": "keyword" },
				"ab": { "type": "keyword" },
				"result": { "type": "keyword" },
				"result_label": { "type": "keyword" },
				"hit_type": { "type": "keyword" },
				"rbi": { "type": "keyword" },
				"batted_direction": { "type": "text" },
				"run": { "type": "keyword" },
				"sb": { "type": "keyword" },
				"position": { "type": "keyword" },
				"error": { "type": "keyword" },
				"indexed_at": { "type": "date" }
			}
		}
	}`

	pitchingMapping = `{
		"mappings": {
			"properties": {
				"id": { "type": "keyword" },
				"pitcher": { "type": "keyword" },
				"opponent": { "type": "keyword" },
				"date": { "type": "keyword" },
				"month": { "type": "keyword" },
				"innings": { "type": "keyword" },
				"indexed_at": { "type": "date" }
			}
		}
	}`
)

// ElasticsearchConfig holds configuration options for the Elasticsearch mirror
type ElasticsearchConfig struct {
	URL         string
	Username    string
	Password    string
	IndexPrefix string
	BatchSize   int // Documents per bulk request during a reindex
	Transport   http.RoundTripper
}

// DefaultElasticsearchConfig returns a default configuration for Elasticsearch
func DefaultElasticsearchConfig() *ElasticsearchConfig {
	return &ElasticsearchConfig{
		URL:         "http://localhost:9200",
		IndexPrefix: "dugout",
		BatchSize:   500,
	}
}

// ElasticsearchRepository mirrors the record log into Elasticsearch. The
// base repository stays the source of truth: every write goes there first
// and every read is served from it. A failed mirror write is logged and
// left for the next Reindex to repair.
type ElasticsearchRepository struct {
	baseRepo    Repository
	client      *elasticsearch.Client
	config      *ElasticsearchConfig
	indexPrefix string
	log         *logging.Logger
	now         func() time.Time
}

// NewElasticsearchRepository creates the mirror and makes sure its indices exist
func NewElasticsearchRepository(ctx context.Context, baseRepo Repository, config *ElasticsearchConfig) (*ElasticsearchRepository, error) {
	cfg := elasticsearch.Config{
		Addresses: []string{config.URL},
		Transport: config.Transport,
	}

	// Add authentication if provided
	if config.Username != "" && config.Password != "" {
		cfg.Username = config.Username
		cfg.Password = config.Password
	}

	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("error creating Elasticsearch client: %w", err)
	}

	if config.IndexPrefix == "" {
		config.IndexPrefix = "dugout"
	}
	if config.BatchSize <= 0 {
		config.BatchSize = 500
	}

	repo := &ElasticsearchRepository{
		baseRepo:    baseRepo,
		client:      client,
		config:      config,
		indexPrefix: config.IndexPrefix,
		log:         logging.Default,
		now:         time.Now,
	}

	if err := repo.initIndices(ctx); err != nil {
		return nil, fmt.Errorf("error initializing indices: %w", err)
	}

	return repo, nil
}

// BattingIndex returns the name of the plate appearance index
func (r *ElasticsearchRepository) BattingIndex() string {
	return r.indexPrefix + "_batting"
}

// PitchingIndex returns the name of the outing index
func (r *ElasticsearchRepository) PitchingIndex() string {
	return r.indexPrefix + "_pitching"
}

// initIndices creates the necessary indices if they don't exist
func (r *ElasticsearchRepository) initIndices(ctx context.Context) error {
	if err := r.ensureIndex(ctx, r.BattingIndex(), battingMapping); err != nil {
		return err
	}
	return r.ensureIndex(ctx, r.PitchingIndex(), pitchingMapping)
}

func (r *ElasticsearchRepository) ensureIndex(ctx context.Context, index, mapping string) error {
	res, err := r.client.Indices.Exists([]string{index}, r.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("error checking if index %s exists: %w", index, err)
	}
	res.Body.Close()

	if res.StatusCode != http.StatusNotFound {
		return nil
	}

	req := esapi.IndicesCreateRequest{
		Index: index,
		Body:  bytes.NewReader([]byte(mapping)),
	}
	res, err = req.Do(ctx, r.client)
	if err != nil {
		return fmt.Errorf("error creating index %s: %w", index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error creating index %s: %s", index, res.String())
	}
	return nil
}

// AppendBatting saves to the base repository, then indexes the record
func (r *ElasticsearchRepository) AppendBatting(ctx context.Context, rec *entities.BattingRecord) error {
	if err := r.baseRepo.AppendBatting(ctx, rec); err != nil {
		return fmt.Errorf("error saving batting record to base repository: %w", err)
	}
	r.mirror(r.indexDoc(ctx, r.BattingIndex(), rec.ID, toBattingDoc(rec, r.now())))
	return nil
}

// UpdateBatting saves to the base repository, then reindexes the record
func (r *ElasticsearchRepository) UpdateBatting(ctx context.Context, rec *entities.BattingRecord) error {
	if err := r.baseRepo.UpdateBatting(ctx, rec); err != nil {
		return err
	}
	r.mirror(r.indexDoc(ctx, r.BattingIndex(), rec.ID, toBattingDoc(rec, r.now())))
	return nil
}

// DeleteBatting deletes from the base repository, then from the index
func (r *ElasticsearchRepository) DeleteBatting(ctx context.Context, id string) error {
	if err := r.baseRepo.DeleteBatting(ctx, id); err != nil {
		return err
	}
	r.mirror(r.deleteDoc(ctx, r.BattingIndex(), id))
	return nil
}

// ListBatting is served by the base repository
func (r *ElasticsearchRepository) ListBatting(ctx context.Context) ([]*entities.BattingRecord, error) {
	return r.baseRepo.ListBatting(ctx)
}

// ReplaceBatting replaces the base log, then rebuilds the batting index
func (r *ElasticsearchRepository) ReplaceBatting(ctx context.Context, recs []*entities.BattingRecord) error {
	if err := r.baseRepo.ReplaceBatting(ctx, recs); err != nil {
		return err
	}
	r.mirror(r.reindexBatting(ctx, recs))
	return nil
}

// AppendPitching saves to the base repository, then indexes the outing
func (r *ElasticsearchRepository) AppendPitching(ctx context.Context, rec *entities.PitchingRecord) error {
	if err := r.baseRepo.AppendPitching(ctx, rec); err != nil {
		return fmt.Errorf("error saving pitching record to base repository: %w", err)
	}
	r.mirror(r.indexDoc(ctx, r.PitchingIndex(), rec.ID, toPitchingDoc(rec, r.now())))
	return nil
}

// DeletePitching deletes from the base repository, then from the index
func (r *ElasticsearchRepository) DeletePitching(ctx context.Context, id string) error {
	if err := r.baseRepo.DeletePitching(ctx, id); err != nil {
		return err
	}
	r.mirror(r.deleteDoc(ctx, r.PitchingIndex(), id))
	return nil
}

// ListPitching is served by the base repository
func (r *ElasticsearchRepository) ListPitching(ctx context.Context) ([]*entities.PitchingRecord, error) {
	return r.baseRepo.ListPitching(ctx)
}

// ReplacePitching replaces the base log, then rebuilds the pitching index
func (r *ElasticsearchRepository) ReplacePitching(ctx context.Context, recs []*entities.PitchingRecord) error {
	if err := r.baseRepo.ReplacePitching(ctx, recs); err != nil {
		return err
	}
	r.mirror(r.reindexPitching(ctx, recs))
	return nil
}

// GetRoster is served by the base repository
func (r *ElasticsearchRepository) GetRoster(ctx context.Context, kind entities.RosterKind) ([]string, bool, error) {
	return r.baseRepo.GetRoster(ctx, kind)
}

// SaveRoster is stored by the base repository only
func (r *ElasticsearchRepository) SaveRoster(ctx context.Context, kind entities.RosterKind, names []string) error {
	return r.baseRepo.SaveRoster(ctx, kind, names)
}

// Close closes the base repository
func (r *ElasticsearchRepository) Close() error {
	return r.baseRepo.Close()
}

// Reindex rebuilds both indices from the base repository
func (r *ElasticsearchRepository) Reindex(ctx context.Context) error {
	batting, err := r.baseRepo.ListBatting(ctx)
	if err != nil {
		return fmt.Errorf("error listing batting records: %w", err)
	}
	if err := r.reindexBatting(ctx, batting); err != nil {
		return err
	}

	pitching, err := r.baseRepo.ListPitching(ctx)
	if err != nil {
		return fmt.Errorf("error listing pitching records: %w", err)
	}
	if err := r.reindexPitching(ctx, pitching); err != nil {
		return err
	}

	r.log.Info("Reindexed %d batting and %d pitching records", len(batting), len(pitching))
	return nil
}

// Count returns the number of documents in an index
func (r *ElasticsearchRepository) Count(ctx context.Context, index string) (int, error) {
	res, err := r.client.Count(
		r.client.Count.WithContext(ctx),
		r.client.Count.WithIndex(index),
	)
	if err != nil {
		return 0, fmt.Errorf("error counting documents: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return 0, fmt.Errorf("error counting documents: %s", res.String())
	}

	var body struct {
		Count int `json:"count"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("error parsing count response: %w", err)
	}
	return body.Count, nil
}

func (r *ElasticsearchRepository) mirror(err error) {
	if err != nil {
		r.log.Warn("Elasticsearch mirror out of sync: %v", err)
	}
}

func (r *ElasticsearchRepository) indexDoc(ctx context.Context, index, id string, doc interface{}) error {
	jsonData, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("error marshaling document: %w", err)
	}

	req := esapi.IndexRequest{
		Index:      index,
		DocumentID: id,
		Body:       bytes.NewReader(jsonData),
	}
	res, err := req.Do(ctx, r.client)
	if err != nil {
		return fmt.Errorf("error indexing document %s: %w", id, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error indexing document %s: %s", id, res.String())
	}
	return nil
}

func (r *ElasticsearchRepository) deleteDoc(ctx context.Context, index, id string) error {
	req := esapi.DeleteRequest{
		Index:      index,
		DocumentID: id,
	}
	res, err := req.Do(ctx, r.client)
	if err != nil {
		return fmt.Errorf("error deleting document %s: %w", id, err)
	}
	defer res.Body.Close()

	// Already gone is fine
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("error deleting document %s: %s", id, res.String())
	}
	return nil
}

func (r *ElasticsearchRepository) clearIndex(ctx context.Context, index string) error {
	res, err := r.client.DeleteByQuery(
		[]string{index},
		bytes.NewReader([]byte(`{"query":{"match_all":{}}}`)),
		r.client.DeleteByQuery.WithContext(ctx),
		r.client.DeleteByQuery.WithRefresh(true),
	)
	if err != nil {
		return fmt.Errorf("error clearing index %s: %w", index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error clearing index %s: %s", index, res.String())
	}
	return nil
}

func (r *ElasticsearchRepository) reindexBatting(ctx context.Context, recs []*entities.BattingRecord) error {
	now := r.now()
	docs := make([]bulkDoc, 0, len(recs))
	for _, rec := range recs {
		docs = append(docs, bulkDoc{id: rec.ID, doc: toBattingDoc(rec, now)})
	}
	return r.rebuild(ctx, r.BattingIndex(), docs)
}

func (r *ElasticsearchRepository) reindexPitching(ctx context.Context, recs []*entities.PitchingRecord) error {
	now := r.now()
	docs := make([]bulkDoc, 0, len(recs))
	for _, rec := range recs {
		docs = append(docs, bulkDoc{id: rec.ID, doc: toPitchingDoc(rec, now)})
	}
	return r.rebuild(ctx, r.PitchingIndex(), docs)
}

type bulkDoc struct {
	id  string
	doc interface{}
}

// rebuild empties index and bulk loads docs in batches
func (r *ElasticsearchRepository) rebuild(ctx context.Context, index string, docs []bulkDoc) error {
	if err := r.clearIndex(ctx, index); err != nil {
		return err
	}

	for start := 0; start < len(docs); start += r.config.BatchSize {
		end := start + r.config.BatchSize
		if end > len(docs) {
			end = len(docs)
		}
		if err := r.bulkIndex(ctx, index, docs[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func (r *ElasticsearchRepository) bulkIndex(ctx context.Context, index string, docs []bulkDoc) error {
	var body bytes.Buffer
	enc := json.NewEncoder(&body)
	for _, d := range docs {
		meta := map[string]map[string]string{"index": {"_index": index, "_id": d.id}}
		if err := enc.Encode(meta); err != nil {
			return err
		}
		if err := enc.Encode(d.doc); err != nil {
			return err
		}
	}

	req := esapi.BulkRequest{
		Body:    &body,
		Refresh: "true",
	}
	res, err := req.Do(ctx, r.client)
	if err != nil {
		return fmt.Errorf("error bulk indexing into %s: %w", index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error bulk indexing into %s: %s", index, res.String())
	}

	var result struct {
		Errors bool `json:"errors"`
	}
	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("error reading bulk response: %w", err)
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return fmt.Errorf("error parsing bulk response: %w", err)
	}
	if result.Errors {
		return fmt.Errorf("bulk indexing into %s reported item errors", index)
	}
	return nil
}
