// Package keyword implements the BM25 side of hybrid moment search,
// backed by Elasticsearch v8, combined with the vector side for
// /api/moments/search (final score = 0.7 vector + 0.3 keyword).
package keyword

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	apperrors "github.com/sghansard/hansardkb/internal/errors"
)

// MomentDoc is the document indexed per moment for keyword search.
type MomentDoc struct {
	MomentID     string  `json:"moment_id"`
	TranscriptID string  `json:"transcript_id"`
	Speaker      string  `json:"speaker"`
	Topic        string  `json:"topic"`
	Quote        string  `json:"quote"`
	Score        float64 `json:"score"`
}

// MomentMatch is one BM25 hit.
type MomentMatch struct {
	MomentID string
	Score    float64
}

// Index is an Elasticsearch-backed keyword index over moment quotes
// and topics.
type Index struct {
	client    *elasticsearch.Client
	indexName string
}

func New(addresses []string, indexName string) (*Index, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: addresses})
	if err != nil {
		return nil, apperrors.NewConfigurationError("construct elasticsearch client: " + err.Error())
	}
	return &Index{client: client, indexName: indexName}, nil
}

// Index upserts one moment document, keyed by moment id so reindexing
// an extraction is idempotent.
func (i *Index) Index(ctx context.Context, doc MomentDoc) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return apperrors.NewInternalError("marshal moment doc", err)
	}
	req := esapi.IndexRequest{
		Index:      i.indexName,
		DocumentID: doc.MomentID,
		Body:       bytes.NewReader(body),
		Refresh:    "false",
	}
	resp, err := req.Do(ctx, i.client)
	if err != nil {
		return apperrors.NewStoreError("index moment doc", err)
	}
	defer resp.Body.Close()
	if resp.IsError() {
		return apperrors.NewStoreError(fmt.Sprintf("index moment doc: status %s", resp.Status()), nil)
	}
	return nil
}

// Search runs a BM25 multi-match over quote and topic, scoped to an
// optional transcript id.
func (i *Index) Search(ctx context.Context, query string, transcriptID string, limit int) ([]MomentMatch, error) {
	must := []map[string]interface{}{
		{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"quote^2", "topic", "speaker"},
			},
		},
	}
	if transcriptID != "" {
		must = append(must, map[string]interface{}{
			"term": map[string]interface{}{"transcript_id": transcriptID},
		})
	}

	queryBody := map[string]interface{}{
		"size":  limit,
		"query": map[string]interface{}{"bool": map[string]interface{}{"must": must}},
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(queryBody); err != nil {
		return nil, apperrors.NewInternalError("encode search query", err)
	}

	resp, err := i.client.Search(
		i.client.Search.WithContext(ctx),
		i.client.Search.WithIndex(i.indexName),
		i.client.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, apperrors.NewStoreError("keyword search", err)
	}
	defer resp.Body.Close()
	if resp.IsError() {
		if strings.Contains(resp.String(), "index_not_found_exception") {
			return nil, nil
		}
		return nil, apperrors.NewStoreError("keyword search: "+resp.Status(), nil)
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID    string  `json:"_id"`
				Score float64 `json:"_score"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, apperrors.NewInternalError("decode search response", err)
	}

	out := make([]MomentMatch, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, MomentMatch{MomentID: h.ID, Score: h.Score})
	}
	return out, nil
}
