package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v9"
)

const ProfileIndex = "student_profiles"

// ProfileDoc is the search projection of a predicted student profile.
type ProfileDoc struct {
	Email          string  `json:"email"`
	Cgpa           float64 `json:"cgpa"`
	ReadinessScore float64 `json:"readinessScore"`
	ReadinessLabel string  `json:"readinessLabel"`
}

func IndexProfile(ctx context.Context, es *elasticsearch.Client, index string, doc ProfileDoc) error {
	if es == nil {
		return nil
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("index profile: %w", err)
	}

	res, err := es.Index(
		index,
		bytes.NewReader(body),
		es.Index.WithContext(ctx),
		es.Index.WithDocumentID(doc.Email),
	)
	if err != nil {
		return fmt.Errorf("index profile: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("index profile: %s", res.Status())
	}
	return nil
}

func SearchProfiles(ctx context.Context, es *elasticsearch.Client, index, query string, from, size int) (int64, []ProfileDoc, error) {
	body := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     query,
				"fields":    []string{"email^2", "readinessLabel"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, fmt.Errorf("search profiles: %w", err)
	}

	res, err := es.Search(
		es.Search.WithContext(ctx),
		es.Search.WithIndex(index),
		es.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("search profiles: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return 0, nil, fmt.Errorf("search profiles: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source ProfileDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, fmt.Errorf("search profiles: %w", err)
	}

	docs := make([]ProfileDoc, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		docs[i] = hit.Source
	}
	return r.Hits.Total.Value, docs, nil
}

func NormalizeQuery(q string) string {
	return strings.TrimSpace(q)
}
