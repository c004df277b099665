package redis

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"pickwise/domain"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// Embedder turns free text into a dense vector for similarity search.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// LaptopIndex runs KNN queries against a RediSearch vector index. Each
// document stores the laptop id alongside its description embedding.
type LaptopIndex struct {
	client    *redis.Client
	embedder  Embedder
	indexName string
}

func NewLaptopIndex(client *redis.Client, embedder Embedder, indexName string) *LaptopIndex {
	return &LaptopIndex{
		client:    client,
		embedder:  embedder,
		indexName: indexName,
	}
}

func (r *LaptopIndex) SimilaritySearch(ctx context.Context, query string, k int) ([]domain.SemanticHit, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	vector, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	res, err := r.client.FTSearchWithArgs(ctx,
		r.indexName,
		fmt.Sprintf("*=>[KNN %d @embedding $vec AS vector_score]", k),
		&redis.FTSearchOptions{
			Return: []redis.FTSearchReturn{
				{FieldName: "laptop_id"},
				{FieldName: "vector_score"},
			},
			SortBy: []redis.FTSearchSortBy{
				{FieldName: "vector_score", Asc: true},
			},
			DialectVersion: 2,
			Params: map[string]interface{}{
				"vec": encodeVector(vector),
			},
			LimitOffset: 0,
			Limit:       k,
		},
	).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to run vector search: %w", err)
	}

	hits := make([]domain.SemanticHit, 0, len(res.Docs))
	for _, doc := range res.Docs {
		id, ok := doc.Fields["laptop_id"]
		if !ok {
			continue
		}
		// RediSearch reports cosine distance, lower means closer.
		score, _ := strconv.ParseFloat(doc.Fields["vector_score"], 64)
		hits = append(hits, domain.SemanticHit{
			LaptopID:   id,
			Similarity: 1 - score,
		})
	}

	return hits, nil
}

// IndexLaptop writes a laptop's embedding document. Admin imports call this
// after inserting catalog rows so the next search can retrieve them.
func (r *LaptopIndex) IndexLaptop(ctx context.Context, laptopID string, description string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	vector, err := r.embedder.Embed(ctx, description)
	if err != nil {
		return fmt.Errorf("failed to embed laptop description: %w", err)
	}

	key := fmt.Sprintf("laptop:embedding:%s", laptopID)
	err = r.client.HSet(ctx, key, map[string]interface{}{
		"laptop_id": laptopID,
		"embedding": encodeVector(vector),
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to store laptop embedding: %w", err)
	}

	return nil
}

func encodeVector(vector []float32) []byte {
	buf := make([]byte, 4*len(vector))
	for i, v := range vector {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}
