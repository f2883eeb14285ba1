package services

import (
	"context"
	"fmt"
)

const DocTypeJobDescription = "job_description"

// ReferenceRetriever returns role reference material for prompt context.
type ReferenceRetriever interface {
	RetrieveContext(ctx context.Context, designation string) (string, error)
}

type ragRetriever struct {
	embedder Embedder
	qdrant   QdrantService
	prompts  *PromptBuilder
	limit    int
}

func NewReferenceRetriever(embedder Embedder, qdrant QdrantService) ReferenceRetriever {
	return &ragRetriever{
		embedder: embedder,
		qdrant:   qdrant,
		prompts:  NewPromptBuilder(),
		limit:    3,
	}
}

func (r *ragRetriever) RetrieveContext(ctx context.Context, designation string) (string, error) {
	query := r.prompts.BuildRetrievalQuery(designation)

	embedding, err := r.embedder.GenerateEmbedding(ctx, query)
	if err != nil {
		return "", fmt.Errorf("failed to generate query embedding: %w", err)
	}

	results, err := r.qdrant.SearchSimilar(ctx, embedding, DocTypeJobDescription, r.limit)
	if err != nil {
		return "", fmt.Errorf("failed to search reference documents: %w", err)
	}

	return FormatRAGContext(results), nil
}
