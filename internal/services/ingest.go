package services

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
)

// ReferenceIngestor loads reference PDFs into the vector store so question
// generation can draw role context from them.
type ReferenceIngestor interface {
	IngestFile(ctx context.Context, path string, docType string) (int, error)
	ClearDocType(ctx context.Context, docType string) error
}

type referenceIngestor struct {
	parser   PDFParserService
	chunker  TextChunker
	embedder Embedder
	qdrant   QdrantService
}

func NewReferenceIngestor(parser PDFParserService, chunker TextChunker, embedder Embedder, qdrant QdrantService) ReferenceIngestor {
	return &referenceIngestor{
		parser:   parser,
		chunker:  chunker,
		embedder: embedder,
		qdrant:   qdrant,
	}
}

// IngestFile returns the number of chunks stored. Chunks that fail to embed
// or store are skipped; the call fails only if none were stored.
func (r *referenceIngestor) IngestFile(ctx context.Context, path string, docType string) (int, error) {
	content, err := r.parser.ExtractTextWithMetaData(path)
	if err != nil {
		return 0, fmt.Errorf("failed to extract text: %w", err)
	}

	log.Printf("   ✅ Extracted %d pages, %d characters", content.PageCount, len(content.Text))

	chunks := r.chunker.ChunkText(content.Text, DefaultChunkSize, DefaultChunkOverlap)
	if len(chunks) == 0 {
		return 0, fmt.Errorf("no chunks produced from %s", path)
	}
	log.Printf("   ✅ Created %d chunks", len(chunks))

	source := filepath.Base(path)
	prefix := strings.TrimSuffix(source, filepath.Ext(source))

	stored := 0
	for i, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return stored, err
		}

		embedding, err := r.embedder.GenerateEmbedding(ctx, chunk)
		if err != nil {
			log.Printf("   ❌ Failed to generate embedding for chunk %d: %v", i+1, err)
			continue
		}

		chunkID := fmt.Sprintf("%s_%s_chunk_%d", docType, prefix, i)
		if err := r.qdrant.UpsertChunk(ctx, chunkID, docType, source, chunk, embedding); err != nil {
			log.Printf("   ❌ Failed to store chunk %d: %v", i+1, err)
			continue
		}
		stored++

		if (i+1)%5 == 0 || i == len(chunks)-1 {
			log.Printf("   📊 Progress: %d/%d chunks stored", i+1, len(chunks))
		}
	}

	if stored == 0 {
		return 0, fmt.Errorf("failed to store any of %d chunks", len(chunks))
	}

	return stored, nil
}

func (r *referenceIngestor) ClearDocType(ctx context.Context, docType string) error {
	return r.qdrant.DeleteByDocType(ctx, docType)
}
