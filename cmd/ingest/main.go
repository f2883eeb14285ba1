// Command ingest loads role reference documents (job descriptions) into
// Qdrant for interview question generation.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"hired/interview-service/internal/config"
	"hired/interview-service/internal/services"
)

var (
	files   []string
	docType string
	replace bool
)

var rootCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest reference PDFs into the vector store",
	Long: `Extract text from reference PDFs, chunk and embed it with Gemini, and store
the chunks in Qdrant so interview questions can use them as role context.

  ingest --file ./reference_docs/backend_engineer.pdf
  ingest --file a.pdf --file b.pdf --type job_description --replace`,
	SilenceUsage: true,
	RunE:         runIngest,
}

func init() {
	rootCmd.Flags().StringArrayVarP(&files, "file", "f", nil, "PDF file to ingest (repeatable)")
	rootCmd.Flags().StringVarP(&docType, "type", "t", services.DocTypeJobDescription, "Document type stored with each chunk")
	rootCmd.Flags().BoolVar(&replace, "replace", false, "Delete existing chunks of this type before ingesting")
	_ = rootCmd.MarkFlagRequired("file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runIngest(cmd *cobra.Command, args []string) error {
	log.Println("🚀 Starting document ingestion...")

	cfg := config.Load()
	if cfg.Qdrant.URL == "" {
		return fmt.Errorf("QDRANT_URL is not set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.EmbedModel)
	if err != nil {
		return fmt.Errorf("failed to initialize Gemini: %w", err)
	}

	qdrantService, err := services.NewQdrantService(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection)
	if err != nil {
		return fmt.Errorf("failed to initialize Qdrant: %w", err)
	}

	if err := qdrantService.InitCollection(ctx); err != nil {
		return fmt.Errorf("failed to initialize collection: %w", err)
	}

	ingestor := services.NewReferenceIngestor(
		services.NewPDFParserService(),
		services.NewTextChunker(),
		geminiService,
		qdrantService,
	)

	if replace {
		log.Printf("🔄 Removing existing %s chunks...", docType)
		if err := ingestor.ClearDocType(ctx, docType); err != nil {
			return err
		}
	}

	successCount := 0
	failCount := 0

	for _, path := range files {
		log.Printf("\n📄 Processing: %s", path)
		log.Printf("   Type: %s", docType)

		if _, err := os.Stat(path); os.IsNotExist(err) {
			log.Printf("   ⚠️  File not found, skipping...")
			failCount++
			continue
		}

		stored, err := ingestor.IngestFile(ctx, path, docType)
		if err != nil {
			log.Printf("   ❌ Failed to ingest %s: %v", path, err)
			failCount++
			continue
		}

		log.Printf("   ✅ Stored %d chunks from %s", stored, path)
		successCount++
	}

	log.Println("\n" + strings.Repeat("=", 60))
	log.Printf("📊 Ingestion Summary:")
	log.Printf("   ✅ Successful: %d documents", successCount)
	log.Printf("   ❌ Failed: %d documents", failCount)
	log.Println(strings.Repeat("=", 60))

	if failCount > 0 {
		return fmt.Errorf("%d of %d documents failed to ingest", failCount, len(files))
	}

	log.Println("✅ All documents ingested successfully!")
	return nil
}
