package repository

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/support-agent/internal/domain"
)

// NoDocumentationMessage is returned to the model when nothing matches.
const NoDocumentationMessage = "No documentation found for your query. This might require creating a support ticket for further assistance."

// DocumentRepository searches the documentation corpus.
type DocumentRepository interface {
	Search(ctx context.Context, query string) (domain.SearchResult, error)
}

type documentRepository struct {
	docs    []domain.Document
	latency time.Duration
	logger  *zap.Logger
}

// NewDocumentRepository returns a keyword matcher over a fixed corpus.
// Corpus order decides which document wins when several match.
func NewDocumentRepository(docs []domain.Document, latency time.Duration, logger *zap.Logger) DocumentRepository {
	corpus := make([]domain.Document, len(docs))
	copy(corpus, docs)
	return &documentRepository{docs: corpus, latency: latency, logger: logger}
}

func (r *documentRepository) Search(ctx context.Context, query string) (domain.SearchResult, error) {
	r.logger.Info("searching docs", zap.String("query", query))
	if err := SimulateLatency(ctx, r.latency); err != nil {
		return domain.SearchResult{}, err
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return domain.SearchResult{Found: false}, nil
	}

	for _, doc := range r.docs {
		if matches(doc, q) {
			r.logger.Info("found documentation", zap.String("topic", doc.Topic))
			return domain.SearchResult{Found: true, Topic: doc.Topic, Content: doc.Content}, nil
		}
	}
	r.logger.Info("no documentation found", zap.String("query", query))
	return domain.SearchResult{Found: false}, nil
}

func matches(doc domain.Document, query string) bool {
	for _, kw := range doc.Keywords {
		if strings.Contains(query, kw) {
			return true
		}
	}
	return strings.Contains(strings.ToLower(doc.Topic), query)
}

// RenderSearchResult formats a result the way the model receives it.
func RenderSearchResult(res domain.SearchResult) string {
	if !res.Found {
		return NoDocumentationMessage
	}
	return "Documentation: " + res.Topic + "\n\n" + res.Content
}
