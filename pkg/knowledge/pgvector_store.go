package knowledge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"ai-chatbot-be/internal/entity"
	"ai-chatbot-be/internal/pkg/logger"
	"ai-chatbot-be/pkg/embedding"
)

// PgVectorStore implements Store on Postgres with the pgvector extension.
// Metadata is kept as JSONB so the open schema survives round-trips.
type PgVectorStore struct {
	db       *gorm.DB
	embedder embedding.Provider
	logger   logger.ILogger
}

func NewPgVectorStore(db *gorm.DB, embedder embedding.Provider, log logger.ILogger) *PgVectorStore {
	return &PgVectorStore{
		db:       db,
		embedder: embedder,
		logger:   log,
	}
}

var _ Store = &PgVectorStore{}

func (s *PgVectorStore) EnsureCollection(ctx context.Context) error {
	if err := s.db.WithContext(ctx).Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	if err := s.db.WithContext(ctx).AutoMigrate(&entity.KnowledgeChunk{}); err != nil {
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	return nil
}

func (s *PgVectorStore) AddDocuments(ctx context.Context, docs []Document) (int, error) {
	if err := s.EnsureCollection(ctx); err != nil {
		return 0, err
	}

	rows := make([]*entity.KnowledgeChunk, 0, len(docs))
	for _, doc := range docs {
		vector, err := s.embedder.Embed(ctx, doc.Content)
		if err != nil {
			if errors.Is(err, embedding.ErrUnembeddable) {
				s.logger.Warn("pgvector_store", "Skipping unembeddable document", map[string]interface{}{
					"error": err.Error(),
				})
				continue
			}
			return 0, fmt.Errorf("embed document: %w", err)
		}

		metadata, err := json.Marshal(doc.Metadata)
		if err != nil {
			metadata = []byte("{}")
		}

		rows = append(rows, &entity.KnowledgeChunk{
			Id:        uuid.New(),
			Content:   doc.Content,
			Metadata:  datatypes.JSON(metadata),
			Embedding: pgvector.NewVector(vector),
			CreatedAt: time.Now(),
		})
	}

	if len(rows) == 0 {
		return 0, nil
	}

	if err := s.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	s.logger.Info("pgvector_store", "Documents added", map[string]interface{}{
		"count":   len(rows),
		"skipped": len(docs) - len(rows),
	})
	return len(rows), nil
}

func (s *PgVectorStore) SearchSimilar(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 5
	}

	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	// Cosine distance in pgvector is 1 - cosine_similarity, so
	// 1 - (embedding <=> query_vector) gives the similarity score.
	type row struct {
		Content    string
		Metadata   []byte
		Similarity float64
	}
	var results []row

	queryVector := pgvector.NewVector(vector)
	err = s.db.WithContext(ctx).
		Table("knowledge_chunks").
		Select("content, metadata, 1 - (embedding <=> ?) as similarity", queryVector).
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	out := make([]SearchResult, 0, len(results))
	for _, r := range results {
		var metadata map[string]interface{}
		if len(r.Metadata) > 0 {
			_ = json.Unmarshal(r.Metadata, &metadata)
		}
		out = append(out, SearchResult{
			Content:  r.Content,
			Score:    r.Similarity,
			Metadata: metadata,
		})
	}
	return out, nil
}

func (s *PgVectorStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&entity.KnowledgeChunk{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	return count, nil
}
