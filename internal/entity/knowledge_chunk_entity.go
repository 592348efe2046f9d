package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type KnowledgeChunk struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Content   string
	Metadata  datatypes.JSON
	Embedding pgvector.Vector `gorm:"type:vector(768)"`
	CreatedAt time.Time
}

func (KnowledgeChunk) TableName() string {
	return "knowledge_chunks"
}
