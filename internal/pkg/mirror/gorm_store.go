package mirror

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Taha-Code-Hup/OnoTime/internal/pkg/apperrors"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// DocumentRecord is the table row backing one document
type DocumentRecord struct {
	Collection string         `gorm:"primaryKey;size:64"`
	DocID      string         `gorm:"primaryKey;size:255"`
	Data       datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime"`
}

// TableName implements gorm's tabler
func (DocumentRecord) TableName() string {
	return "mirror_documents"
}

// GormDocumentStore keeps documents in a Postgres table through gorm
type GormDocumentStore struct {
	db *gorm.DB
}

// NewGormDocumentStore wraps an open gorm connection
func NewGormDocumentStore(db *gorm.DB) *GormDocumentStore {
	return &GormDocumentStore{db: db}
}

// OpenGormDocumentStore connects to dsn and migrates the documents table
func OpenGormDocumentStore(dsn string) (*GormDocumentStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect mirror database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get mirror sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(&DocumentRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate mirror documents: %w", err)
	}
	return NewGormDocumentStore(db), nil
}

// Close releases the underlying connection pool
func (s *GormDocumentStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// AddDocument implements DocumentStore
func (s *GormDocumentStore) AddDocument(ctx context.Context, collection string, data Document) (string, error) {
	id := uuid.NewString()
	if err := s.SetDocument(ctx, collection, id, data); err != nil {
		return "", err
	}
	return id, nil
}

// SetDocument implements DocumentStore
func (s *GormDocumentStore) SetDocument(ctx context.Context, collection, id string, data Document) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode document %s/%s: %w", collection, id, err)
	}

	record := DocumentRecord{Collection: collection, DocID: id, Data: datatypes.JSON(raw)}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "collection"}, {Name: "doc_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&record).Error
	if err != nil {
		return fmt.Errorf("failed to set document %s/%s: %w", collection, id, err)
	}
	return nil
}

// GetCollection implements DocumentStore
func (s *GormDocumentStore) GetCollection(ctx context.Context, collection string) ([]Document, error) {
	var records []DocumentRecord
	err := s.db.WithContext(ctx).
		Where("collection = ?", collection).
		Order("created_at ASC").
		Order("doc_id ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to read collection %s: %w", collection, err)
	}

	docs := make([]Document, 0, len(records))
	for _, r := range records {
		var doc Document
		if err := json.Unmarshal(r.Data, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode document %s/%s: %w", collection, r.DocID, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// UpdateDocument implements DocumentStore
func (s *GormDocumentStore) UpdateDocument(ctx context.Context, collection, id string, patch Document) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record DocumentRecord
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("collection = ? AND doc_id = ?", collection, id).
			First(&record).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: document %s/%s", apperrors.ErrResourceNotFound, collection, id)
			}
			return fmt.Errorf("failed to load document %s/%s: %w", collection, id, err)
		}

		doc := Document{}
		if err := json.Unmarshal(record.Data, &doc); err != nil {
			return fmt.Errorf("failed to decode document %s/%s: %w", collection, id, err)
		}
		mergePatch(doc, patch)

		raw, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("failed to encode document %s/%s: %w", collection, id, err)
		}
		return tx.Model(&DocumentRecord{}).
			Where("collection = ? AND doc_id = ?", collection, id).
			Update("data", datatypes.JSON(raw)).Error
	})
}

// DeleteDocument implements DocumentStore
func (s *GormDocumentStore) DeleteDocument(ctx context.Context, collection, id string) error {
	err := s.db.WithContext(ctx).
		Where("collection = ? AND doc_id = ?", collection, id).
		Delete(&DocumentRecord{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete document %s/%s: %w", collection, id, err)
	}
	return nil
}

// mergePatch applies patch to doc; nil values delete the field
func mergePatch(doc, patch Document) {
	for k, v := range patch {
		if v == nil {
			delete(doc, k)
			continue
		}
		doc[k] = v
	}
}
