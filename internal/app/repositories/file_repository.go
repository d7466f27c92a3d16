package repositories

import (
	"github.com/Taha-Code-Hup/OnoTime/internal/app/models"
	"github.com/Taha-Code-Hup/OnoTime/internal/pkg/kvstore"
)

// FileRepository stores the authoritative study files collection
type FileRepository struct {
	*CollectionRepository[models.StudyFile]
}

// NewFileRepository creates a FileRepository
func NewFileRepository(store *kvstore.Store) *FileRepository {
	return &FileRepository{NewCollectionRepository[models.StudyFile](store, FilesKey)}
}
