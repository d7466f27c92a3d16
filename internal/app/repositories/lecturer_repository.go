package repositories

import (
	"context"

	"github.com/Taha-Code-Hup/OnoTime/internal/app/models"
	"github.com/Taha-Code-Hup/OnoTime/internal/pkg/kvstore"
)

// LecturerRepository stores the lecturers collection.
// Loading always yields the permanent lecturers, with persisted edits winning.
type LecturerRepository struct {
	*CollectionRepository[models.Lecturer]
}

// NewLecturerRepository creates a LecturerRepository
func NewLecturerRepository(store *kvstore.Store) *LecturerRepository {
	return &LecturerRepository{NewCollectionRepository[models.Lecturer](store, LecturersKey)}
}

// LoadAll returns the permanent lecturers, each replaced by its persisted
// version when one exists, followed by the other persisted lecturers in stored order
func (r *LecturerRepository) LoadAll(ctx context.Context) []models.Lecturer {
	return MergePermanent(r.CollectionRepository.LoadAll(ctx))
}

// MergePermanent applies the permanent-lecturer merge to a persisted collection
func MergePermanent(saved []models.Lecturer) []models.Lecturer {
	byID := make(map[string]models.Lecturer, len(saved))
	for _, l := range saved {
		byID[l.ID] = l
	}

	permanent := models.PermanentLecturers()
	out := make([]models.Lecturer, 0, len(permanent)+len(saved))
	for _, p := range permanent {
		if l, ok := byID[p.ID]; ok {
			p = l
		}
		out = append(out, normalizeLecturer(p))
	}
	for _, l := range saved {
		if !models.IsPermanentLecturer(l.ID) {
			out = append(out, normalizeLecturer(l))
		}
	}
	return out
}

func normalizeLecturer(l models.Lecturer) models.Lecturer {
	if l.Courses == nil {
		l.Courses = []string{}
	}
	if l.Semesters == nil {
		l.Semesters = []int{}
	}
	return l
}
