package repositories

import (
	"context"

	"github.com/Taha-Code-Hup/OnoTime/internal/app/models"
	"github.com/Taha-Code-Hup/OnoTime/internal/pkg/kvstore"
)

// Collection keys
const (
	StudentsKey  = "students"
	CoursesKey   = "courses"
	LecturersKey = "lecturers"
	FilesKey     = "files"
)

// CollectionRepository loads and saves one whole collection stored under a single key
type CollectionRepository[T any] struct {
	store *kvstore.Store
	key   string
}

// NewCollectionRepository creates a repository for the collection under key
func NewCollectionRepository[T any](store *kvstore.Store, key string) *CollectionRepository[T] {
	return &CollectionRepository[T]{store: store, key: key}
}

// Key returns the storage key of the collection
func (r *CollectionRepository[T]) Key() string {
	return r.key
}

// LoadAll returns the stored collection, or an empty one when it is absent or corrupt
func (r *CollectionRepository[T]) LoadAll(ctx context.Context) []T {
	items := kvstore.Load(ctx, r.store, r.key, []T{})
	if items == nil {
		// A stored JSON null
		return []T{}
	}
	return items
}

// SaveAll overwrites the whole collection
func (r *CollectionRepository[T]) SaveAll(ctx context.Context, items []T) {
	if items == nil {
		items = []T{}
	}
	r.store.Write(ctx, r.key, items)
}

// Repositories holds all the repository instances
type Repositories struct {
	Students  *StudentRepository
	Courses   *CourseRepository
	Lecturers *LecturerRepository
	Files     *FileRepository
}

// NewRepositories initializes all repositories over one store
func NewRepositories(store *kvstore.Store) *Repositories {
	return &Repositories{
		Students:  NewStudentRepository(store),
		Courses:   NewCourseRepository(store),
		Lecturers: NewLecturerRepository(store),
		Files:     NewFileRepository(store),
	}
}

// StudentRepository stores the students collection
type StudentRepository struct {
	*CollectionRepository[models.Student]
}

// NewStudentRepository creates a StudentRepository
func NewStudentRepository(store *kvstore.Store) *StudentRepository {
	return &StudentRepository{NewCollectionRepository[models.Student](store, StudentsKey)}
}

// CourseRepository stores the courses collection
type CourseRepository struct {
	*CollectionRepository[models.Course]
}

// NewCourseRepository creates a CourseRepository
func NewCourseRepository(store *kvstore.Store) *CourseRepository {
	return &CourseRepository{NewCollectionRepository[models.Course](store, CoursesKey)}
}
