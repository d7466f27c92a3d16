package seed

import (
	"context"
	"testing"

	"github.com/Taha-Code-Hup/OnoTime/internal/app/models"
	"github.com/Taha-Code-Hup/OnoTime/internal/app/repositories"
	"github.com/Taha-Code-Hup/OnoTime/internal/pkg/kvstore"
	"github.com/rs/zerolog"
)

func TestCreateDefaultDataOnEmptyStore(t *testing.T) {
	ctx := context.Background()
	repos := repositories.NewRepositories(kvstore.NewStore(kvstore.NewMemoryBackend(0), zerolog.Nop()))

	CreateDefaultData(ctx, repos, zerolog.Nop())

	courses := repos.Courses.LoadAll(ctx)
	if len(courses) != 10 {
		t.Fatalf("courses = %d, want 10", len(courses))
	}
	for _, c := range courses {
		if c.ID == "" || c.LecturerID != "" || c.Views != 0 {
			t.Errorf("default course %+v", c)
		}
	}
	if courses[0].Code != "CS101" || courses[0].Semester != 1 || courses[9].Code != "CS305" {
		t.Errorf("unexpected catalogue order: %s .. %s", courses[0].Code, courses[9].Code)
	}

	raw := repos.Lecturers.CollectionRepository.LoadAll(ctx)
	if len(raw) != len(models.PermanentLecturers()) {
		t.Fatalf("stored lecturers = %d", len(raw))
	}
}

func TestCreateDefaultDataKeepsExisting(t *testing.T) {
	ctx := context.Background()
	repos := repositories.NewRepositories(kvstore.NewStore(kvstore.NewMemoryBackend(0), zerolog.Nop()))

	repos.Courses.SaveAll(ctx, []models.Course{{ID: "mine", Code: "X1", Semester: 1}})
	CreateDefaultData(ctx, repos, zerolog.Nop())

	courses := repos.Courses.LoadAll(ctx)
	if len(courses) != 1 || courses[0].ID != "mine" {
		t.Fatalf("existing courses replaced: %+v", courses)
	}
}
