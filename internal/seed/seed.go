package seed

import (
	"context"

	"github.com/Taha-Code-Hup/OnoTime/internal/app/models"
	"github.com/Taha-Code-Hup/OnoTime/internal/app/repositories"
	"github.com/Taha-Code-Hup/OnoTime/internal/pkg/idgen"
	"github.com/rs/zerolog"
)

// defaultCourse is a catalogue entry written when no courses are stored
type defaultCourse struct {
	name        string
	code        string
	description string
	semester    int
}

var defaultCourses = []defaultCourse{
	{"מבוא למדעי המחשב", "CS101", "יסודות תכנות, מבנה מחשב ופתרון בעיות.", 1},
	{"אלגוריתמים", "CS201", "ניתוח אלגוריתמים, רשימות מקושרות, מחסניות, עצים וגרפים.", 2},
	{"ארכיטקטורת מחשבים", "CS301", "מערכות ספרתיות, מעבדים ותכנון מערכות מחשב.", 3},
	{"מערכות הפעלה", "CS302", "ניהול תהליכים, זיכרון, קבצים ותזמון.", 4},
	{"תכנות מונחה עצמים", "CS202", "עקרונות OOP: מחלקות, ירושה, פולימורפיזם ותבניות תכנון.", 2},
	{"בסיסי נתונים", "CS303", "SQL, תכנון בסיסי נתונים, נורמליזציה ומערכות ניהול DB.", 3},
	{"אבטחת מידע", "CS401", "קריפטוגרפיה, פרוטוקולי אבטחה, הגנה מפני תקיפות סייבר.", 4},
	{"רשתות מחשבים", "CS304", "מודל OSI, TCP/IP, פרוטוקולים ויישומי אינטרנט.", 3},
	{"בינה מלאכותית", "CS402", "יסודות AI, חיפוש, למידה חישובית ויישומים חכמים.", 4},
	{"פיתוח יישומי אינטרנט", "CS305", "פיתוח צד לקוח וצד שרת, טכנולוגיות Web מתקדמות.", 3},
}

// DefaultCourses returns the default catalogue with fresh ids, unassigned and unviewed
func DefaultCourses() []models.Course {
	out := make([]models.Course, 0, len(defaultCourses))
	for _, c := range defaultCourses {
		out = append(out, models.Course{
			ID:          idgen.Generate("crs"),
			Name:        c.name,
			Code:        c.code,
			Description: c.description,
			Semester:    c.semester,
		})
	}
	return out
}

// CreateDefaultData writes the default courses when the course collection is
// empty and the permanent lecturers when no lecturers are stored.
// Existing data is never touched.
func CreateDefaultData(ctx context.Context, repos *repositories.Repositories, lgr zerolog.Logger) {
	lgr.Info().Msg("Checking/Creating default data (Courses/Lecturers)...")

	if len(repos.Courses.LoadAll(ctx)) == 0 {
		courses := DefaultCourses()
		repos.Courses.SaveAll(ctx, courses)
		lgr.Info().Int("count", len(courses)).Msg("Default courses created")
	}

	// The raw collection, without the permanent merge applied on load
	if len(repos.Lecturers.CollectionRepository.LoadAll(ctx)) == 0 {
		repos.Lecturers.SaveAll(ctx, models.PermanentLecturers())
		lgr.Info().Msg("Permanent lecturers stored")
	}
}
