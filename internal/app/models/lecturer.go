package models

// Lecturer teaches zero or more courses.
// Semesters is always derived from the semesters of the assigned courses.
type Lecturer struct {
	ID             string   `json:"id" example:"183483748"`
	Name           string   `json:"name"`
	Email          string   `json:"email" example:"yael.cohen@university.ac.il"`
	Specialization string   `json:"specialization,omitempty"`
	Courses        []string `json:"courses"`
	Semesters      []int    `json:"semesters"`
}

// Teaches reports whether courseID is in the lecturer's course set
func (l Lecturer) Teaches(courseID string) bool {
	for _, id := range l.Courses {
		if id == courseID {
			return true
		}
	}
	return false
}

var permanentLecturers = []Lecturer{
	{ID: "183483748", Name: `ד"ר יעל כהן`, Email: "yael.cohen@university.ac.il", Specialization: "מדעי המחשב - אלגוריתמים"},
	{ID: "349285839", Name: "פרופ' דני לוי", Email: "dani.levi@university.ac.il", Specialization: "מדעי המחשב - בינה מלאכותית"},
	{ID: "349115839", Name: `ד"ר רונית גבע`, Email: "ronit.geva@university.ac.il", Specialization: "מדעי המחשב - מבני נתונים"},
	{ID: "123285839", Name: "פרופ' מיכאל אברהם", Email: "michael.abraham@university.ac.il", Specialization: "מדעי המחשב - מערכות הפעלה"},
	{ID: "349285000", Name: `ד"ר נועה שפירא`, Email: "noa.shapira@university.ac.il", Specialization: "מדעי המחשב - הנדסת תוכנה"},
	{ID: "349000819", Name: "פרופ' דוד רז", Email: "david.raz@university.ac.il", Specialization: "מדעי המחשב - רשתות תקשורת"},
	{ID: "349243239", Name: `ד"ר מיכל בן-דוד`, Email: "michal.bendavid@university.ac.il", Specialization: "מדעי המחשב - גרפיקה ממוחשבת"},
	{ID: "123543989", Name: "פרופ' שלמה קפלן", Email: "shlomo.kaplan@university.ac.il", Specialization: "מדעי המחשב - למידת מכונה"},
	{ID: "321453554", Name: `ד"ר תמר ישראלי`, Email: "tamar.israeli@university.ac.il", Specialization: "מדעי המחשב - אבטחת מידע"},
	{ID: "123111321", Name: "פרופ' רון ברק", Email: "ron.barak@university.ac.il", Specialization: "מדעי המחשב - עיבוד תמונה"},
	{ID: "333213111", Name: `ד"ר מרים גולן`, Email: "miriam.golan@university.ac.il", Specialization: "מדעי המחשב - כריית נתונים"},
	{ID: "876433211", Name: "פרופ' אמיר כהן", Email: "amir.cohen@university.ac.il", Specialization: "מדעי המחשב - בסיסי נתונים"},
	{ID: "453234111", Name: `ד"ר ליאת פרידמן`, Email: "liat.friedman@university.ac.il", Specialization: "מדעי המחשב - תכנות מקבילי"},
	{ID: "111243232", Name: "פרופ' אורי לוי", Email: "uri.levi@university.ac.il", Specialization: "מדעי המחשב - תורת החישוביות"},
	{ID: "432111232", Name: `ד"ר שרית רגב`, Email: "sarit.regev@university.ac.il", Specialization: "מדעי המחשב - רובוטיקה"},
}

var permanentIDs = func() map[string]struct{} {
	ids := make(map[string]struct{}, len(permanentLecturers))
	for _, l := range permanentLecturers {
		ids[l.ID] = struct{}{}
	}
	return ids
}()

// PermanentLecturers returns fresh copies of the seed lecturers, with no
// courses and no semesters
func PermanentLecturers() []Lecturer {
	out := make([]Lecturer, len(permanentLecturers))
	for i, l := range permanentLecturers {
		l.Courses = []string{}
		l.Semesters = []int{}
		out[i] = l
	}
	return out
}

// IsPermanentLecturer reports whether id belongs to a seed lecturer
func IsPermanentLecturer(id string) bool {
	_, ok := permanentIDs[id]
	return ok
}
