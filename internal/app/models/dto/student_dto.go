package dto

// CreateStudentRequest is the body of POST /students
type CreateStudentRequest struct {
	ID        string   `json:"id" binding:"required,nationalid" example:"123456789"`
	FullName  string   `json:"fullName" binding:"required,min=2,max=100" example:"Daniel Cohen"`
	Email     string   `json:"email" binding:"required,looseemail" example:"daniel@example.com"`
	Semester  int      `json:"semester" binding:"required,min=1,max=99" example:"3"`
	CourseIDs []string `json:"courseIds"`
}

// UpdateStudentRequest is the body of PUT /students/:id; the id itself cannot change
type UpdateStudentRequest struct {
	FullName  string   `json:"fullName" binding:"required,min=2,max=100"`
	Email     string   `json:"email" binding:"required,looseemail"`
	Semester  int      `json:"semester" binding:"required,min=1,max=99"`
	CourseIDs []string `json:"courseIds"`
}
