package dto

// FileRequest is the body of POST /files and PUT /files/:id.
// A missing course is reported by the service, not by binding.
type FileRequest struct {
	Name        string `json:"name" binding:"required,max=200" example:"Lecture 1 slides"`
	Description string `json:"description" binding:"max=2000"`
	Type        string `json:"type" binding:"required,filetype" example:"pdf"`
	FileURL     string `json:"fileUrl" binding:"required,url" example:"https://example.com/sample.pdf"`
	CourseID    string `json:"courseId"`
	Status      string `json:"status" binding:"omitempty,filestatus" example:"pending"`
	UploaderID  string `json:"uploaderId"`
}

// UpdateFileStatusRequest is the body of PUT /files/:id/status
type UpdateFileStatusRequest struct {
	Status string `json:"status" binding:"required,filestatus" example:"approved"`
}
