package models

// FileType is the kind of a study file
type FileType string

const (
	FileTypePDF   FileType = "pdf"
	FileTypePPT   FileType = "ppt"
	FileTypeDoc   FileType = "doc"
	FileTypeLink  FileType = "link"
	FileTypeOther FileType = "other"
)

// FileTypes lists every valid file type
var FileTypes = []FileType{FileTypePDF, FileTypePPT, FileTypeDoc, FileTypeLink, FileTypeOther}

// FileStatus is the review state of a study file
type FileStatus string

const (
	FileStatusPending  FileStatus = "pending"
	FileStatusApproved FileStatus = "approved"
	FileStatusRejected FileStatus = "rejected"
)

// FileStatuses lists every valid file status
var FileStatuses = []FileStatus{FileStatusPending, FileStatusApproved, FileStatusRejected}

// StudyFile is a document or link attached to a course
type StudyFile struct {
	ID          string     `json:"id" example:"file_1718000000000_7"`
	Name        string     `json:"name" example:"Lecture 1 slides"`
	Description string     `json:"description"`
	Type        FileType   `json:"type" example:"pdf"`
	FileURL     string     `json:"fileUrl" example:"https://example.com/sample.pdf"`
	CourseID    string     `json:"courseId"`
	Status      FileStatus `json:"status" example:"pending"`
	UploaderID  string     `json:"uploaderId"` // Student or lecturer id
	Views       Counter    `json:"views"`
}
