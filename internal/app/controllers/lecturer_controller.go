package controllers

import (
	"net/http"

	"github.com/Taha-Code-Hup/OnoTime/internal/app/models/dto"
	"github.com/Taha-Code-Hup/OnoTime/internal/app/services"
	"github.com/Taha-Code-Hup/OnoTime/internal/middleware"
	"github.com/gin-gonic/gin"
)

// LecturerController handles lecturer-related operations
type LecturerController struct {
	lecturerService services.LecturerService
}

// NewLecturerController creates a new LecturerController
func NewLecturerController(lecturerService services.LecturerService) *LecturerController {
	return &LecturerController{
		lecturerService: lecturerService,
	}
}

// GetAllLecturers lists the permanent and added lecturers
// @Summary List lecturers
// @Tags lecturers
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Lecturer}
// @Router /lecturers [get]
func (c *LecturerController) GetAllLecturers(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(c.lecturerService.GetAllLecturers(ctx), ""))
}

// GetLecturerByID retrieves a lecturer
// @Summary Get a lecturer
// @Tags lecturers
// @Param id path string true "Lecturer ID"
// @Success 200 {object} dto.APIResponse{data=models.Lecturer}
// @Router /lecturers/{id} [get]
func (c *LecturerController) GetLecturerByID(ctx *gin.Context) {
	lecturer, err := c.lecturerService.GetLecturerByID(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(lecturer, ""))
}

// CreateLecturer handles lecturer creation
// @Summary Create a lecturer
// @Tags lecturers
// @Accept json
// @Produce json
// @Param request body dto.CreateLecturerRequest true "Lecturer information"
// @Success 201 {object} dto.APIResponse{data=models.Lecturer}
// @Failure 409 {object} dto.APIResponse "Lecturer ID already exists"
// @Router /lecturers [post]
func (c *LecturerController) CreateLecturer(ctx *gin.Context) {
	var req dto.CreateLecturerRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	lecturer, err := c.lecturerService.CreateLecturer(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(lecturer, "Lecturer created"))
}

// UpdateLecturer edits a lecturer's details
// @Summary Update a lecturer
// @Tags lecturers
// @Accept json
// @Param id path string true "Lecturer ID"
// @Param request body dto.UpdateLecturerRequest true "Lecturer information"
// @Success 200 {object} dto.APIResponse{data=models.Lecturer}
// @Router /lecturers/{id} [put]
func (c *LecturerController) UpdateLecturer(ctx *gin.Context) {
	var req dto.UpdateLecturerRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	lecturer, err := c.lecturerService.UpdateLecturer(ctx, ctx.Param("id"), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(lecturer, "Lecturer updated"))
}

// DeleteLecturer removes an added lecturer
// @Summary Delete a lecturer
// @Tags lecturers
// @Param id path string true "Lecturer ID"
// @Success 200 {object} dto.APIResponse
// @Failure 403 {object} dto.APIResponse "Permanent lecturer"
// @Router /lecturers/{id} [delete]
func (c *LecturerController) DeleteLecturer(ctx *gin.Context) {
	if err := c.lecturerService.DeleteLecturer(ctx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Lecturer deleted"))
}

// SetLecturerCourses replaces the lecturer's course set
// @Summary Set a lecturer's courses
// @Tags lecturers
// @Accept json
// @Param id path string true "Lecturer ID"
// @Param request body dto.SetLecturerCoursesRequest true "Course ids"
// @Success 200 {object} dto.APIResponse{data=models.Lecturer}
// @Router /lecturers/{id}/courses [put]
func (c *LecturerController) SetLecturerCourses(ctx *gin.Context) {
	var req dto.SetLecturerCoursesRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	lecturer, err := c.lecturerService.SetLecturerCourses(ctx, ctx.Param("id"), req.Courses)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(lecturer, "Courses updated"))
}

// SetLecturerSemesters stores the allowed subset of the submitted semesters
// @Summary Set a lecturer's semesters
// @Tags lecturers
// @Accept json
// @Param id path string true "Lecturer ID"
// @Param request body dto.SetLecturerSemestersRequest true "Semesters"
// @Success 200 {object} dto.APIResponse{data=models.Lecturer}
// @Router /lecturers/{id}/semesters [put]
func (c *LecturerController) SetLecturerSemesters(ctx *gin.Context) {
	var req dto.SetLecturerSemestersRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	lecturer, err := c.lecturerService.SetLecturerSemesters(ctx, ctx.Param("id"), req.Semesters)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(lecturer, "Semesters updated"))
}

// GetLecturerDetails returns the lecturer with its courses resolved
// @Summary Lecturer details
// @Tags lecturers
// @Param id path string true "Lecturer ID"
// @Success 200 {object} dto.APIResponse{data=dto.LecturerDetailsResponse}
// @Router /lecturers/{id}/details [get]
func (c *LecturerController) GetLecturerDetails(ctx *gin.Context) {
	details, err := c.lecturerService.GetLecturerDetails(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(details, ""))
}

// GenerateRandomLecturer adds a random lecturer
// @Summary Generate a random lecturer
// @Tags lecturers
// @Success 201 {object} dto.APIResponse{data=models.Lecturer}
// @Router /lecturers/random [post]
func (c *LecturerController) GenerateRandomLecturer(ctx *gin.Context) {
	lecturer, err := c.lecturerService.GenerateRandomLecturer(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(lecturer, "Random lecturer generated"))
}
