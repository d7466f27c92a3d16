package controllers

import (
	"net/http"

	"github.com/Taha-Code-Hup/OnoTime/internal/app/models/dto"
	"github.com/Taha-Code-Hup/OnoTime/internal/app/services"
	"github.com/Taha-Code-Hup/OnoTime/internal/middleware"
	"github.com/gin-gonic/gin"
)

// CourseController handles course-related operations
type CourseController struct {
	courseService services.CourseService
	viewService   services.ViewService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService services.CourseService, viewService services.ViewService) *CourseController {
	return &CourseController{
		courseService: courseService,
		viewService:   viewService,
	}
}

// GetAllCourses lists every course
// @Summary List courses
// @Tags courses
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Course}
// @Router /courses [get]
func (c *CourseController) GetAllCourses(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(c.courseService.GetAllCourses(ctx), ""))
}

// GetCourseByID retrieves a course
// @Summary Get a course
// @Tags courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} dto.APIResponse{data=models.Course}
// @Failure 404 {object} dto.APIResponse "Course not found"
// @Router /courses/{id} [get]
func (c *CourseController) GetCourseByID(ctx *gin.Context) {
	course, err := c.courseService.GetCourseByID(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(course, ""))
}

// CreateCourse handles course creation
// @Summary Create a course
// @Tags courses
// @Accept json
// @Produce json
// @Param request body dto.CourseRequest true "Course information"
// @Success 201 {object} dto.APIResponse{data=models.Course}
// @Failure 409 {object} dto.APIResponse "Duplicate course code"
// @Router /courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req dto.CourseRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	course, err := c.courseService.CreateCourse(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(course, "Course created"))
}

// UpdateCourse edits a course
// @Summary Update a course
// @Tags courses
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param request body dto.CourseRequest true "Course information"
// @Success 200 {object} dto.APIResponse{data=models.Course}
// @Router /courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	var req dto.CourseRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	course, err := c.courseService.UpdateCourse(ctx, ctx.Param("id"), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(course, "Course updated"))
}

// AssignLecturer moves the course to another lecturer
// @Summary Assign a course's lecturer
// @Tags courses
// @Accept json
// @Param id path string true "Course ID"
// @Param request body dto.AssignLecturerRequest true "Lecturer, empty to unassign"
// @Success 200 {object} dto.APIResponse{data=models.Course}
// @Router /courses/{id}/lecturer [put]
func (c *CourseController) AssignLecturer(ctx *gin.Context) {
	var req dto.AssignLecturerRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	course, err := c.courseService.AssignLecturer(ctx, ctx.Param("id"), req.LecturerID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(course, "Lecturer assigned"))
}

// DeleteCourse removes a course
// @Summary Delete a course
// @Tags courses
// @Param id path string true "Course ID"
// @Success 200 {object} dto.APIResponse
// @Router /courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	if err := c.courseService.DeleteCourse(ctx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Course deleted"))
}

// GetCourseDetails returns the course with lecturer, roster and files resolved
// @Summary Course details
// @Tags courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.CourseDetailsResponse}
// @Router /courses/{id}/details [get]
func (c *CourseController) GetCourseDetails(ctx *gin.Context) {
	details, err := c.courseService.GetCourseDetails(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(details, ""))
}

// RecordView counts a course view once per visit
// @Summary Record a course view
// @Tags courses
// @Accept json
// @Param id path string true "Course ID"
// @Param request body dto.ViewRequest false "Visit"
// @Success 200 {object} dto.APIResponse{data=dto.ViewResponse}
// @Router /courses/{id}/views [post]
func (c *CourseController) RecordView(ctx *gin.Context) {
	var req dto.ViewRequest
	if ctx.Request.ContentLength != 0 && !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.viewService.IncrementCourseView(ctx, ctx.Param("id"), req.VisitID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}

// GenerateRandomCourse adds a random course
// @Summary Generate a random course
// @Tags courses
// @Success 201 {object} dto.APIResponse{data=models.Course}
// @Router /courses/random [post]
func (c *CourseController) GenerateRandomCourse(ctx *gin.Context) {
	course, err := c.courseService.GenerateRandomCourse(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(course, "Random course generated"))
}
