package controllers

import (
	"net/http"

	"github.com/Taha-Code-Hup/OnoTime/internal/app/models/dto"
	"github.com/Taha-Code-Hup/OnoTime/internal/app/services"
	"github.com/Taha-Code-Hup/OnoTime/internal/middleware"
	"github.com/gin-gonic/gin"
)

// StudentController handles student-related operations
type StudentController struct {
	studentService services.StudentService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.StudentService) *StudentController {
	return &StudentController{
		studentService: studentService,
	}
}

// GetAllStudents lists every student
// @Summary List students
// @Tags students
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Student}
// @Router /students [get]
func (c *StudentController) GetAllStudents(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(c.studentService.GetAllStudents(ctx), ""))
}

// GetStudentByID retrieves a student by national id
// @Summary Get a student
// @Tags students
// @Produce json
// @Param id path string true "National ID"
// @Success 200 {object} dto.APIResponse{data=models.Student}
// @Failure 404 {object} dto.APIResponse "Student not found"
// @Router /students/{id} [get]
func (c *StudentController) GetStudentByID(ctx *gin.Context) {
	student, err := c.studentService.GetStudentByID(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(student, ""))
}

// CreateStudent handles student creation
// @Summary Create a student
// @Tags students
// @Accept json
// @Produce json
// @Param request body dto.CreateStudentRequest true "Student information"
// @Success 201 {object} dto.APIResponse{data=models.Student}
// @Failure 400 {object} dto.APIResponse "Invalid request data"
// @Failure 409 {object} dto.APIResponse "Student ID already exists"
// @Router /students [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	student, err := c.studentService.CreateStudent(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(student, "Student created"))
}

// UpdateStudent edits a student; the id cannot change
// @Summary Update a student
// @Tags students
// @Accept json
// @Produce json
// @Param id path string true "National ID"
// @Param request body dto.UpdateStudentRequest true "Student information"
// @Success 200 {object} dto.APIResponse{data=models.Student}
// @Router /students/{id} [put]
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	var req dto.UpdateStudentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	student, err := c.studentService.UpdateStudent(ctx, ctx.Param("id"), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(student, "Student updated"))
}

// DeleteStudent removes a student
// @Summary Delete a student
// @Tags students
// @Param id path string true "National ID"
// @Success 200 {object} dto.APIResponse
// @Router /students/{id} [delete]
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	if err := c.studentService.DeleteStudent(ctx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Student deleted"))
}

// GenerateRandomStudent adds a random student
// @Summary Generate a random student
// @Tags students
// @Success 201 {object} dto.APIResponse{data=models.Student}
// @Router /students/random [post]
func (c *StudentController) GenerateRandomStudent(ctx *gin.Context) {
	student, err := c.studentService.GenerateRandomStudent(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(student, "Random student generated"))
}
