package controllers

import (
	"net/http"

	"github.com/Taha-Code-Hup/OnoTime/internal/app/models"
	"github.com/Taha-Code-Hup/OnoTime/internal/app/models/dto"
	"github.com/Taha-Code-Hup/OnoTime/internal/app/services"
	"github.com/Taha-Code-Hup/OnoTime/internal/middleware"
	"github.com/gin-gonic/gin"
)

// FileController handles study file operations
type FileController struct {
	fileService services.FileService
	viewService services.ViewService
	authService *services.AuthService
}

// NewFileController creates a new FileController
func NewFileController(fileService services.FileService, viewService services.ViewService, authService *services.AuthService) *FileController {
	return &FileController{
		fileService: fileService,
		viewService: viewService,
		authService: authService,
	}
}

// currentUserID returns the logged-in user's id, or empty
func (c *FileController) currentUserID(ctx *gin.Context) string {
	user, err := c.authService.CurrentUser(ctx.Request)
	if err != nil {
		return ""
	}
	return user.ID
}

// GetAllFiles lists every study file
// @Summary List study files
// @Tags files
// @Success 200 {object} dto.APIResponse{data=[]models.StudyFile}
// @Router /files [get]
func (c *FileController) GetAllFiles(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(c.fileService.GetAllFiles(ctx), ""))
}

// GetFileByID retrieves a study file
// @Summary Get a study file
// @Tags files
// @Param id path string true "File ID"
// @Success 200 {object} dto.APIResponse{data=models.StudyFile}
// @Router /files/{id} [get]
func (c *FileController) GetFileByID(ctx *gin.Context) {
	file, err := c.fileService.GetFileByID(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(file, ""))
}

// CreateFile handles study file creation
// @Summary Create a study file
// @Tags files
// @Accept json
// @Param request body dto.FileRequest true "File information"
// @Success 201 {object} dto.APIResponse{data=models.StudyFile}
// @Failure 400 {object} dto.APIResponse "Course required"
// @Router /files [post]
func (c *FileController) CreateFile(ctx *gin.Context) {
	var req dto.FileRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	file, err := c.fileService.CreateFile(ctx, req, c.currentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(file, "File created"))
}

// UpdateFile edits a study file
// @Summary Update a study file
// @Tags files
// @Accept json
// @Param id path string true "File ID"
// @Param request body dto.FileRequest true "File information"
// @Success 200 {object} dto.APIResponse{data=models.StudyFile}
// @Router /files/{id} [put]
func (c *FileController) UpdateFile(ctx *gin.Context) {
	var req dto.FileRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	file, err := c.fileService.UpdateFile(ctx, ctx.Param("id"), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(file, "File updated"))
}

// UpdateFileStatus changes a file's review status
// @Summary Change a study file's status
// @Tags files
// @Accept json
// @Param id path string true "File ID"
// @Param request body dto.UpdateFileStatusRequest true "Status"
// @Success 200 {object} dto.APIResponse{data=models.StudyFile}
// @Router /files/{id}/status [put]
func (c *FileController) UpdateFileStatus(ctx *gin.Context) {
	var req dto.UpdateFileStatusRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	file, err := c.fileService.UpdateFileStatus(ctx, ctx.Param("id"), models.FileStatus(req.Status))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(file, "Status updated"))
}

// DeleteFile removes a study file
// @Summary Delete a study file
// @Tags files
// @Param id path string true "File ID"
// @Success 200 {object} dto.APIResponse
// @Router /files/{id} [delete]
func (c *FileController) DeleteFile(ctx *gin.Context) {
	if err := c.fileService.DeleteFile(ctx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "File deleted"))
}

// RecordView counts a file view once per visit
// @Summary Record a study file view
// @Tags files
// @Accept json
// @Param id path string true "File ID"
// @Param request body dto.ViewRequest false "Visit and course"
// @Success 200 {object} dto.APIResponse{data=dto.ViewResponse}
// @Router /files/{id}/views [post]
func (c *FileController) RecordView(ctx *gin.Context) {
	var req dto.ViewRequest
	if ctx.Request.ContentLength != 0 && !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.viewService.IncrementFileView(ctx, ctx.Param("id"), req.CourseID, req.VisitID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}

// GenerateRandomFile adds a random study file
// @Summary Generate a random study file
// @Tags files
// @Success 201 {object} dto.APIResponse{data=models.StudyFile}
// @Router /files/random [post]
func (c *FileController) GenerateRandomFile(ctx *gin.Context) {
	file, err := c.fileService.GenerateRandomFile(ctx, c.currentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(file, "Random file generated"))
}
