package controllers

import (
	"net/http"
	"strconv"

	"github.com/Taha-Code-Hup/OnoTime/internal/app/models/dto"
	"github.com/Taha-Code-Hup/OnoTime/internal/app/services"
	"github.com/gin-gonic/gin"
)

// PopularityController serves the popular items view
type PopularityController struct {
	popularityService services.PopularityService
}

// NewPopularityController creates a new PopularityController
func NewPopularityController(popularityService services.PopularityService) *PopularityController {
	return &PopularityController{popularityService: popularityService}
}

// GetPopular returns the top courses and files by views
// @Summary Popular courses and files
// @Tags popular
// @Produce json
// @Param top query int false "Number of items per ranking" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PopularResponse}
// @Failure 400 {object} dto.APIResponse "Invalid top"
// @Router /popular [get]
func (c *PopularityController) GetPopular(ctx *gin.Context) {
	top := 0
	if raw := ctx.Query("top"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid top").WithField("top")
			errorDetail = errorDetail.WithDetails("top must be a non-negative number").WithSeverity(dto.ErrorSeverityWarning)
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		top = n
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(c.popularityService.GetPopular(ctx, top), ""))
}
