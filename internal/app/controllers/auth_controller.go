// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"

	"github.com/Taha-Code-Hup/OnoTime/internal/app/models/dto"
	"github.com/Taha-Code-Hup/OnoTime/internal/app/services"
	"github.com/Taha-Code-Hup/OnoTime/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AuthController handles the current-user endpoints
type AuthController struct {
	authService *services.AuthService
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		logger:      logger,
	}
}

// Login handles user login
// @Summary Log in
// @Description Records the current user. With remember set the user survives browser restarts.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login information"
// @Success 200 {object} dto.APIResponse{data=models.CurrentUser}
// @Failure 400 {object} dto.APIResponse "Invalid request format"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	c.logger.Debug().Msg("Login endpoint called")

	var req dto.LoginRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	user, err := c.authService.Login(ctx.Writer, ctx.Request, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(user, "Logged in"))
}

// Logout clears the current user
// @Summary Log out
// @Tags auth
// @Success 200 {object} dto.APIResponse
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	if err := c.authService.Logout(ctx.Writer, ctx.Request); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Logged out"))
}

// Me returns the current user
// @Summary Current user
// @Tags auth
// @Success 200 {object} dto.APIResponse{data=models.CurrentUser}
// @Failure 401 {object} dto.APIResponse "Not logged in"
// @Router /auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	user, err := c.authService.CurrentUser(ctx.Request)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(user, ""))
}
