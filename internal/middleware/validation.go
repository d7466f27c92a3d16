package middleware

import (
	"net/http"

	"github.com/Taha-Code-Hup/OnoTime/internal/app/models/dto"
	"github.com/Taha-Code-Hup/OnoTime/internal/pkg/validation"
	"github.com/gin-gonic/gin"
)

// BindJSON binds and validates the request body into obj. On failure it
// writes a 400 response listing the invalid fields and returns false.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")
		if fields := validation.Messages(err); len(fields) > 0 {
			errorDetail = errorDetail.WithDetails(fields)
		} else {
			errorDetail = errorDetail.WithDetails(err.Error())
		}
		respond(c, http.StatusBadRequest, errorDetail)
		return false
	}
	return true
}
