package handlers

import (
	"procasa_backend/internal/validator"
	"procasa_backend/pkg/apperrors"
	"procasa_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// BaseHandler carries the pieces every handler needs: request validation and
// access to the per-request DB handle.
type BaseHandler struct {
	validator *validator.Validator
}

func NewBaseHandler() BaseHandler {
	return BaseHandler{validator: validator.New()}
}

// GetDB pulls the gorm handle injected by DBMiddleware.
func (h *BaseHandler) GetDB(c *gin.Context) *gorm.DB {
	return c.MustGet(string(contextkeys.DBContextKey)).(*gorm.DB)
}

// BindAndValidate decodes the JSON body and runs struct validation,
// writing the error response itself on failure.
func (h *BaseHandler) BindAndValidate(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Malformed JSON body"))
		return false
	}
	if err := h.validator.Validate(obj); err != nil {
		if verr, ok := err.(*validator.ValidationError); ok {
			apperrors.HandleError(c, apperrors.ValidationError(verr.Errors))
		} else {
			apperrors.HandleError(c, err)
		}
		return false
	}
	return true
}
