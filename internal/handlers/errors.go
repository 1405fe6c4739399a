package handlers

import (
	"errors"
	"net/http"

	"backoffice-service/internal/dto"
	"backoffice-service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// writeError maps the service taxonomy onto HTTP. Nothing is retried here;
// the client decides.
func writeError(c *gin.Context, log *zap.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, dto.NewValidationError(err.Error(), []dto.FieldError{}))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.NewNotFoundError(err.Error()))
	case errors.Is(err, service.ErrReference):
		c.JSON(http.StatusUnprocessableEntity, dto.NewReferenceError(err.Error()))
	case errors.Is(err, service.ErrInsufficientStock):
		c.JSON(http.StatusConflict, dto.NewInsufficientStockError(err.Error()))
	case errors.Is(err, service.ErrConstraint):
		c.JSON(http.StatusConflict, dto.NewConflictError(err.Error()))
	case errors.Is(err, service.ErrStorage):
		log.Error("storage failure", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, dto.NewStorageError())
	default:
		log.Error("unexpected error", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.NewInternalError(""))
	}
}

func badRequest(c *gin.Context, log *zap.Logger, msg string, err error) {
	log.Warn(msg, zap.Error(err))
	c.JSON(http.StatusBadRequest, dto.NewValidationError(msg, fieldErrors(err)))
}

// fieldErrors flattens binding failures into per-field entries.
func fieldErrors(err error) []dto.FieldError {
	out := []dto.FieldError{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return out
	}
	for _, fe := range verrs {
		out = append(out, dto.FieldError{
			Field:   fe.Namespace(),
			Message: fe.Error(),
			Tag:     fe.Tag(),
		})
	}
	return out
}
