package response

import (
	"errors"
	"net/http"

	"github.com/Freeeeeet/skischool_office/internal/pkg/apperror"
	"github.com/gin-gonic/gin"
)

// ErrorResponse JSON-тело ответа с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Error отправляет ошибку клиенту. AppError отдаётся со своим кодом и сообщением,
// остальные как 500; исходная ошибка сохраняется в c.Errors для логирования.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Code, ErrorResponse{Error: appErr.Message})
		return
	}

	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// BadRequest ошибка разбора или валидации запроса
func BadRequest(c *gin.Context, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	c.JSON(http.StatusBadRequest, resp)
}
