package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"item-store/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorDetail is one entry of a 422 response body.
type ErrorDetail struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

func handleNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"detail": service.NotFoundMessage})
}

func handleInvalidInput(c *gin.Context, details ...ErrorDetail) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": details})
}

func handleInternalServerError(c *gin.Context, err error) {
	if err == nil {
		err = errors.New("unknown error")
	}
	zap.S().Errorw(
		"Internal server error",
		"error", err,
		"route", c.FullPath(),
	)
	c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal Server Error"})
}

func handleInvalidID(c *gin.Context) {
	handleInvalidInput(c, ErrorDetail{
		Loc:  []string{"path", "item_id"},
		Msg:  "value is not a valid integer",
		Type: "type_error.integer",
	})
}

func handleBindError(c *gin.Context, err error) {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		handleInvalidInput(c, ErrorDetail{
			Loc:  []string{"body", typeErr.Field},
			Msg:  "str type expected",
			Type: "type_error.str",
		})
		return
	}
	handleInvalidInput(c, ErrorDetail{
		Loc:  []string{"body"},
		Msg:  err.Error(),
		Type: "value_error.jsondecode",
	})
}

// handleServiceError maps Record Service outcomes to responses.
func handleServiceError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		details := make([]ErrorDetail, len(verr.Fields))
		for i, f := range verr.Fields {
			details[i] = ErrorDetail{
				Loc:  []string{"body", f.Field},
				Msg:  f.Message(),
				Type: validationType(f.Tag),
			}
		}
		handleInvalidInput(c, details...)
	case errors.Is(err, service.ErrItemNotFound):
		handleNotFound(c)
	default:
		handleInternalServerError(c, err)
	}
}

func validationType(tag string) string {
	switch tag {
	case "required":
		return "value_error.missing"
	case "min":
		return "value_error.any_str.min_length"
	default:
		return "value_error"
	}
}
