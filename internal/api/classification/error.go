package classification

import (
	"TotemIA/pkg/response"
	"net/http"
)

var (
	ErrInvalidImage        = response.NewError(http.StatusBadRequest, "image could not be decoded")
	ErrInternalServerError = response.NewError(http.StatusInternalServerError, "internal server error")
)
