package utils

import (
	"net/http"
)

type GenericResponse struct {
	Error   bool        `json:"error"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
	Status  int         `json:"status"`
}

// APIResponse builds the envelope every JSON endpoint returns.
// Error responses default to 400, success responses to 200.
func APIResponse(errorFlag bool, message string, data interface{}, status ...int) GenericResponse {
	code := http.StatusOK
	if len(status) > 0 {
		code = status[0]
	} else if errorFlag {
		code = http.StatusBadRequest
	}

	return GenericResponse{
		Error:   errorFlag,
		Message: message,
		Data:    data,
		Status:  code,
	}
}

func ErrorResponse(status int, message string) GenericResponse {
	return APIResponse(true, message, nil, status)
}
