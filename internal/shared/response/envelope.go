// Package response writes the uniform JSON envelope used by every endpoint.
package response

import (
	"github.com/gin-gonic/gin"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Envelope is the body of every API response.
type Envelope struct {
	Status  string            `json:"status"`
	Message *string           `json:"message"`
	Data    any               `json:"data"`
	Errors  map[string]string `json:"errors"`
}

// New builds an envelope whose status label is derived from the HTTP code.
func New(code int, message string, data any, errs map[string]string) Envelope {
	env := Envelope{Status: StatusLabel(code), Data: data}
	if message != "" {
		env.Message = &message
	}
	if len(errs) > 0 {
		env.Errors = errs
	}
	return env
}

// StatusLabel returns "success" below 400 and "error" otherwise.
func StatusLabel(code int) string {
	if code < 400 {
		return StatusSuccess
	}
	return StatusError
}

// Success writes data with the given status code.
func Success(c *gin.Context, code int, data any) {
	c.JSON(code, New(code, "", data, nil))
}

// Failure writes an error envelope and aborts the handler chain.
func Failure(c *gin.Context, code int, message string, errs map[string]string) {
	c.AbortWithStatusJSON(code, New(code, message, nil, errs))
}
