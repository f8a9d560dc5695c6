package response

import (
	"time"

	"github.com/gin-gonic/gin"
)

// Envelope is the stable API wire format.
// Success: {data, meta, error: null}
// Failure: {data: null, meta: null, error: {code, message}}
type Envelope struct {
	Data  interface{} `json:"data"`
	Meta  *Meta       `json:"meta"`
	Error *Error      `json:"error"`
}

type Meta struct {
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Success writes the success envelope with a fresh meta block.
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Envelope{
		Data: data,
		Meta: &Meta{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Version:   "v1",
		},
	})
}

// ErrorResponse writes the error envelope.
func ErrorResponse(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, Envelope{
		Error: &Error{
			Code:    code,
			Message: message,
		},
	})
}
