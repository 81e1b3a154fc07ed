package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ForwardFailedMessage is the only error text a gateway client ever sees.
const ForwardFailedMessage = "Failed to process request."

// ErrorBody is the JSON error envelope used by every /api endpoint
type ErrorBody struct {
	Error string `json:"error"`
}

// Relay writes an upstream JSON body back to the client byte for byte
func Relay(c *gin.Context, body []byte) {
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// ForwardFailed answers with the fixed generic failure (500)
func ForwardFailed(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorBody{Error: ForwardFailedMessage})
}

// Error writes an arbitrary status with an error message
func Error(c *gin.Context, httpStatus int, message string) {
	c.AbortWithStatusJSON(httpStatus, ErrorBody{Error: message})
}

// Success writes data as JSON with 200
func Success(c *gin.Context, data interface{}) {
	if data == nil {
		data = struct{}{}
	}
	c.JSON(http.StatusOK, data)
}
