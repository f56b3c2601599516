package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the wire form of every failure: just the message. Clients
// distinguish success from failure solely by the presence of the "error"
// field, never by HTTP status, so domain errors still ship with 200.
type ErrorBody struct {
	Error string `json:"error"`
}

// Result sends an action's result object as-is.
func Result(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Error converts any error to the {error} envelope. Unrecognized errors are
// masked as internal to keep store details off the wire.
func Error(c *gin.Context, err error) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		appErr = NewCode(ErrInternal)
	}
	c.JSON(http.StatusOK, ErrorBody{Error: appErr.Message})
}
