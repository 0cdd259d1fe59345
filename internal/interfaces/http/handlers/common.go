// Package handlers contains the HTTP request handlers for the laudo backend.
// Handlers translate between the wire representation and the application
// services; no domain logic lives here.
package handlers

import (
	stderrors "errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/CaiooFerreiraa/lab-system-sub001/pkg/errors"
	"github.com/CaiooFerreiraa/lab-system-sub001/pkg/types/common"
)

// respond writes a success envelope with the given status code.
func respond(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, common.APIResponse[interface{}]{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC(),
	})
}

// respondError maps an application error to its HTTP status and writes the
// error envelope.  Server-side failures are masked with the default message
// for their code so internals never leak to callers.
func respondError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	status := errors.HTTPStatusForCode(code)

	detail := &common.ErrorDetail{
		Code:    code.String(),
		Message: err.Error(),
	}
	var ae *errors.AppError
	if errors.IsServerError(code) {
		detail.Message = errors.DefaultMessageForCode(code)
	} else if stderrors.As(err, &ae) {
		detail.Message = ae.Message
		detail.Detail = ae.Detail
	}

	c.AbortWithStatusJSON(status, common.APIResponse[interface{}]{
		Success:   false,
		Error:     detail,
		Timestamp: time.Now().UTC(),
	})
}

// pathID extracts a non-empty ID path parameter or writes a 400.
func pathID(c *gin.Context, name string) (common.ID, bool) {
	v := c.Param(name)
	if v == "" {
		respondError(c, errors.InvalidParam(name+" path parameter is required"))
		return "", false
	}
	return common.ID(v), true
}

// noContent writes an empty 204 response.
func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
