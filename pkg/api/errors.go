package api

import (
	"github.com/gin-gonic/gin"

	"github.com/codeready-toolchain/ctrleval/pkg/models"
)

// writeError renders the spec.md §6 failure envelope — error, errorKind,
// message, and the request's correlationId — with the matching HTTP
// status from ErrorKind.HTTPStatus().
func writeError(c *gin.Context, kind models.ErrorKind, message string) {
	c.JSON(kind.HTTPStatus(), gin.H{
		"error":         true,
		"errorKind":     kind,
		"message":       message,
		"correlationId": correlationIDFromContext(c),
	})
}
