package handler

import (
	"net/http"
	"strconv"

	"localwear-be/internal/apperror"
	"localwear-be/internal/auth"
	"localwear-be/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps err to its HTTP status and writes {"error": message}.
func respondError(c *gin.Context, err error) {
	status := apperror.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.FromCtx(c.Request.Context()).Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": apperror.PublicMessage(err)})
}

func badRequest(c *gin.Context, err error) {
	respondError(c, apperror.BadRequest("Invalid request: %v", err))
}

func pathID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperror.BadRequest("Invalid %s: %s", name, c.Param(name))
	}
	return uint(id), nil
}

func principal(c *gin.Context) *auth.Principal {
	if p, ok := auth.PrincipalFrom(c.Request.Context()); ok {
		return &p
	}
	return nil
}
