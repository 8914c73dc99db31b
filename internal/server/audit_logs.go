package server

import (
	"net/http"

	auditdomain "github.com/clubarqueros/clubops/internal/audit/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) ListAuditLogs(c *gin.Context) {
	var query struct {
		EntityID string `form:"entity_id"`
		Action   string `form:"action"`
		Actor    string `form:"actor"`
		Limit    int    `form:"limit"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.auditSvc.List(c.Request.Context(), auditdomain.ListAuditLogRequest{
		EntityID: query.EntityID,
		Action:   query.Action,
		Actor:    query.Actor,
		Limit:    query.Limit,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
