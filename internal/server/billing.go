package server

import (
	"net/http"
	"strconv"

	actorcontext "github.com/clubarqueros/clubops/internal/actorcontext"
	"github.com/gin-gonic/gin"
)

func (s *Server) GetCurrentPeriod(c *gin.Context) {
	period, err := s.resolver.Current(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"period":     period.Label(),
		"cutoff_day": s.settingSvc.CutoffDay(c.Request.Context()),
	}})
}

func (s *Server) GenerateDebts(c *gin.Context) {
	var req struct {
		Period string `json:"period"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			AbortWithError(c, invalidRequestError())
			return
		}
	}

	report, err := s.generator.GenerateForPeriod(c.Request.Context(), req.Period)
	if err != nil {
		// Partial progress is still a fact worth reporting alongside the
		// failure; a retry only targets the members left unbilled.
		c.JSON(http.StatusInternalServerError, gin.H{
			"data":  report,
			"error": gin.H{"type": "partial_failure", "message": err.Error()},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": report})
}

func (s *Server) GetCutoffDay(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"cutoff_day": s.settingSvc.CutoffDay(c.Request.Context()),
	}})
}

func (s *Server) SetCutoffDay(c *gin.Context) {
	var req struct {
		CutoffDay int `json:"cutoff_day"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	actor := actorcontext.ActorFromContext(c.Request.Context())
	if err := s.settingSvc.SetCutoffDay(c.Request.Context(), req.CutoffDay, actor); err != nil {
		AbortWithError(c, err)
		return
	}

	s.auditSvc.Record(c.Request.Context(), "settings", "setting.cutoff_day", strconv.Itoa(req.CutoffDay), actor, map[string]any{
		"cutoff_day": req.CutoffDay,
	})
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"cutoff_day": req.CutoffDay}})
}
