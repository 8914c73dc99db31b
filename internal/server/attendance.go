package server

import (
	"net/http"
	"strings"

	attendancedomain "github.com/clubarqueros/clubops/internal/attendance/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) RecordAttendance(c *gin.Context) {
	var req struct {
		MemberID string `json:"member_id"`
		Date     string `json:"date"`
		Site     string `json:"site"`
		Shift    string `json:"shift"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.attendanceSvc.Record(c.Request.Context(), attendancedomain.RecordAttendanceRequest{
		MemberID: strings.TrimSpace(req.MemberID),
		Date:     req.Date,
		Site:     req.Site,
		Shift:    req.Shift,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListAttendance(c *gin.Context) {
	var query struct {
		MemberID string `form:"member_id"`
		Date     string `form:"date"`
		Site     string `form:"site"`
		Limit    int    `form:"limit"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.attendanceSvc.List(c.Request.Context(), attendancedomain.ListAttendanceRequest{
		MemberID: query.MemberID,
		Date:     query.Date,
		Site:     query.Site,
		Limit:    query.Limit,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) TodayAttendance(c *gin.Context) {
	resp, err := s.attendanceSvc.Today(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
