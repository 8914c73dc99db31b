package server

import (
	"net/http"
	"strings"

	memberdomain "github.com/clubarqueros/clubops/internal/member/domain"
	"github.com/gin-gonic/gin"
)

type memberPayload struct {
	FirstName     string  `json:"first_name"`
	LastName      string  `json:"last_name"`
	DocumentID    string  `json:"document_id"`
	BirthDate     string  `json:"birth_date"`
	Guardian      string  `json:"guardian"`
	WhatsApp      string  `json:"whatsapp"`
	Email         string  `json:"email"`
	Site          string  `json:"site"`
	Plan          string  `json:"plan"`
	Notes         string  `json:"notes"`
	ShirtSize     string  `json:"shirt_size"`
	TrainingGroup string  `json:"training_group"`
	WeightKg      float64 `json:"weight_kg"`
	HeightCm      float64 `json:"height_cm"`
	Active        *bool   `json:"active"`
}

func (s *Server) CreateMember(c *gin.Context) {
	var req memberPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	birthDate, err := parseOptionalDate(req.BirthDate)
	if err != nil {
		AbortWithError(c, newValidationError("birth_date", "invalid_birth_date", "invalid birth_date"))
		return
	}

	resp, err := s.memberSvc.Create(c.Request.Context(), memberdomain.CreateMemberRequest{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		DocumentID:    req.DocumentID,
		BirthDate:     birthDate,
		Guardian:      req.Guardian,
		WhatsApp:      req.WhatsApp,
		Email:         req.Email,
		Site:          req.Site,
		Plan:          req.Plan,
		Notes:         req.Notes,
		ShirtSize:     req.ShirtSize,
		TrainingGroup: req.TrainingGroup,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListMembers(c *gin.Context) {
	var query struct {
		Site          string `form:"site"`
		TrainingGroup string `form:"training_group"`
		Plan          string `form:"plan"`
		Active        string `form:"active"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	active, err := parseOptionalBool(query.Active)
	if err != nil {
		AbortWithError(c, newValidationError("active", "invalid_active", "invalid active"))
		return
	}

	resp, err := s.memberSvc.List(c.Request.Context(), memberdomain.ListMemberRequest{
		Site:          strings.TrimSpace(query.Site),
		TrainingGroup: strings.TrimSpace(query.TrainingGroup),
		Plan:          strings.TrimSpace(query.Plan),
		Active:        active,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetMemberByID(c *gin.Context) {
	resp, err := s.memberSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateMember(c *gin.Context) {
	var req memberPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	birthDate, err := parseOptionalDate(req.BirthDate)
	if err != nil {
		AbortWithError(c, newValidationError("birth_date", "invalid_birth_date", "invalid birth_date"))
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	resp, err := s.memberSvc.Update(c.Request.Context(), memberdomain.UpdateMemberRequest{
		ID:            strings.TrimSpace(c.Param("id")),
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		DocumentID:    req.DocumentID,
		BirthDate:     birthDate,
		Guardian:      req.Guardian,
		WhatsApp:      req.WhatsApp,
		Email:         req.Email,
		Site:          req.Site,
		Plan:          req.Plan,
		Notes:         req.Notes,
		ShirtSize:     req.ShirtSize,
		TrainingGroup: req.TrainingGroup,
		WeightKg:      req.WeightKg,
		HeightCm:      req.HeightCm,
		Active:        active,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeactivateMember(c *gin.Context) {
	resp, err := s.memberSvc.Deactivate(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
