package server

import (
	"net/http"
	"strings"

	ledgerdomain "github.com/clubarqueros/clubops/internal/ledger/domain"
	reconciledomain "github.com/clubarqueros/clubops/internal/reconcile/domain"
	"github.com/gin-gonic/gin"
)

type createChargeRequest struct {
	MemberID  string `json:"member_id"`
	Concept   string `json:"concept"`
	Amount    int64  `json:"amount"`
	Method    string `json:"method"`
	Note      string `json:"note"`
	Period    string `json:"period"`
	Confirmed bool   `json:"confirmed"`
}

func (s *Server) CreateCharge(c *gin.Context) {
	var req createChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.ledgerSvc.CreateCharge(c.Request.Context(), ledgerdomain.CreateChargeRequest{
		MemberID:  strings.TrimSpace(req.MemberID),
		Concept:   req.Concept,
		Amount:    req.Amount,
		Method:    req.Method,
		Note:      req.Note,
		Period:    req.Period,
		Confirmed: req.Confirmed,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListCharges(c *gin.Context) {
	var query struct {
		Period   string `form:"period"`
		Status   string `form:"status"`
		MemberID string `form:"member_id"`
		From     string `form:"from"`
		To       string `form:"to"`
		Limit    int    `form:"limit"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	from, err := parseOptionalTime(query.From, false)
	if err != nil {
		AbortWithError(c, newValidationError("from", "invalid_from", "invalid from"))
		return
	}
	to, err := parseOptionalTime(query.To, true)
	if err != nil {
		AbortWithError(c, newValidationError("to", "invalid_to", "invalid to"))
		return
	}

	resp, err := s.ledgerSvc.List(c.Request.Context(), ledgerdomain.ListChargeRequest{
		Period:   query.Period,
		Status:   query.Status,
		MemberID: query.MemberID,
		From:     from,
		To:       to,
		Limit:    query.Limit,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ChargeSummary(c *gin.Context) {
	var query struct {
		Period string `form:"period"`
		From   string `form:"from"`
		To     string `form:"to"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	from, err := parseOptionalTime(query.From, false)
	if err != nil {
		AbortWithError(c, newValidationError("from", "invalid_from", "invalid from"))
		return
	}
	to, err := parseOptionalTime(query.To, true)
	if err != nil {
		AbortWithError(c, newValidationError("to", "invalid_to", "invalid to"))
		return
	}

	resp, err := s.ledgerSvc.Summary(c.Request.Context(), ledgerdomain.SummaryRequest{
		Period: query.Period,
		From:   from,
		To:     to,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetChargeByID(c *gin.Context) {
	resp, err := s.ledgerSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type settleChargeRequest struct {
	Method     string  `json:"method"`
	NewAmount  *int64  `json:"new_amount"`
	NewConcept *string `json:"new_concept"`
	Note       *string `json:"note"`
}

func (s *Server) SettleCharge(c *gin.Context) {
	var req settleChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	receipt, err := s.reconcileSvc.Settle(c.Request.Context(), reconciledomain.SettleRequest{
		DebtID:     strings.TrimSpace(c.Param("id")),
		Method:     req.Method,
		NewAmount:  req.NewAmount,
		NewConcept: req.NewConcept,
		Note:       req.Note,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": receipt})
}
