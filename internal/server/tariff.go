package server

import (
	"net/http"

	tariffdomain "github.com/clubarqueros/clubops/internal/tariff/domain"
	"github.com/gin-gonic/gin"
)

type tariffPayload struct {
	Concept string `json:"concept"`
	Price   int64  `json:"price"`
}

func (s *Server) ListTariffs(c *gin.Context) {
	resp, err := s.tariffSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpsertTariff(c *gin.Context) {
	var req tariffPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.tariffSvc.Upsert(c.Request.Context(), tariffdomain.UpsertTariffRequest{
		Concept: req.Concept,
		Price:   req.Price,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ReplaceTariffs(c *gin.Context) {
	var req struct {
		Tariffs []tariffPayload `json:"tariffs"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	reqs := make([]tariffdomain.UpsertTariffRequest, 0, len(req.Tariffs))
	for _, tariff := range req.Tariffs {
		reqs = append(reqs, tariffdomain.UpsertTariffRequest{
			Concept: tariff.Concept,
			Price:   tariff.Price,
		})
	}

	resp, err := s.tariffSvc.ReplaceAll(c.Request.Context(), reqs)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
