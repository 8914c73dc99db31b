package server

import (
	"io"
	"net/http"
	"strings"

	reconciledomain "github.com/clubarqueros/clubops/internal/reconcile/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) DownloadReceipt(c *gin.Context) {
	record, err := s.ledgerSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	receipt, ok := reconciledomain.ReceiptFromRecord(record)
	if !ok {
		AbortWithError(c, newValidationError("id", "not_settled", "record is not settled"))
		return
	}

	reader, err := s.pdfProvider.GenerateReceipt(c.Request.Context(), receipt)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	payload, err := io.ReadAll(reader)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="recibo-`+receipt.Number+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", payload)
}
