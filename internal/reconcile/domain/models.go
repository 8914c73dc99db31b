package domain

import (
	"context"
	"errors"
	"time"

	ledgerdomain "github.com/clubarqueros/clubops/internal/ledger/domain"
)

// Receipt is the value object handed to renderers (PDF, WhatsApp text)
// after a successful settlement. The engine never renders anything itself.
type Receipt struct {
	Number     string    `json:"number"`
	Date       time.Time `json:"date"`
	MemberName string    `json:"member_name"`
	Concept    string    `json:"concept"`
	Amount     int64     `json:"amount"`
	Method     string    `json:"method"`
	Period     string    `json:"period"`
	Note       string    `json:"note,omitempty"`
}

type SettleRequest struct {
	DebtID string
	Method string
	// NewAmount, NewConcept and Note adjust the record at the moment of
	// confirmation; nil leaves the stored value untouched.
	NewAmount  *int64
	NewConcept *string
	Note       *string
}

type Service interface {
	Settle(ctx context.Context, req SettleRequest) (Receipt, error)
}

// ReceiptFromRecord rebuilds the receipt of an already-settled record so it
// can be re-rendered later. Reports false for unsettled records.
func ReceiptFromRecord(record ledgerdomain.PaymentRecord) (Receipt, bool) {
	if !record.IsSettled() || record.SettledAt == nil {
		return Receipt{}, false
	}
	method := ""
	if record.Method != nil {
		method = *record.Method
	}
	return Receipt{
		Number:     record.ReceiptNumber,
		Date:       *record.SettledAt,
		MemberName: record.MemberName,
		Concept:    record.Concept,
		Amount:     record.Amount,
		Method:     method,
		Period:     record.Period,
		Note:       record.Note,
	}, true
}

var (
	ErrNotFound       = errors.New("debt_not_found")
	ErrAlreadySettled = errors.New("already_settled")
	ErrInvalidMethod  = errors.New("invalid_method")
	ErrInvalidAmount  = errors.New("invalid_amount")
)
