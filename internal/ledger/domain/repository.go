package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type ListFilter struct {
	Period   string
	Status   Status
	MemberID snowflake.ID
	From     *time.Time
	To       *time.Time
	Limit    int
}

type SummaryFilter struct {
	Period string
	From   *time.Time
	To     *time.Time
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, record *PaymentRecord) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*PaymentRecord, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter) ([]*PaymentRecord, error)
	// RecurringMemberIDsForPeriod returns the identifiers of members that
	// already hold a recurring-charge record for the period, settled or not.
	RecurringMemberIDsForPeriod(ctx context.Context, db *gorm.DB, period string) ([]snowflake.ID, error)
	Update(ctx context.Context, db *gorm.DB, record *PaymentRecord) error
	SummaryByConcept(ctx context.Context, db *gorm.DB, filter SummaryFilter) ([]ConceptSummary, error)
}
