package borrow

import (
	"time"

	"github.com/sirawit/asset-borrowing/internal"
)

// Borrow lifecycle states. A record starts Pending and moves exactly once to
// Approved or Disapproved; both are terminal.
const (
	StatusPending     = "Pending"
	StatusApproved    = "Approved"
	StatusDisapproved = "Disapproved"
)

// Borrow tracks one asset-borrow attempt through its lifecycle.
type Borrow struct {
	ID          int64      `json:"id" gorm:"primaryKey"`
	AssetID     int64      `json:"asset_id" gorm:"column:asset_id;not null"`
	UserID      int64      `json:"user_id" gorm:"column:user_id;not null"`
	LenderID    *int64     `json:"lender_id,omitempty" gorm:"column:lender_id"`
	BorrowDate  time.Time  `json:"borrow_date" gorm:"column:borrow_date;type:date"`
	ReturnDate  time.Time  `json:"return_date" gorm:"column:return_date;type:date"`
	Status      string     `json:"status" gorm:"default:Pending"`
	Returned    bool       `json:"returned" gorm:"not null;default:false"`
	ProcessedAt *time.Time `json:"processed_at,omitempty" gorm:"column:processed_at"`
	CreatedAt   time.Time  `json:"created_at" gorm:"column:created_at;default:now()"`
}

func (Borrow) TableName() string {
	return "borrowing"
}

func (b *Borrow) CanBeDecided() bool {
	return b.Status == StatusPending
}

// IsActive reports whether this record blocks the user from submitting a new
// request: not yet returned and not terminally disapproved.
func (b *Borrow) IsActive() bool {
	return (b.Status == StatusPending || b.Status == StatusApproved) && !b.Returned
}

func IsValidDecision(status string) bool {
	return status == StatusApproved || status == StatusDisapproved
}

// HistoryRecord is a read-only projection of a processed borrow joined with
// the asset name and borrower username.
type HistoryRecord struct {
	ID         int64     `json:"id"`
	AssetName  string    `json:"asset_name"`
	Username   string    `json:"username"`
	BorrowDate time.Time `json:"borrow_date"`
	ReturnDate time.Time `json:"return_date"`
	Status     string    `json:"status"`
	Returned   bool      `json:"returned"`
}

// PendingRequest is the lender triage projection of an unprocessed borrow.
type PendingRequest struct {
	ID         int64     `json:"id"`
	AssetID    int64     `json:"asset_id"`
	AssetName  string    `json:"asset_name"`
	Username   string    `json:"username"`
	BorrowDate time.Time `json:"borrow_date"`
	ReturnDate time.Time `json:"return_date"`
	Status     string    `json:"status"`
}

// ActiveCheck is the per-user summary of unresolved borrow requests.
type ActiveCheck struct {
	HasActiveRequest bool      `json:"hasActiveRequest"`
	Requests         []*Borrow `json:"requests"`
}

// Repository is the data access contract for the lifecycle engine. Submit and
// Decide are atomic: either every write inside them lands or none do.
type Repository interface {
	Submit(rec *Borrow) error
	Decide(borrowID, lenderID int64, decision string) (*Borrow, error)
	ActiveForUser(userID int64) ([]*Borrow, error)
	HistoryForUser(userID int64) ([]HistoryRecord, error)
	HistoryForLender(lenderID int64) ([]HistoryRecord, error)
	HistoryAll() ([]HistoryRecord, error)
	PendingQueue() ([]PendingRequest, error)
}

var (
	ErrActiveBorrowExists = internal.NewConflictError("You already have an active borrow request. Only one asset at a time is allowed.", internal.ErrCodeActiveBorrow)
	ErrAssetNotFound      = internal.NewNotFoundError("Asset not found", internal.ErrCodeAssetNotFound)
	ErrAssetUnavailable   = internal.NewValidationError("Asset not available", internal.ErrCodeAssetUnavailable)
	// ErrBorrowNotFound covers both a missing record and one already
	// processed; the two are indistinguishable on purpose.
	ErrBorrowNotFound = internal.NewNotFoundError("Borrow request not found", internal.ErrCodeBorrowNotFound)
	ErrLenderRequired = internal.NewForbiddenError("Forbidden: lender access required", internal.ErrCodeRoleNotAllowed)
	ErrRoleForbidden  = internal.NewForbiddenError("Forbidden", internal.ErrCodeRoleNotAllowed)
)
