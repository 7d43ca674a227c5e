package postgres

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirawit/asset-borrowing/internal/asset"
	"github.com/sirawit/asset-borrowing/internal/borrow"
	"gorm.io/gorm"
)

// BorrowRepository implements the borrow.Repository interface using GORM.
// The two lifecycle mutations run inside transactions with conditional
// updates, so partial writes can never leave an asset status out of step
// with its borrowing record.
type BorrowRepository struct {
	db *gorm.DB
}

func NewBorrowRepository(db *gorm.DB) borrow.Repository {
	return &BorrowRepository{db: db}
}

var activeStatuses = []string{borrow.StatusPending, borrow.StatusApproved}

// Submit inserts a Pending record and claims the asset in one transaction.
// The asset claim is a conditional update keyed on Status=Available, which is
// the compare-and-swap that prevents two concurrent requests from both
// reserving the same asset.
func (r *BorrowRepository) Submit(rec *borrow.Borrow) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&borrow.Borrow{}).
			Where("user_id = ? AND status IN ? AND returned = ?", rec.UserID, activeStatuses, false).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return borrow.ErrActiveBorrowExists
		}

		res := tx.Model(&asset.Asset{}).
			Where("id = ? AND status = ?", rec.AssetID, asset.StatusAvailable).
			Update("status", asset.StatusPending)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var a asset.Asset
			if err := tx.First(&a, rec.AssetID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return borrow.ErrAssetNotFound
				}
				return err
			}
			return borrow.ErrAssetUnavailable
		}

		if err := tx.Create(rec).Error; err != nil {
			// two submissions by the same user can race past the count
			// check; the partial unique index catches the loser
			if isActiveBorrowConflict(err) {
				return borrow.ErrActiveBorrowExists
			}
			return err
		}
		return nil
	})
}

const oneActivePerUserConstraint = "borrowing_one_active_per_user"

func isActiveBorrowConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		pgErr.Code == "23505" &&
		pgErr.ConstraintName == oneActivePerUserConstraint
}

// Decide flips a Pending record to its terminal state and moves the asset
// accordingly. The update is guarded by status='Pending' and checked via
// RowsAffected: under concurrent calls exactly one wins, the rest see
// ErrBorrowNotFound.
func (r *BorrowRepository) Decide(borrowID, lenderID int64, decision string) (*borrow.Borrow, error) {
	var rec borrow.Borrow
	err := r.db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		returned := decision == borrow.StatusDisapproved

		res := tx.Model(&borrow.Borrow{}).
			Where("id = ? AND status = ?", borrowID, borrow.StatusPending).
			Updates(map[string]interface{}{
				"status":       decision,
				"returned":     returned,
				"lender_id":    lenderID,
				"processed_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return borrow.ErrBorrowNotFound
		}

		if err := tx.First(&rec, borrowID).Error; err != nil {
			return err
		}

		assetStatus := asset.StatusBorrowed
		if decision == borrow.StatusDisapproved {
			assetStatus = asset.StatusAvailable
		}
		return tx.Model(&asset.Asset{}).
			Where("id = ?", rec.AssetID).
			Update("status", assetStatus).Error
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *BorrowRepository) ActiveForUser(userID int64) ([]*borrow.Borrow, error) {
	var records []*borrow.Borrow
	err := r.db.
		Where("user_id = ? AND status IN ? AND returned = ?", userID, activeStatuses, false).
		Order("created_at DESC").
		Find(&records).Error
	return records, err
}

const historySelect = `borrowing.id, assets.asset_name, users.username,
borrowing.borrow_date, borrowing.return_date, borrowing.status, borrowing.returned`

func (r *BorrowRepository) historyQuery() *gorm.DB {
	return r.db.Model(&borrow.Borrow{}).
		Select(historySelect).
		Joins("JOIN assets ON assets.id = borrowing.asset_id").
		Joins("JOIN users ON users.id = borrowing.user_id").
		Where("borrowing.status IN ?", []string{borrow.StatusApproved, borrow.StatusDisapproved}).
		Order("borrowing.borrow_date DESC, borrowing.return_date DESC")
}

func (r *BorrowRepository) HistoryForUser(userID int64) ([]borrow.HistoryRecord, error) {
	var records []borrow.HistoryRecord
	err := r.historyQuery().
		Where("borrowing.user_id = ?", userID).
		Scan(&records).Error
	return records, err
}

func (r *BorrowRepository) HistoryForLender(lenderID int64) ([]borrow.HistoryRecord, error) {
	var records []borrow.HistoryRecord
	err := r.historyQuery().
		Where("borrowing.lender_id = ?", lenderID).
		Scan(&records).Error
	return records, err
}

func (r *BorrowRepository) HistoryAll() ([]borrow.HistoryRecord, error) {
	var records []borrow.HistoryRecord
	err := r.historyQuery().Scan(&records).Error
	return records, err
}

func (r *BorrowRepository) PendingQueue() ([]borrow.PendingRequest, error) {
	var records []borrow.PendingRequest
	err := r.db.Model(&borrow.Borrow{}).
		Select(`borrowing.id, borrowing.asset_id, assets.asset_name, users.username,
borrowing.borrow_date, borrowing.return_date, borrowing.status`).
		Joins("JOIN assets ON assets.id = borrowing.asset_id").
		Joins("JOIN users ON users.id = borrowing.user_id").
		Where("borrowing.status = ?", borrow.StatusPending).
		Order("borrowing.created_at ASC").
		Scan(&records).Error
	return records, err
}
