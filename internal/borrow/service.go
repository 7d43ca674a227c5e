package borrow

import (
	"log/slog"

	"github.com/sirawit/asset-borrowing/internal"
	"github.com/sirawit/asset-borrowing/internal/auth"
)

// Service is the borrow lifecycle engine. It validates the caller and the
// request shape, then delegates the atomic state transitions to the
// repository. The principal always arrives as an explicit parameter; the
// engine never reads ambient session state.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Submit creates a new Pending borrow request and claims the asset. The
// repository performs the availability check, insert, and asset claim as one
// atomic unit, so concurrent submissions cannot double-book an asset or give
// a user two active borrows.
func (s *Service) Submit(principal *auth.Principal, dto SubmitBorrowDTO) (*Borrow, error) {
	if principal == nil {
		return nil, auth.ErrSessionRequired
	}
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeMissingFields)
	}

	borrowDate, _ := parseDate(dto.BorrowDate)
	returnDate, _ := parseDate(dto.ReturnDate)

	rec := &Borrow{
		AssetID:    dto.AssetID,
		UserID:     principal.ID,
		BorrowDate: borrowDate,
		ReturnDate: returnDate,
		Status:     StatusPending,
		Returned:   false,
	}

	if err := s.repo.Submit(rec); err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, err
		}
		s.logger.Error("submit: transaction failed", "error", err, "user_id", principal.ID, "asset_id", dto.AssetID)
		return nil, internal.NewInternalError("Server error", err)
	}

	s.logger.Info("borrow request submitted",
		"borrow_id", rec.ID,
		"user_id", principal.ID,
		"asset_id", rec.AssetID)

	return rec, nil
}

// Decide processes a pending request. Only lenders may decide. The guarded
// update in the repository means only one concurrent decision on the same
// record can win; the loser observes ErrBorrowNotFound.
func (s *Service) Decide(principal *auth.Principal, borrowID int64, dto DecideDTO) (*Borrow, error) {
	if principal == nil {
		return nil, auth.ErrSessionRequired
	}
	if !principal.IsLender() {
		s.logger.Warn("decide denied: caller is not a lender",
			"borrow_id", borrowID,
			"user_id", principal.ID,
			"role", principal.Role)
		return nil, ErrLenderRequired
	}
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeInvalidDecision)
	}

	rec, err := s.repo.Decide(borrowID, principal.ID, dto.Status)
	if err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, err
		}
		s.logger.Error("decide: transaction failed", "error", err, "borrow_id", borrowID, "lender_id", principal.ID)
		return nil, internal.NewInternalError("Server error", err)
	}

	s.logger.Info("borrow request processed",
		"borrow_id", rec.ID,
		"lender_id", principal.ID,
		"decision", dto.Status)

	return rec, nil
}

// History returns processed borrows scoped by the caller's role: students see
// their own requests, lenders the ones they processed, staff everything.
func (s *Service) History(principal *auth.Principal) ([]HistoryRecord, error) {
	if principal == nil {
		return nil, auth.ErrSessionRequired
	}

	var (
		records []HistoryRecord
		err     error
	)
	switch principal.Role {
	case auth.RoleStudent:
		records, err = s.repo.HistoryForUser(principal.ID)
	case auth.RoleLender:
		records, err = s.repo.HistoryForLender(principal.ID)
	case auth.RoleStaff:
		records, err = s.repo.HistoryAll()
	default:
		return nil, ErrRoleForbidden
	}

	if err != nil {
		s.logger.Error("history: query failed", "error", err, "user_id", principal.ID, "role", principal.Role)
		return nil, internal.NewInternalError("Server error", err)
	}
	return records, nil
}

// ActiveCheck reports whether the caller has an unresolved borrow request.
func (s *Service) ActiveCheck(principal *auth.Principal) (*ActiveCheck, error) {
	if principal == nil {
		return nil, auth.ErrSessionRequired
	}

	active, err := s.repo.ActiveForUser(principal.ID)
	if err != nil {
		s.logger.Error("active check: query failed", "error", err, "user_id", principal.ID)
		return nil, internal.NewInternalError("Server error", err)
	}

	if active == nil {
		active = []*Borrow{}
	}
	return &ActiveCheck{
		HasActiveRequest: len(active) > 0,
		Requests:         active,
	}, nil
}

// PendingQueue lists all unprocessed requests for lender triage.
func (s *Service) PendingQueue() ([]PendingRequest, error) {
	pending, err := s.repo.PendingQueue()
	if err != nil {
		s.logger.Error("pending queue: query failed", "error", err)
		return nil, internal.NewInternalError("Server error", err)
	}
	return pending, nil
}
