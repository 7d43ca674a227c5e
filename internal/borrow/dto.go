package borrow

import (
	"errors"
	"time"
)

// SubmitBorrowDTO is the request payload for a new borrow request. Dates
// arrive as YYYY-MM-DD strings on the wire.
type SubmitBorrowDTO struct {
	AssetID    int64  `json:"asset_id"`
	BorrowDate string `json:"borrow_date"`
	ReturnDate string `json:"return_date"`
}

func (dto SubmitBorrowDTO) Validate() error {
	if dto.AssetID == 0 || dto.BorrowDate == "" || dto.ReturnDate == "" {
		return errors.New("Missing required fields")
	}
	if _, err := parseDate(dto.BorrowDate); err != nil {
		return errors.New("invalid borrow_date, expected YYYY-MM-DD")
	}
	returnDate, err := parseDate(dto.ReturnDate)
	if err != nil {
		return errors.New("invalid return_date, expected YYYY-MM-DD")
	}
	borrowDate, _ := parseDate(dto.BorrowDate)
	if returnDate.Before(borrowDate) {
		return errors.New("return_date must not be before borrow_date")
	}
	return nil
}

// DecideDTO is the request payload for processing a pending borrow.
type DecideDTO struct {
	Status string `json:"status"`
}

func (dto DecideDTO) Validate() error {
	if dto.Status == "" {
		return errors.New("status is required")
	}
	if !IsValidDecision(dto.Status) {
		return errors.New("status must be either 'Approved' or 'Disapproved'")
	}
	return nil
}

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
