package services

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"rewear/internal/domain"
	"rewear/internal/repos"
)

// CompletionPolicy decides what an approved swap does with points.
// The reference implementation left this undefined, so it is an explicit
// configuration choice rather than a hardcoded guess.
type CompletionPolicy int

const (
	// PolicyFreeItem marks the item swapped and moves no points.
	PolicyFreeItem CompletionPolicy = iota
	// PolicyTransferPoints additionally moves the item's point value from
	// requester to owner when the owner approves.
	PolicyTransferPoints
)

type SwapService struct {
	Items  *repos.ItemRepo
	Users  *repos.UserRepo
	Swaps  *repos.SwapRepo
	Policy CompletionPolicy
}

func NewSwapService(items *repos.ItemRepo, users *repos.UserRepo, swaps *repos.SwapRepo, policy CompletionPolicy) *SwapService {
	return &SwapService{Items: items, Users: users, Swaps: swaps, Policy: policy}
}

// RedeemResult reports a successful redemption.
type RedeemResult struct {
	Item       domain.Item
	NewBalance int
}

// RequestSwap files a pending swap request against an available listing
// owned by someone else. The item itself is untouched until the owner
// resolves the request.
func (s *SwapService) RequestSwap(itemID string, requester *domain.User) (*domain.SwapRequest, error) {
	if requester == nil {
		return nil, ErrNotAuthenticated
	}
	it, err := s.Items.Get(itemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemUnavailable
		}
		return nil, err
	}
	if it.Status != domain.StatusAvailable {
		return nil, ErrItemUnavailable
	}
	if it.UploaderID == requester.ID {
		return nil, ErrSelfSwap
	}
	if open, err := s.Swaps.HasOpenRequest(itemID, requester.ID); err != nil {
		return nil, err
	} else if open {
		return nil, ErrDuplicateRequest
	}

	req := domain.SwapRequest{
		ID:            uuid.NewString(),
		RequesterID:   requester.ID,
		RequesterName: requester.Username,
		ItemID:        it.ID,
		ItemTitle:     it.Title,
		Status:        domain.SwapPending,
	}
	if err := s.Swaps.Create(req); err != nil {
		return nil, err
	}
	return &req, nil
}

// Redeem spends the redeemer's points on an available listing. The debit
// and the status flip commit together or not at all.
func (s *SwapService) Redeem(itemID string, redeemer *domain.User) (*RedeemResult, error) {
	if redeemer == nil {
		return nil, ErrNotAuthenticated
	}
	it, err := s.Items.Get(itemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemUnavailable
		}
		return nil, err
	}
	if it.Status != domain.StatusAvailable {
		return nil, ErrItemUnavailable
	}
	// The reference UI only hid the redeem button on own listings; here
	// self-redemption is rejected outright.
	if it.UploaderID == redeemer.ID {
		return nil, ErrSelfSwap
	}
	if redeemer.Points < it.PointValue {
		return nil, &InsufficientPointsError{Shortfall: it.PointValue - redeemer.Points}
	}

	if err := s.Swaps.Redeem(it.ID, redeemer.ID, it.PointValue); err != nil {
		// Lost a race since the pre-checks: report it with fresh numbers.
		if errors.Is(err, repos.ErrInsufficientPoints) {
			if fresh, ferr := s.Users.ByID(redeemer.ID); ferr == nil && fresh.Points < it.PointValue {
				return nil, &InsufficientPointsError{Shortfall: it.PointValue - fresh.Points}
			}
		}
		if errors.Is(err, repos.ErrItemUnavailable) {
			return nil, ErrItemUnavailable
		}
		return nil, err
	}

	u, err := s.Users.ByID(redeemer.ID)
	if err != nil {
		return nil, err
	}
	it, err = s.Items.Get(itemID)
	if err != nil {
		return nil, err
	}
	return &RedeemResult{Item: it, NewBalance: u.Points}, nil
}

// Approve lets the listing owner accept a pending request. The request
// completes, the item is swapped, and points move per the configured
// policy.
func (s *SwapService) Approve(swapID string, owner *domain.User) error {
	row, err := s.ownedPending(swapID, owner)
	if err != nil {
		return err
	}
	transfer := s.Policy == PolicyTransferPoints
	err = s.Swaps.Complete(row.ID, row.ItemID, row.RequesterID, owner.ID, row.PointValue, transfer)
	switch {
	case errors.Is(err, repos.ErrNotPending):
		return ErrNotPending
	case errors.Is(err, repos.ErrItemUnavailable):
		return ErrItemUnavailable
	case errors.Is(err, repos.ErrInsufficientPoints):
		return &InsufficientPointsError{Shortfall: row.PointValue}
	}
	return err
}

// RejectRequest lets the listing owner decline a pending request.
func (s *SwapService) RejectRequest(swapID string, owner *domain.User) error {
	row, err := s.ownedPending(swapID, owner)
	if err != nil {
		return err
	}
	if err := s.Swaps.Reject(row.ID); err != nil {
		if errors.Is(err, repos.ErrNotPending) {
			return ErrNotPending
		}
		return err
	}
	return nil
}

// Outgoing lists the user's own swap requests.
func (s *SwapService) Outgoing(u *domain.User) ([]domain.SwapRequest, error) {
	if u == nil {
		return nil, ErrNotAuthenticated
	}
	return s.Swaps.ListByRequester(u.ID)
}

// Incoming lists the requests filed against the user's listings.
func (s *SwapService) Incoming(u *domain.User) ([]domain.SwapRequest, error) {
	if u == nil {
		return nil, ErrNotAuthenticated
	}
	return s.Swaps.ListForOwner(u.ID)
}

func (s *SwapService) ownedPending(swapID string, owner *domain.User) (repos.SwapRow, error) {
	if owner == nil {
		return repos.SwapRow{}, ErrNotAuthenticated
	}
	row, err := s.Swaps.Get(swapID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return repos.SwapRow{}, ErrNotPending
		}
		return repos.SwapRow{}, err
	}
	if row.UploaderID != owner.ID {
		return repos.SwapRow{}, ErrNotOwner
	}
	if row.Status != domain.SwapPending {
		return repos.SwapRow{}, ErrNotPending
	}
	return row, nil
}
