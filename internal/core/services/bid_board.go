package services

import (
	"context"
	"sync"

	"rentwise-portal/internal/core/domain"
)

// BidBoard is the bid list one viewer is looking at. Actions are offered from the
// mirrored status graph; the board changes only when the server confirms a change.
type BidBoard struct {
	svc      *BidService
	token    string
	viewerID string
	userID   string

	mu   sync.RWMutex
	bids []domain.Bid
}

// NewBidBoard creates an empty board. userID narrows the list to one user's bids when set.
func NewBidBoard(svc *BidService, token, viewerID, userID string) *BidBoard {
	return &BidBoard{svc: svc, token: token, viewerID: viewerID, userID: userID}
}

// Load seeds the board with bids fetched elsewhere
func (b *BidBoard) Load(bids []domain.Bid) {
	b.mu.Lock()
	b.bids = append([]domain.Bid(nil), bids...)
	b.mu.Unlock()
}

// Refresh refetches the whole list. On failure the previous list is kept.
func (b *BidBoard) Refresh(ctx context.Context) error {
	bids, err := b.svc.List(ctx, b.token, b.userID)
	if err != nil {
		return err
	}
	b.Load(bids)
	return nil
}

// Bids returns a copy of the current list
func (b *BidBoard) Bids() []domain.Bid {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]domain.Bid(nil), b.bids...)
}

// Get returns the bid with id as currently known to the board
func (b *BidBoard) Get(id string) (domain.Bid, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	i := b.index(id)
	if i < 0 {
		return domain.Bid{}, false
	}
	return b.bids[i], true
}

// Actions lists what the viewer may do with the bid. Terminal bids have none.
func (b *BidBoard) Actions(id string) ([]domain.BidAction, error) {
	bid, ok := b.Get(id)
	if !ok {
		return nil, newError(domain.ErrNotFound, "Bid not found")
	}
	return bid.ActionsFor(b.viewerID), nil
}

// Apply sends one action. Actions that are not enabled are refused without a request.
func (b *BidBoard) Apply(ctx context.Context, id string, action domain.BidAction, in ActionInput) (*domain.Bid, error) {
	actions, err := b.Actions(id)
	if err != nil {
		return nil, err
	}
	if !containsAction(actions, action) {
		return nil, &Error{
			Kind:    domain.ErrActionNotAllowed,
			Message: "This action is not available for the bid's current status",
		}
	}

	updated, err := b.svc.Act(ctx, b.token, id, action, in)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	if i := b.index(id); i >= 0 {
		b.bids[i] = *updated
	}
	b.mu.Unlock()
	return updated, nil
}

// index must be called with mu held
func (b *BidBoard) index(id string) int {
	for i := range b.bids {
		if b.bids[i].ID == id {
			return i
		}
	}
	return -1
}

func containsAction(actions []domain.BidAction, a domain.BidAction) bool {
	for _, x := range actions {
		if x == a {
			return true
		}
	}
	return false
}
