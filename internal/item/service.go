package item

import (
	"context"
	"errors"
	"strings"

	"github.com/nekogravitycat/item-sharing-backend/internal/pkg/clock"
	"github.com/nekogravitycat/item-sharing-backend/internal/user"
)

type CreateRequest struct {
	Name        string
	Description string
	Available   *bool
}

type UpdateRequest struct {
	Name        *string
	Description *string
	Available   *bool
}

type Service interface {
	Create(ctx context.Context, ownerID int64, req CreateRequest) (*Item, error)
	Update(ctx context.Context, ownerID, itemID int64, req UpdateRequest) (*Item, error)
	// GetByID returns the bare item without viewer-dependent data.
	GetByID(ctx context.Context, itemID int64) (*Item, error)
	// GetDetails returns the item with comments, plus the last/next booking
	// summary when the viewer is the owner.
	GetDetails(ctx context.Context, itemID, viewerID int64) (*Details, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*Details, error)
	Search(ctx context.Context, text string) ([]*Item, error)
	AddComment(ctx context.Context, authorID, itemID int64, text string) (*Comment, error)
}

type service struct {
	repo  Repository
	users user.Service
	clk   clock.Clock
}

func NewService(repo Repository, users user.Service, clk clock.Clock) Service {
	return &service{
		repo:  repo,
		users: users,
		clk:   clk,
	}
}

func (s *service) Create(ctx context.Context, ownerID int64, req CreateRequest) (*Item, error) {
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, ErrDescriptionRequired
	}
	if req.Available == nil {
		return nil, ErrAvailableRequired
	}

	it := &Item{
		OwnerID:     ownerID,
		Name:        req.Name,
		Description: req.Description,
		Available:   *req.Available,
	}

	if err := s.repo.Create(ctx, it); err != nil {
		return nil, err
	}

	return it, nil
}

func (s *service) Update(ctx context.Context, ownerID, itemID int64, req UpdateRequest) (*Item, error) {
	it, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	// Access control as not-found: non-owners learn nothing about the item.
	if it.OwnerID != ownerID {
		return nil, ErrNotOwner
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		it.Name = *req.Name
	}
	if req.Description != nil && strings.TrimSpace(*req.Description) != "" {
		it.Description = *req.Description
	}
	if req.Available != nil {
		it.Available = *req.Available
	}

	if err := s.repo.Update(ctx, it); err != nil {
		return nil, err
	}

	return it, nil
}

func (s *service) GetByID(ctx context.Context, itemID int64) (*Item, error) {
	return s.repo.GetByID(ctx, itemID)
}

func (s *service) GetDetails(ctx context.Context, itemID, viewerID int64) (*Details, error) {
	it, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	comments, err := s.repo.CommentsByItems(ctx, []int64{itemID})
	if err != nil {
		return nil, err
	}

	details := &Details{
		Item:     *it,
		Comments: comments,
	}

	// The booking summary is shown to the owner only.
	if it.OwnerID == viewerID {
		bookings, err := s.repo.ApprovedBookings(ctx, []int64{itemID})
		if err != nil {
			return nil, err
		}
		details.LastBooking, details.NextBooking = Summarize(bookings, s.clk.Now())
	}

	return details, nil
}

func (s *service) ListByOwner(ctx context.Context, ownerID int64) ([]*Details, error) {
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	items, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	itemIDs := make([]int64, len(items))
	for i, it := range items {
		itemIDs[i] = it.ID
	}

	bookings, err := s.repo.ApprovedBookings(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	bookingsByItem := make(map[int64][]ApprovedBooking)
	for _, b := range bookings {
		bookingsByItem[b.ItemID] = append(bookingsByItem[b.ItemID], b)
	}

	comments, err := s.repo.CommentsByItems(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	commentsByItem := make(map[int64][]Comment)
	for _, cm := range comments {
		commentsByItem[cm.ItemID] = append(commentsByItem[cm.ItemID], cm)
	}

	// One snapshot of now for the whole listing keeps summaries consistent.
	now := s.clk.Now()

	result := make([]*Details, len(items))
	for i, it := range items {
		d := &Details{
			Item:     *it,
			Comments: commentsByItem[it.ID],
		}
		d.LastBooking, d.NextBooking = Summarize(bookingsByItem[it.ID], now)
		result[i] = d
	}

	return result, nil
}

func (s *service) Search(ctx context.Context, text string) ([]*Item, error) {
	if strings.TrimSpace(text) == "" {
		return []*Item{}, nil
	}
	return s.repo.Search(ctx, text)
}

func (s *service) AddComment(ctx context.Context, authorID, itemID int64, text string) (*Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyComment
	}

	now := s.clk.Now()

	// Only users whose approved booking of this item has already ended may
	// leave a comment.
	hasBooking, err := s.repo.HasFinishedBooking(ctx, authorID, itemID, now)
	if err != nil {
		return nil, err
	}
	if !hasBooking {
		return nil, ErrNoFinishedBooking
	}

	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if _, err := s.repo.GetByID(ctx, itemID); err != nil {
		return nil, err
	}

	cm := &Comment{
		ItemID:     itemID,
		AuthorID:   authorID,
		AuthorName: author.Name,
		Text:       text,
		Created:    now,
	}

	if err := s.repo.CreateComment(ctx, cm); err != nil {
		return nil, err
	}

	return cm, nil
}
