// Package service implements the todo operations exposed by the API layer.
// It validates input, delegates to a types.ItemStore, and translates store
// outcomes into the results the HTTP surface reports.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/mesh-intelligence/todos/pkg/types"
)

// Service runs list, create, update, and delete against an item store.
type Service struct {
	store types.ItemStore
	log   hclog.Logger
}

// New returns a Service backed by store. A nil logger discards output.
func New(store types.ItemStore, log hclog.Logger) *Service {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Service{store: store, log: log}
}

// List returns every stored item.
func (s *Service) List(ctx context.Context) ([]types.Item, error) {
	items, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

// Create stores a new item and returns its id.
// Returns ErrTitleRequired for an empty title and ErrDuplicateTitle when the
// title already exists.
func (s *Service) Create(ctx context.Context, title string) (int64, error) {
	if err := types.ValidateTitle(title); err != nil {
		return 0, err
	}

	id, err := s.store.Insert(ctx, title)
	if err != nil {
		return 0, fmt.Errorf("create item: %w", err)
	}
	s.log.Debug("item created", "id", id)
	return id, nil
}

// Update overwrites the title of item id, and its completed flag when
// completed is non-nil. An absent id is not an error: the call succeeds
// without creating a row.
func (s *Service) Update(ctx context.Context, id int64, title string, completed *bool) error {
	if err := types.ValidateTitle(title); err != nil {
		return err
	}

	err := s.store.Update(ctx, id, title, completed)
	if errors.Is(err, types.ErrNotFound) {
		s.log.Debug("update of missing item ignored", "id", id)
		return nil
	}
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// Delete removes item id. Deleting an absent id succeeds.
func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.store.Delete(ctx, id)
	if errors.Is(err, types.ErrNotFound) {
		s.log.Debug("delete of missing item ignored", "id", id)
		return nil
	}
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}
