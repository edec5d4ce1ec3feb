package service

import (
	"fmt"

	"go-factory-console/internal/model"
	"go-factory-console/internal/repository"
	"go-factory-console/internal/ws"
)

// collection is the CRUD plumbing every screen shares: pick the caller's
// repository, validate before writing, and announce successful writes.
type collection[T any] struct {
	resource string
	pick     func(repository.Set) repository.Repository[T]
	source   repository.Source
	hub      *ws.Hub
}

func (c collection[T]) repo(token string) repository.Repository[T] {
	return c.pick(c.source.For(token))
}

func (c collection[T]) list(token string, p model.ListParams) (model.Page[T], error) {
	return c.repo(token).List(p)
}

func (c collection[T]) get(token string, id model.ID) (T, error) {
	return c.repo(token).Get(id)
}

func (c collection[T]) create(token string, item T) (T, error) {
	if err := validate(&item); err != nil {
		return item, err
	}
	created, err := c.repo(token).Create(item)
	if err != nil {
		return created, fmt.Errorf("create %s: %w", c.resource, err)
	}
	notify(c.hub, c.resource, ws.ActionCreated, idOf(created))
	return created, nil
}

// update loads the current record, lets apply change it (typically by
// decoding a partial payload on top of it), validates, and saves.
func (c collection[T]) update(token string, id model.ID, apply func(*T) error) (T, error) {
	repo := c.repo(token)
	current, err := repo.Get(id)
	if err != nil {
		return current, err
	}
	if err := apply(&current); err != nil {
		return current, err
	}
	if err := validate(&current); err != nil {
		return current, err
	}
	saved, err := repo.Update(id, current)
	if err != nil {
		return saved, fmt.Errorf("update %s %s: %w", c.resource, id, err)
	}
	notify(c.hub, c.resource, ws.ActionUpdated, id)
	return saved, nil
}

func (c collection[T]) remove(token string, id model.ID) error {
	if err := c.repo(token).Delete(id); err != nil {
		return fmt.Errorf("delete %s %s: %w", c.resource, id, err)
	}
	notify(c.hub, c.resource, ws.ActionDeleted, id)
	return nil
}

func idOf(v interface{}) model.ID {
	switch e := v.(type) {
	case model.StockItem:
		return e.ID
	case model.Employee:
		return e.ID
	case model.Machine:
		return e.ID
	case model.MachineModel:
		return e.ID
	case model.Department:
		return e.ID
	case model.Sector:
		return e.ID
	case model.Allocation:
		return e.ID
	}
	return ""
}
