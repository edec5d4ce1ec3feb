package repository

import (
	"errors"

	"go-factory-console/internal/model"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// Repository is the list/get/create/update/delete contract of one entity.
// Returned values never share memory with the store.
type Repository[T any] interface {
	List(p model.ListParams) (model.Page[T], error)
	Get(id model.ID) (T, error)
	Create(item T) (T, error)
	Update(id model.ID, item T) (T, error)
	Delete(id model.ID) error
}

// UserRepository holds the demo accounts. The factory service keeps its own
// users, so remote mode has none.
type UserRepository interface {
	FindByEmail(email string) (model.User, error)
	Create(user model.User) (model.User, error)
	UpdatePassword(email, hashedPassword string) error
}

// Set bundles one repository per entity.
type Set struct {
	Stock         Repository[model.StockItem]
	Employees     Repository[model.Employee]
	Machines      Repository[model.Machine]
	MachineModels Repository[model.MachineModel]
	Departments   Repository[model.Department]
	Sectors       Repository[model.Sector]
	Allocations   Repository[model.Allocation]
	Users         UserRepository
}

// Source hands out the repositories a request works with. Remote sets are
// bound to the caller's token; demo stores ignore it.
type Source interface {
	For(token string) Set
}

type staticSource struct {
	set Set
}

// Static returns a Source that serves the same Set to every caller.
func Static(set Set) Source {
	return staticSource{set}
}

func (s staticSource) For(string) Set {
	return s.set
}
