package repository

import (
	"go-factory-console/internal/model"
	"go-factory-console/internal/remote"
)

type remoteRepo[T any] struct {
	res *remote.Resource[T]
}

// NewRemoteRepo adapts a factory service resource. Errors come back as
// *remote.RemoteError untouched.
func NewRemoteRepo[T any](res *remote.Resource[T]) Repository[T] {
	return &remoteRepo[T]{res}
}

func (r *remoteRepo[T]) List(p model.ListParams) (model.Page[T], error) {
	return r.res.List(p)
}

func (r *remoteRepo[T]) Get(id model.ID) (T, error) {
	return r.res.Get(id)
}

func (r *remoteRepo[T]) Create(item T) (T, error) {
	return r.res.Create(item)
}

func (r *remoteRepo[T]) Update(id model.ID, item T) (T, error) {
	return r.res.Update(id, item)
}

func (r *remoteRepo[T]) Delete(id model.ID) error {
	return r.res.Remove(id)
}

type remoteSource struct {
	client *remote.Client
}

// NewRemoteSource serves repositories backed by the factory service, each
// Set sending the caller's token.
func NewRemoteSource(client *remote.Client) Source {
	return remoteSource{client}
}

func (s remoteSource) For(token string) Set {
	res := remote.NewResources(s.client.WithToken(token))
	return Set{
		Stock:         NewRemoteRepo(res.Stock),
		Employees:     NewRemoteRepo(res.Employees),
		Machines:      NewRemoteRepo(res.Machines),
		MachineModels: NewRemoteRepo(res.MachineModels),
		Departments:   NewRemoteRepo(res.Departments),
		Sectors:       NewRemoteRepo(res.Sectors),
		Allocations:   NewRemoteRepo(res.Allocations),
	}
}
