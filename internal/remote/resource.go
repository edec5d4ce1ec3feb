package remote

import (
	"net/http"
	"net/url"

	"go-factory-console/internal/model"
)

// Endpoints of the factory service.
const (
	PathLogin         = "/login"
	PathSignUp        = "/sign-in"
	PathUsers         = "/user"
	PathEmployees     = "/employee"
	PathMachines      = "/machine"
	PathMachineModels = "/machine-model"
	PathDepartments   = "/department"
	PathSectors       = "/sector"
	PathStock         = "/stock"
	PathAllocations   = "/allocated-employee-machine"
)

// Resource is the list/get/create/update/remove contract of one entity
// type of the factory service.
type Resource[T any] struct {
	client   *Client
	path     string
	names    ParamNames
	messages Messages
}

// ResourceOption customises a Resource.
type ResourceOption func(*resourceConfig)

type resourceConfig struct {
	names    ParamNames
	messages Messages
}

// WithParamNames overrides the pagination query keys.
func WithParamNames(names ParamNames) ResourceOption {
	return func(c *resourceConfig) { c.names = names }
}

// WithMessages sets per-status user messages for this resource.
func WithMessages(m Messages) ResourceOption {
	return func(c *resourceConfig) { c.messages = m }
}

func NewResource[T any](client *Client, path string, opts ...ResourceOption) *Resource[T] {
	cfg := resourceConfig{names: DefaultParamNames}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Resource[T]{
		client:   client,
		path:     path,
		names:    cfg.names,
		messages: cfg.messages,
	}
}

// Path returns the collection path, e.g. "/employee".
func (r *Resource[T]) Path() string {
	return r.path
}

func (r *Resource[T]) itemPath(id model.ID) string {
	return r.path + "/" + url.PathEscape(id.String())
}

// List fetches one page. The service may answer with a bare array or a
// paginated envelope; both decode into model.Page.
func (r *Resource[T]) List(p model.ListParams) (model.Page[T], error) {
	var page model.Page[T]
	err := r.client.do(call{
		method:   http.MethodGet,
		path:     r.path,
		query:    encodeListParams(r.names, p.Number(), p.Size(), p.Filters),
		messages: r.messages,
	}, &page)
	if err != nil {
		return model.Page[T]{}, err
	}
	if page.Content == nil {
		page.Content = []T{}
	}
	return page, nil
}

func (r *Resource[T]) Get(id model.ID) (T, error) {
	var out T
	err := r.client.do(call{
		method:   http.MethodGet,
		path:     r.itemPath(id),
		messages: r.messages,
	}, &out)
	return out, err
}

// Create posts payload, which may be a full entity or a partial map, and
// returns the record as stored by the service.
func (r *Resource[T]) Create(payload interface{}) (T, error) {
	var out T
	err := r.client.do(call{
		method:   http.MethodPost,
		path:     r.path,
		body:     payload,
		messages: r.messages,
	}, &out)
	return out, err
}

// Update puts payload (full entity or partial map) on the record.
func (r *Resource[T]) Update(id model.ID, payload interface{}) (T, error) {
	var out T
	err := r.client.do(call{
		method:   http.MethodPut,
		path:     r.itemPath(id),
		body:     payload,
		messages: r.messages,
	}, &out)
	return out, err
}

func (r *Resource[T]) Remove(id model.ID) error {
	return r.client.do(call{
		method:   http.MethodDelete,
		path:     r.itemPath(id),
		messages: r.messages,
	}, nil)
}

// Resources groups every entity endpoint behind one client.
type Resources struct {
	Stock         *Resource[model.StockItem]
	Employees     *Resource[model.Employee]
	Machines      *Resource[model.Machine]
	MachineModels *Resource[model.MachineModel]
	Departments   *Resource[model.Department]
	Sectors       *Resource[model.Sector]
	Users         *Resource[model.User]
	Allocations   *Resource[model.Allocation]
}

// stockMessages replaces the generic 404/409 texts of the stock endpoint.
var stockMessages = Messages{
	http.StatusNotFound: "stock item not found",
	http.StatusConflict: "item code already exists",
}

var sectorMessages = Messages{
	http.StatusInternalServerError: defaultMessages[CategoryServer],
	http.StatusNotFound:            defaultMessages[CategoryNotFound],
	http.StatusUnauthorized:        defaultMessages[CategoryUnauthorized],
	http.StatusForbidden:           defaultMessages[CategoryUnauthorized],
}

// NewResources binds every endpoint to client.
func NewResources(client *Client) Resources {
	return Resources{
		Stock:         NewResource[model.StockItem](client, PathStock, WithMessages(stockMessages)),
		Employees:     NewResource[model.Employee](client, PathEmployees),
		Machines:      NewResource[model.Machine](client, PathMachines),
		MachineModels: NewResource[model.MachineModel](client, PathMachineModels, WithParamNames(PortugueseParamNames)),
		Departments:   NewResource[model.Department](client, PathDepartments),
		Sectors:       NewResource[model.Sector](client, PathSectors, WithMessages(sectorMessages)),
		Users:         NewResource[model.User](client, PathUsers),
		Allocations:   NewResource[model.Allocation](client, PathAllocations),
	}
}
