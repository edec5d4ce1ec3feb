package model

import (
	"bytes"
	"encoding/json"
)

// Page is a slice of a remote collection plus its position metadata.
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
}

// pageEnvelope mirrors Page without its UnmarshalJSON method.
type pageEnvelope[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
	First         *bool `json:"first"`
	Last          *bool `json:"last"`
}

// UnmarshalJSON accepts both a bare JSON array and a paginated envelope.
func (p *Page[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var items []T
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*p = SinglePage(items)
		return nil
	}
	if bytes.Equal(data, []byte("null")) {
		*p = SinglePage[T](nil)
		return nil
	}

	var env pageEnvelope[T]
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	p.Content = env.Content
	if p.Content == nil {
		p.Content = []T{}
	}
	p.TotalElements = env.TotalElements
	p.TotalPages = env.TotalPages
	p.Number = env.Number
	p.Size = env.Size
	if p.TotalElements == 0 && len(p.Content) > 0 {
		p.TotalElements = int64(len(p.Content))
	}
	if p.TotalPages == 0 && len(p.Content) > 0 {
		p.TotalPages = 1
	}
	if p.Size == 0 {
		p.Size = len(p.Content)
	}
	p.First = p.Number == 0
	if env.First != nil {
		p.First = *env.First
	}
	p.Last = p.Number+1 >= p.TotalPages
	if env.Last != nil {
		p.Last = *env.Last
	}
	return nil
}

// SinglePage wraps a complete collection in a one-page envelope.
func SinglePage[T any](items []T) Page[T] {
	if items == nil {
		items = []T{}
	}
	pages := 1
	if len(items) == 0 {
		pages = 0
	}
	return Page[T]{
		Content:       items,
		TotalElements: int64(len(items)),
		TotalPages:    pages,
		Number:        0,
		Size:          len(items),
		First:         true,
		Last:          true,
	}
}

// Paginate cuts one page out of a complete collection. The returned slice
// shares no memory with items.
func Paginate[T any](items []T, number, size int) Page[T] {
	if size <= 0 {
		size = len(items)
	}
	if number < 0 {
		number = 0
	}
	total := len(items)
	pages := 0
	if size > 0 {
		pages = total / size
		if total%size != 0 {
			pages++
		}
	}
	start := total
	if size > 0 && number <= total/size {
		start = number * size
	}
	end := total
	if size <= total-start {
		end = start + size
	}
	content := make([]T, end-start)
	copy(content, items[start:end])
	return Page[T]{
		Content:       content,
		TotalElements: int64(total),
		TotalPages:    pages,
		Number:        number,
		Size:          size,
		First:         number == 0,
		Last:          number >= pages-1,
	}
}

// Pagination defaults of the factory service.
const (
	DefaultPageNumber = 0
	DefaultPageSize   = 10
	// MaxPageSize bounds what a single list call may ask for.
	MaxPageSize = 1000
)

// ListParams selects one page of a collection plus entity-specific filter
// keys such as "employee-name" or "status-machine". Nil page fields and
// out-of-range values fall back to the defaults.
type ListParams struct {
	PageNumber *int
	PageSize   *int
	Filters    map[string]string
}

// NewListParams builds params for an explicit page.
func NewListParams(number, size int) ListParams {
	return ListParams{PageNumber: &number, PageSize: &size}
}

// Number returns the requested page, 0 when unset or negative.
func (p ListParams) Number() int {
	if p.PageNumber == nil || *p.PageNumber < 0 {
		return DefaultPageNumber
	}
	return *p.PageNumber
}

// Size returns the requested page size, DefaultPageSize when unset or not
// positive and at most MaxPageSize.
func (p ListParams) Size() int {
	if p.PageSize == nil || *p.PageSize <= 0 {
		return DefaultPageSize
	}
	if *p.PageSize > MaxPageSize {
		return MaxPageSize
	}
	return *p.PageSize
}

// Filter returns a filter value and whether it is set to something
// non-empty.
func (p ListParams) Filter(key string) (string, bool) {
	v, ok := p.Filters[key]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// WithFilter returns a copy of p with one more filter key.
func (p ListParams) WithFilter(key, value string) ListParams {
	filters := make(map[string]string, len(p.Filters)+1)
	for k, v := range p.Filters {
		filters[k] = v
	}
	filters[key] = value
	p.Filters = filters
	return p
}
