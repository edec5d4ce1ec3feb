package service

import (
	"errors"
	"fmt"

	"go-factory-console/internal/model"
	"go-factory-console/internal/remote"
	"go-factory-console/internal/repository"
	"go-factory-console/internal/ws"
	"go-factory-console/pkg/validator"
)

// Alert is the one-time message a screen shows after a failed load.
type Alert struct {
	Category remote.Category `json:"category"`
	Message  string          `json:"message"`
}

// AlertFor turns a load failure into the message shown to the user.
func AlertFor(err error) *Alert {
	if err == nil {
		return nil
	}
	if re, ok := remote.AsRemoteError(err); ok {
		return &Alert{Category: re.Category, Message: re.Message}
	}
	if errors.Is(err, repository.ErrNotFound) {
		return &Alert{Category: remote.CategoryNotFound, Message: "resource not found"}
	}
	return &Alert{Category: remote.CategoryServer, Message: "could not load data, try again"}
}

// ValidationError lists the fields a create or update payload got wrong.
// Nothing is sent to the store when it is returned.
type ValidationError struct {
	Fields []*validator.ErrorResponse
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	f := e.Fields[0]
	return fmt.Sprintf("validation failed: field '%s' failed on tag '%s'", f.FailedField, f.Tag)
}

func validate(v interface{}) error {
	if errs := validator.ValidateStruct(v); len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

// PageInfo is the pagination part of a screen view.
type PageInfo struct {
	Number        int   `json:"number"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
}

func pageInfo[T any](p model.Page[T]) PageInfo {
	return PageInfo{
		Number:        p.Number,
		Size:          p.Size,
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages,
		First:         p.First,
		Last:          p.Last,
	}
}

// notify sends a refresh hint when a hub is wired.
func notify(hub *ws.Hub, resource, action string, id model.ID) {
	if hub == nil {
		return
	}
	hub.Notify(resource, action, id.String())
}
