package service

import (
	"fmt"
	"log"

	"go-factory-console/internal/inventory"
	"go-factory-console/internal/model"
	"go-factory-console/internal/query"
	"go-factory-console/internal/repository"
	"go-factory-console/internal/ws"
)

// ResourceStock names stock in refresh events.
const ResourceStock = "stock"

// ItemView is a stock item with its derived availability, value and status.
type ItemView struct {
	model.StockItem
	inventory.Projection
}

func itemView(item model.StockItem) ItemView {
	return ItemView{StockItem: item, Projection: inventory.Project(item)}
}

// InventoryView is everything the inventory screen renders. Stats and
// categories describe the whole loaded page; Items is what the search bar
// and filter modal leave visible.
type InventoryView struct {
	Items      []ItemView      `json:"items"`
	Stats      inventory.Stats `json:"stats"`
	Categories []string        `json:"categories"`
	Statuses   []string        `json:"statuses"`
	Page       PageInfo        `json:"page"`
	Query      query.Query     `json:"query"`
	Alert      *Alert          `json:"alert,omitempty"`
}

type InventoryService interface {
	Screen(token string, p model.ListParams, q query.Query) InventoryView
	Detail(token string, id model.ID) (ItemView, error)
	Create(token string, item model.StockItem) (ItemView, error)
	Update(token string, id model.ID, apply func(*model.StockItem) error) (ItemView, error)
	Delete(token string, id model.ID) error
	Reserve(token string, id model.ID, qty int) (ItemView, error)
}

type inventoryService struct {
	stock collection[model.StockItem]
}

func NewInventoryService(source repository.Source, hub *ws.Hub) InventoryService {
	return &inventoryService{
		stock: collection[model.StockItem]{
			resource: ResourceStock,
			pick:     func(s repository.Set) repository.Repository[model.StockItem] { return s.Stock },
			source:   source,
			hub:      hub,
		},
	}
}

func statusLabels() []string {
	labels := make([]string, len(inventory.Statuses))
	for i, s := range inventory.Statuses {
		labels[i] = s.String()
	}
	return labels
}

// Screen loads one page of stock and builds the inventory view from it in
// one go. A failed load yields an empty view carrying the alert.
func (s *inventoryService) Screen(token string, p model.ListParams, q query.Query) InventoryView {
	view := InventoryView{
		Items:      []ItemView{},
		Stats:      inventory.Aggregate(nil),
		Categories: []string{},
		Statuses:   statusLabels(),
		Query:      q,
	}

	page, err := s.stock.list(token, p)
	if err != nil {
		log.Printf("inventory: list stock: %v", err)
		view.Alert = AlertFor(err)
		return view
	}

	for _, item := range query.Filter(page.Content, q, query.StockFields) {
		view.Items = append(view.Items, itemView(item))
	}
	view.Stats = inventory.Aggregate(page.Content)
	view.Categories = inventory.Categories(page.Content)
	view.Page = pageInfo(page)
	return view
}

func (s *inventoryService) Detail(token string, id model.ID) (ItemView, error) {
	item, err := s.stock.get(token, id)
	if err != nil {
		return ItemView{}, err
	}
	return itemView(item), nil
}

func (s *inventoryService) Create(token string, item model.StockItem) (ItemView, error) {
	created, err := s.stock.create(token, item)
	if err != nil {
		return ItemView{}, err
	}
	return itemView(created), nil
}

func (s *inventoryService) Update(token string, id model.ID, apply func(*model.StockItem) error) (ItemView, error) {
	saved, err := s.stock.update(token, id, apply)
	if err != nil {
		return ItemView{}, err
	}
	return itemView(saved), nil
}

func (s *inventoryService) Delete(token string, id model.ID) error {
	return s.stock.remove(token, id)
}

// Reserve sets qty more units aside. The new reserved count is computed
// here and sent as an update; the store stays the authority.
func (s *inventoryService) Reserve(token string, id model.ID, qty int) (ItemView, error) {
	repo := s.stock.repo(token)
	item, err := repo.Get(id)
	if err != nil {
		return ItemView{}, err
	}
	reserved, err := inventory.Reserve(item, qty)
	if err != nil {
		return ItemView{}, err
	}
	item.Reserved = model.Int(reserved)

	saved, err := repo.Update(id, item)
	if err != nil {
		return ItemView{}, fmt.Errorf("reserve %s: %w", id, err)
	}
	notify(s.stock.hub, ResourceStock, ws.ActionReserved, id)
	return itemView(saved), nil
}
