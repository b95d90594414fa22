// Package dish manages menu dishes and their flavor options.
package dish

import (
	"errors"
	"time"
)

// Dish sale status.
const (
	StatusDisabled = 0
	StatusOnSale   = 1
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// Column widths of the dish and dish_flavor tables.
const (
	maxNameLen        = 32
	maxTextLen        = 255
	maxFlavorNameLen  = 32
	maxFlavorValueLen = 255
)

var (
	// ErrNotFound is returned when a dish does not exist.
	ErrNotFound = errors.New("dish not found")
	// ErrInvalidInput is returned when a request fails validation.
	ErrInvalidInput = errors.New("invalid dish input")
	// ErrOnSale is returned when a batch delete includes a dish still on sale.
	ErrOnSale = errors.New("dish on sale cannot be deleted")
	// ErrDuplicateName is returned when another dish already uses the name.
	ErrDuplicateName = errors.New("dish name already exists")
)

// Dish is a menu item.
type Dish struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	CategoryID  int64     `json:"categoryId"`
	Price       string    `json:"price" example:"38.00"`
	Image       string    `json:"image"`
	Description string    `json:"description"`
	Status      int       `json:"status"`
	CreateTime  time.Time `json:"createTime"`
	UpdateTime  time.Time `json:"updateTime"`
}

// Flavor is a named option group of a dish; Value holds a JSON array of choices.
type Flavor struct {
	ID     int64  `json:"id"`
	DishID int64  `json:"dishId"`
	Name   string `json:"name"  example:"spice"`
	Value  string `json:"value" example:"[\"mild\",\"hot\"]"`
}

// DishDTO is the payload for creating a dish.
type DishDTO struct {
	Name        string   `json:"name"        example:"Kung Pao Chicken"`
	CategoryID  int64    `json:"categoryId"  example:"11"`
	Price       string   `json:"price"       example:"38.00"`
	Image       string   `json:"image"       example:"http://localhost:9000/skytake/0b6f.png"`
	Description string   `json:"description"`
	Status      int      `json:"status"      example:"1"`
	Flavors     []Flavor `json:"flavors"`
}

// PageQuery filters a paginated dish listing. Nil filters are ignored.
type PageQuery struct {
	Page       int
	PageSize   int
	Name       string
	CategoryID *int64
	Status     *int
}

// PageResult is one page of dishes plus the total matching count.
type PageResult struct {
	Total   int64  `json:"total"`
	Records []Dish `json:"records"`
}

// DishVO is a dish with its flavors.
type DishVO struct {
	Dish
	Flavors []Flavor `json:"flavors"`
}

func (q *PageQuery) normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = defaultPageSize
	}
	if q.PageSize > maxPageSize {
		q.PageSize = maxPageSize
	}
}

func (q PageQuery) offset() int {
	return (q.Page - 1) * q.PageSize
}
