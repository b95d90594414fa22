package dish

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// pricePattern accepts plain decimals that fit numeric(10,2).
var pricePattern = regexp.MustCompile(`^\d{1,8}(\.\d{1,2})?$`)

// store is the persistence the Service needs; *Repository implements it.
type store interface {
	CreateWithFlavors(ctx context.Context, d *Dish, flavors []Flavor) error
	Page(ctx context.Context, q PageQuery) ([]Dish, int64, error)
	GetByID(ctx context.Context, id int64) (*Dish, error)
	FlavorsByDishID(ctx context.Context, dishID int64) ([]Flavor, error)
	DeleteBatch(ctx context.Context, ids []int64) error
}

// Service contains business logic for dish management.
type Service struct {
	repo store
}

// NewService creates a new dish Service.
func NewService(repo store) *Service {
	return &Service{repo: repo}
}

// InsertWithFlavors validates dto and stores the dish together with its flavors.
func (s *Service) InsertWithFlavors(ctx context.Context, dto DishDTO) (*Dish, error) {
	if err := validate(dto); err != nil {
		return nil, err
	}

	d := &Dish{
		Name:        strings.TrimSpace(dto.Name),
		CategoryID:  dto.CategoryID,
		Price:       strings.TrimSpace(dto.Price),
		Image:       dto.Image,
		Description: dto.Description,
		Status:      dto.Status,
	}
	flavors := make([]Flavor, 0, len(dto.Flavors))
	for _, f := range dto.Flavors {
		flavors = append(flavors, Flavor{Name: strings.TrimSpace(f.Name), Value: f.Value})
	}

	if err := s.repo.CreateWithFlavors(ctx, d, flavors); err != nil {
		if errors.Is(err, ErrDuplicateName) {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("create dish: %w", err)
	}
	return d, nil
}

// PageQuery returns one page of dishes. Out-of-range paging is clamped.
func (s *Service) PageQuery(ctx context.Context, q PageQuery) (*PageResult, error) {
	q.normalize()
	records, total, err := s.repo.Page(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("page dishes: %w", err)
	}
	return &PageResult{Total: total, Records: records}, nil
}

// DeleteBatch deletes the given dishes. Nothing is deleted if any of them is on sale.
func (s *Service) DeleteBatch(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return fmt.Errorf("%w: no ids", ErrInvalidInput)
	}
	if err := s.repo.DeleteBatch(ctx, ids); err != nil {
		if errors.Is(err, ErrOnSale) {
			return ErrOnSale
		}
		return fmt.Errorf("delete dishes: %w", err)
	}
	return nil
}

// GetByID returns a dish with its flavors.
func (s *Service) GetByID(ctx context.Context, id int64) (*DishVO, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	flavors, err := s.repo.FlavorsByDishID(ctx, id)
	if err != nil {
		return nil, err
	}
	if flavors == nil {
		flavors = []Flavor{}
	}
	return &DishVO{Dish: *d, Flavors: flavors}, nil
}

// IsNotFound returns true when the error indicates a dish was not found.
func (s *Service) IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func validate(dto DishDTO) error {
	name := strings.TrimSpace(dto.Name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return fmt.Errorf("%w: name must be at most %d characters", ErrInvalidInput, maxNameLen)
	}
	if dto.CategoryID <= 0 {
		return fmt.Errorf("%w: categoryId is required", ErrInvalidInput)
	}
	if !pricePattern.MatchString(strings.TrimSpace(dto.Price)) {
		return fmt.Errorf("%w: price must be a non-negative decimal below 100000000 with at most 2 decimals", ErrInvalidInput)
	}
	if utf8.RuneCountInString(dto.Image) > maxTextLen {
		return fmt.Errorf("%w: image must be at most %d characters", ErrInvalidInput, maxTextLen)
	}
	if utf8.RuneCountInString(dto.Description) > maxTextLen {
		return fmt.Errorf("%w: description must be at most %d characters", ErrInvalidInput, maxTextLen)
	}
	if dto.Status != StatusDisabled && dto.Status != StatusOnSale {
		return fmt.Errorf("%w: status must be 0 or 1", ErrInvalidInput)
	}
	for _, f := range dto.Flavors {
		flavorName := strings.TrimSpace(f.Name)
		if flavorName == "" {
			return fmt.Errorf("%w: flavor name is required", ErrInvalidInput)
		}
		if utf8.RuneCountInString(flavorName) > maxFlavorNameLen {
			return fmt.Errorf("%w: flavor name must be at most %d characters", ErrInvalidInput, maxFlavorNameLen)
		}
		if utf8.RuneCountInString(f.Value) > maxFlavorValueLen {
			return fmt.Errorf("%w: flavor %q value must be at most %d characters", ErrInvalidInput, flavorName, maxFlavorValueLen)
		}
		var choices []string
		if err := json.Unmarshal([]byte(f.Value), &choices); err != nil {
			return fmt.Errorf("%w: flavor %q value must be a JSON array of strings", ErrInvalidInput, f.Name)
		}
	}
	return nil
}
