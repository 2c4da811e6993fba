package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"item-store/internal/schema"
	"item-store/internal/store"

	"github.com/go-playground/validator/v10"
)

const (
	NotFoundMessage = "Item not found"
	DeletedMessage  = "Item deleted"
)

var ErrItemNotFound = errors.New(NotFoundMessage)

// ItemFields are the columns the item contract needs from the derived table.
var ItemFields = []string{"name", "email", "phone", "note"}

// Item is the API view of one row.
type Item struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Note  string `json:"note"`
}

// ItemInput is the create/update payload. Pointers tell a missing field
// apart from an empty one: every field must be present, and name must not
// be empty.
type ItemInput struct {
	Name  *string `json:"name" validate:"required,min=1"`
	Email *string `json:"email" validate:"required"`
	Phone *string `json:"phone" validate:"required"`
	Note  *string `json:"note" validate:"required"`
}

func (in ItemInput) fields() map[string]string {
	return map[string]string{
		"name":  deref(in.Name),
		"email": deref(in.Email),
		"phone": deref(in.Phone),
		"note":  deref(in.Note),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// RecordStore is the part of store.Store the service uses.
type RecordStore interface {
	Insert(ctx context.Context, fields map[string]string) (int64, error)
	Get(ctx context.Context, id int64) (store.Row, error)
	Replace(ctx context.Context, id int64, fields map[string]string) (store.Row, error)
	Delete(ctx context.Context, id int64) error
}

// CheckSchema fails when the derived table cannot back items.
func CheckSchema(table *schema.Table) error {
	var missing []string
	for _, f := range ItemFields {
		if !table.HasColumn(f) {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("table %s is missing item columns: %s", table.Name, strings.Join(missing, ", "))
	}
	return nil
}

type ItemService struct {
	store    RecordStore
	validate *validator.Validate
}

func NewItemService(st RecordStore) *ItemService {
	v := validator.New()
	v.RegisterTagNameFunc(jsonTagName)
	return &ItemService{store: st, validate: v}
}

func (s *ItemService) Validate(in ItemInput) error {
	if err := s.validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return newValidationError(verrs)
		}
		return err
	}
	return nil
}

func (s *ItemService) Create(ctx context.Context, in ItemInput) (Item, error) {
	if err := s.Validate(in); err != nil {
		return Item{}, err
	}

	fields := in.fields()
	id, err := s.store.Insert(ctx, fields)
	if err != nil {
		return Item{}, err
	}
	return toItem(store.Row{ID: id, Fields: fields}), nil
}

func (s *ItemService) Read(ctx context.Context, id int64) (Item, error) {
	row, err := s.store.Get(ctx, id)
	if err != nil {
		return Item{}, mapNotFound(err)
	}
	return toItem(row), nil
}

// Update is a full replace of the four fields.
func (s *ItemService) Update(ctx context.Context, id int64, in ItemInput) (Item, error) {
	if err := s.Validate(in); err != nil {
		return Item{}, err
	}

	row, err := s.store.Replace(ctx, id, in.fields())
	if err != nil {
		return Item{}, mapNotFound(err)
	}
	return toItem(row), nil
}

func (s *ItemService) Delete(ctx context.Context, id int64) error {
	return mapNotFound(s.store.Delete(ctx, id))
}

func mapNotFound(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrItemNotFound
	}
	return err
}

func toItem(row store.Row) Item {
	return Item{
		ID:    row.ID,
		Name:  row.Fields["name"],
		Email: row.Fields["email"],
		Phone: row.Fields["phone"],
		Note:  row.Fields["note"],
	}
}
