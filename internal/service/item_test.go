package service_test

import (
	"context"
	"errors"
	"testing"

	"item-store/internal/schema"
	"item-store/internal/service"
	"item-store/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory RecordStore.
type memStore struct {
	rows   map[int64]map[string]string
	nextID int64
	calls  int
	err    error
}

func newMemStore() *memStore {
	return &memStore{rows: map[int64]map[string]string{}}
}

func (m *memStore) Insert(_ context.Context, fields map[string]string) (int64, error) {
	m.calls++
	if m.err != nil {
		return 0, m.err
	}
	m.nextID++
	m.rows[m.nextID] = fields
	return m.nextID, nil
}

func (m *memStore) Get(_ context.Context, id int64) (store.Row, error) {
	m.calls++
	f, ok := m.rows[id]
	if !ok {
		return store.Row{}, store.ErrNotFound
	}
	return store.Row{ID: id, Fields: f}, nil
}

func (m *memStore) Replace(_ context.Context, id int64, fields map[string]string) (store.Row, error) {
	m.calls++
	if _, ok := m.rows[id]; !ok {
		return store.Row{}, store.ErrNotFound
	}
	m.rows[id] = fields
	return store.Row{ID: id, Fields: fields}, nil
}

func (m *memStore) Delete(_ context.Context, id int64) error {
	m.calls++
	if _, ok := m.rows[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

func str(s string) *string { return &s }

func validInput(name string) service.ItemInput {
	return service.ItemInput{
		Name:  str(name),
		Email: str("a@b.com"),
		Phone: str("1"),
		Note:  str("n"),
	}
}

func TestCreate_ReturnsAssignedID(t *testing.T) {
	svc := service.NewItemService(newMemStore())

	item, err := svc.Create(context.Background(), validInput("Alice"))
	require.NoError(t, err)
	assert.Equal(t, service.Item{ID: 1, Name: "Alice", Email: "a@b.com", Phone: "1", Note: "n"}, item)
}

func TestCreate_AllowsEmptyNonNameFields(t *testing.T) {
	svc := service.NewItemService(newMemStore())

	in := service.ItemInput{Name: str("x"), Email: str(""), Phone: str(""), Note: str("")}
	item, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "", item.Email)
}

func TestCreate_ValidationNeverReachesStore(t *testing.T) {
	cases := map[string]service.ItemInput{
		"empty name":    validInput(""),
		"missing name":  {Email: str("a@b.com"), Phone: str("1"), Note: str("n")},
		"missing email": {Name: str("x"), Phone: str("1"), Note: str("n")},
		"missing all":   {},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			ms := newMemStore()
			svc := service.NewItemService(ms)

			_, err := svc.Create(context.Background(), in)
			var verr *service.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.NotEmpty(t, verr.Fields)
			assert.Zero(t, ms.calls)
		})
	}
}

func TestValidationError_FieldNames(t *testing.T) {
	svc := service.NewItemService(newMemStore())

	err := svc.Validate(service.ItemInput{Name: str(""), Email: str("e")})
	var verr *service.ValidationError
	require.ErrorAs(t, err, &verr)

	fields := map[string]string{}
	for _, f := range verr.Fields {
		fields[f.Field] = f.Tag
	}
	assert.Equal(t, map[string]string{"name": "min", "phone": "required", "note": "required"}, fields)
}

func TestRead(t *testing.T) {
	ctx := context.Background()
	svc := service.NewItemService(newMemStore())

	created, err := svc.Create(ctx, validInput("Alice"))
	require.NoError(t, err)

	got, err := svc.Read(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = svc.Read(ctx, 999)
	assert.ErrorIs(t, err, service.ErrItemNotFound)
	assert.Equal(t, "Item not found", err.Error())
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	svc := service.NewItemService(newMemStore())

	created, err := svc.Create(ctx, validInput("Alice"))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, service.ItemInput{
		Name: str("Bob"), Email: str("bob@example.com"), Phone: str("2"), Note: str(""),
	})
	require.NoError(t, err)
	assert.Equal(t, service.Item{ID: created.ID, Name: "Bob", Email: "bob@example.com", Phone: "2", Note: ""}, updated)

	_, err = svc.Update(ctx, 999, validInput("Ghost"))
	assert.ErrorIs(t, err, service.ErrItemNotFound)

	_, err = svc.Update(ctx, created.ID, validInput(""))
	var verr *service.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	svc := service.NewItemService(newMemStore())

	created, err := svc.Create(ctx, validInput("Alice"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Read(ctx, created.ID)
	assert.ErrorIs(t, err, service.ErrItemNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, created.ID), service.ErrItemNotFound)
}

func TestStoreFailurePassesThrough(t *testing.T) {
	boom := errors.New("connection reset")
	ms := newMemStore()
	ms.err = boom

	_, err := service.NewItemService(ms).Create(context.Background(), validInput("Alice"))
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, service.ErrItemNotFound)
}

func TestCheckSchema(t *testing.T) {
	ok, err := schema.Derive("items", []string{"id", "name", "email", "phone", "note", "extra"})
	require.NoError(t, err)
	assert.NoError(t, service.CheckSchema(ok))

	partial, err := schema.Derive("items", []string{"name", "email"})
	require.NoError(t, err)
	err = service.CheckSchema(partial)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "phone, note")
}
