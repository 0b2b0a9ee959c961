package settings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/delivra/api/internal/database"
	"github.com/delivra/api/internal/pgnum"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore mimics the single-row table.
type memStore struct {
	row       *database.Setting
	ensures   int
	updateErr error
}

func (m *memStore) EnsureSettings(_ context.Context, arg database.EnsureSettingsParams) (database.Setting, error) {
	m.ensures++
	if m.row == nil {
		m.row = &database.Setting{
			ID:             1,
			RestaurantName: arg.RestaurantName,
			Phone:          arg.Phone,
			Address:        arg.Address,
			Logo:           arg.Logo,
			TaxRate:        arg.TaxRate,
			MaxExtras:      arg.MaxExtras,
			UpdatedAt:      time.Now(),
		}
	}
	return *m.row, nil
}

func (m *memStore) UpdateSettings(_ context.Context, arg database.UpdateSettingsParams) (database.Setting, error) {
	if m.updateErr != nil {
		return database.Setting{}, m.updateErr
	}
	m.row = &database.Setting{
		ID:             1,
		RestaurantName: arg.RestaurantName,
		Phone:          arg.Phone,
		Address:        arg.Address,
		Logo:           arg.Logo,
		TaxRate:        arg.TaxRate,
		MaxExtras:      arg.MaxExtras,
		UpdatedAt:      time.Now(),
	}
	return *m.row, nil
}

func TestManager_CurrentBeforeInitIsDefaults(t *testing.T) {
	m := NewManager(&memStore{})
	assert.Equal(t, 5, m.Current().MaxExtras)
	assert.Equal(t, "Mi Restaurante", m.Current().RestaurantName)
}

func TestManager_InitCreatesDefaultRow(t *testing.T) {
	store := &memStore{}
	m := NewManager(store)

	require.NoError(t, m.Init(context.Background()))
	require.NotNil(t, store.row)
	assert.Equal(t, "Mi Restaurante", store.row.RestaurantName)
	assert.Equal(t, int32(5), store.row.MaxExtras)
}

func TestManager_InitKeepsExistingRow(t *testing.T) {
	store := &memStore{row: &database.Setting{
		ID:             1,
		RestaurantName: "La Casa",
		Logo:           "casa.png",
		TaxRate:        pgnum.Money(decimal.RequireFromString("8.5")),
		MaxExtras:      2,
	}}
	m := NewManager(store)

	require.NoError(t, m.Init(context.Background()))
	got := m.Current()
	assert.Equal(t, "La Casa", got.RestaurantName)
	assert.Equal(t, 2, got.MaxExtras)
	assert.Equal(t, "8.50", got.TaxRate.StringFixed(2))
}

func TestManager_Update(t *testing.T) {
	store := &memStore{}
	m := NewManager(store)
	require.NoError(t, m.Init(context.Background()))

	s := m.Current()
	s.RestaurantName = "Taquería"
	s.MaxExtras = 3
	updated, err := m.Update(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, "Taquería", updated.RestaurantName)
	assert.Equal(t, 3, m.Current().MaxExtras)
}

func TestManager_UpdateRejectsInvalid(t *testing.T) {
	m := NewManager(&memStore{})

	tests := map[string]func(*Settings){
		"empty name":      func(s *Settings) { s.RestaurantName = " " },
		"negative tax":    func(s *Settings) { s.TaxRate = decimal.NewFromInt(-1) },
		"tax over 100":    func(s *Settings) { s.TaxRate = decimal.NewFromInt(101) },
		"negative extras": func(s *Settings) { s.MaxExtras = -1 },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			s := Defaults()
			mutate(&s)
			_, err := m.Update(context.Background(), s)
			assert.ErrorIs(t, err, ErrInvalidSettings)
			assert.Equal(t, Defaults(), m.Current())
		})
	}
}

func TestManager_UpdateStoreFailureKeepsCache(t *testing.T) {
	store := &memStore{updateErr: errors.New("db down")}
	m := NewManager(store)

	s := Defaults()
	s.RestaurantName = "Nuevo"
	_, err := m.Update(context.Background(), s)
	require.Error(t, err)
	assert.Equal(t, "Mi Restaurante", m.Current().RestaurantName)
}
