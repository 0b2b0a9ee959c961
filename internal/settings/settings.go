// Package settings holds the restaurant-wide configuration row.
//
// The row is created with defaults by Init at startup and cached in memory;
// readers call Current and never touch the database.
package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/delivra/api/internal/database"
	"github.com/delivra/api/internal/pgnum"
	"github.com/shopspring/decimal"
)

// ErrInvalidSettings is returned by Update for out-of-range values.
var ErrInvalidSettings = errors.New("invalid settings")

// Settings is the restaurant configuration.
type Settings struct {
	RestaurantName string          `json:"restaurant_name"`
	Phone          string          `json:"phone"`
	Address        string          `json:"address"`
	Logo           string          `json:"logo"`
	TaxRate        decimal.Decimal `json:"tax_rate"`
	MaxExtras      int             `json:"max_extras"`
}

// Defaults returns the configuration used when no row exists yet.
func Defaults() Settings {
	return Settings{
		RestaurantName: "Mi Restaurante",
		Phone:          "+1234567890",
		Address:        "Dirección del restaurante",
		Logo:           "logo.png",
		TaxRate:        decimal.Zero,
		MaxExtras:      5,
	}
}

// Validate checks the settings before they are persisted.
func (s Settings) Validate() error {
	switch {
	case strings.TrimSpace(s.RestaurantName) == "":
		return fmt.Errorf("%w: restaurant_name is required", ErrInvalidSettings)
	case s.TaxRate.IsNegative():
		return fmt.Errorf("%w: tax_rate must be >= 0", ErrInvalidSettings)
	case s.TaxRate.GreaterThan(decimal.NewFromInt(100)):
		return fmt.Errorf("%w: tax_rate must be <= 100", ErrInvalidSettings)
	case s.MaxExtras < 0:
		return fmt.Errorf("%w: max_extras must be >= 0", ErrInvalidSettings)
	}
	return nil
}

// Store is the persistence the manager needs.
// Satisfied by *database.Queries.
type Store interface {
	EnsureSettings(ctx context.Context, arg database.EnsureSettingsParams) (database.Setting, error)
	UpdateSettings(ctx context.Context, arg database.UpdateSettingsParams) (database.Setting, error)
}

// Manager owns the cached configuration.
type Manager struct {
	store Store

	mu      sync.RWMutex
	current Settings
}

// NewManager creates a Manager holding Defaults until Init runs.
func NewManager(store Store) *Manager {
	return &Manager{store: store, current: Defaults()}
}

// Init reads the configuration row, creating it with defaults if missing.
func (m *Manager) Init(ctx context.Context) error {
	d := Defaults()
	row, err := m.store.EnsureSettings(ctx, database.EnsureSettingsParams{
		RestaurantName: d.RestaurantName,
		Phone:          d.Phone,
		Address:        d.Address,
		Logo:           d.Logo,
		TaxRate:        pgnum.Money(d.TaxRate),
		MaxExtras:      int32(d.MaxExtras),
	})
	if err != nil {
		return fmt.Errorf("ensure settings: %w", err)
	}

	m.mu.Lock()
	m.current = fromRow(row)
	m.mu.Unlock()
	return nil
}

// Current returns the cached configuration.
func (m *Manager) Current() Settings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Update validates and persists s, then replaces the cached copy.
func (m *Manager) Update(ctx context.Context, s Settings) (Settings, error) {
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	row, err := m.store.UpdateSettings(ctx, database.UpdateSettingsParams{
		RestaurantName: s.RestaurantName,
		Phone:          s.Phone,
		Address:        s.Address,
		Logo:           s.Logo,
		TaxRate:        pgnum.Money(s.TaxRate),
		MaxExtras:      int32(s.MaxExtras),
	})
	if err != nil {
		return Settings{}, fmt.Errorf("update settings: %w", err)
	}

	updated := fromRow(row)
	m.mu.Lock()
	m.current = updated
	m.mu.Unlock()
	return updated, nil
}

func fromRow(row database.Setting) Settings {
	return Settings{
		RestaurantName: row.RestaurantName,
		Phone:          row.Phone,
		Address:        row.Address,
		Logo:           row.Logo,
		TaxRate:        pgnum.ToDecimal(row.TaxRate),
		MaxExtras:      int(row.MaxExtras),
	}
}
