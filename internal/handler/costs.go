package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/delivra/api/internal/costing"
	"github.com/delivra/api/internal/service"
	"github.com/delivra/api/internal/units"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CostServicer defines the costing operations exposed to staff.
// Satisfied by *service.CostService.
type CostServicer interface {
	Convert(quantity decimal.Decimal, from, to units.Unit) (decimal.Decimal, error)
	PricePerUnit(totalPrice, totalQuantity decimal.Decimal, quantityUnit, target units.Unit) (decimal.Decimal, error)
	CalculateDishCost(ctx context.Context, lines []service.IngredientRequest) (service.DishCost, error)
	StoredDishCost(ctx context.Context, dishID uuid.UUID) (service.DishCost, error)
}

// CostHandler handles unit conversion and costing endpoints.
type CostHandler struct {
	svc    CostServicer
	logger *zap.Logger
}

// NewCostHandler creates a new CostHandler.
func NewCostHandler(svc CostServicer, logger *zap.Logger) *CostHandler {
	return &CostHandler{svc: svc, logger: logger}
}

// RegisterRoutes registers costing endpoints: /admin/costs
func (h *CostHandler) RegisterRoutes(r chi.Router) {
	r.Post("/convert", h.Convert)
	r.Post("/price-per-unit", h.PricePerUnit)
	r.Post("/dish", h.DishCost)
}

// --- Request / Response types ---

type convertRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
	From     string          `json:"from"`
	To       string          `json:"to"`
}

type convertResponse struct {
	Quantity string `json:"quantity"`
	Unit     string `json:"unit"`
}

type pricePerUnitRequest struct {
	TotalPrice    decimal.Decimal `json:"total_price"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
	Unit          string          `json:"unit"`
	TargetUnit    string          `json:"target_unit"`
}

type pricePerUnitResponse struct {
	PricePerUnit string `json:"price_per_unit"`
	Unit         string `json:"unit"`
}

type dishCostRequest struct {
	Ingredients []ingredientRequest `json:"ingredients"`
}

type ingredientRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	Unit      string          `json:"unit"`
}

type dishCostResponse struct {
	Cost      string `json:"cost"`
	CostExact string `json:"cost_exact"`
}

// --- Handlers ---

// Convert handles POST /admin/costs/convert.
func (h *CostHandler) Convert(w http.ResponseWriter, r *http.Request) {
	var req convertRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	got, err := h.svc.Convert(req.Quantity, units.Unit(req.From), units.Unit(req.To))
	if err != nil {
		h.writeCostError(w, "convert", err)
		return
	}
	writeJSON(w, http.StatusOK, convertResponse{Quantity: got.String(), Unit: req.To})
}

// PricePerUnit handles POST /admin/costs/price-per-unit. An empty
// target_unit means the base unit of unit.
func (h *CostHandler) PricePerUnit(w http.ResponseWriter, r *http.Request) {
	var req pricePerUnitRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	target := units.Unit(req.TargetUnit)
	if target == "" {
		base, err := units.BaseUnit(units.Unit(req.Unit))
		if err != nil {
			h.writeCostError(w, "price per unit", err)
			return
		}
		target = base
	}

	ppu, err := h.svc.PricePerUnit(req.TotalPrice, req.TotalQuantity, units.Unit(req.Unit), target)
	if err != nil {
		h.writeCostError(w, "price per unit", err)
		return
	}
	writeJSON(w, http.StatusOK, pricePerUnitResponse{PricePerUnit: ppu.String(), Unit: string(target)})
}

// DishCost handles POST /admin/costs/dish.
func (h *CostHandler) DishCost(w http.ResponseWriter, r *http.Request) {
	var req dishCostRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	lines := make([]service.IngredientRequest, len(req.Ingredients))
	for i, ing := range req.Ingredients {
		id, err := uuid.Parse(ing.ProductID)
		if err != nil {
			writeError(w, http.StatusBadRequest, formatIngredientError(i, "invalid product_id"))
			return
		}
		lines[i] = service.IngredientRequest{
			ProductID: id,
			Quantity:  ing.Quantity,
			Unit:      units.Unit(ing.Unit),
		}
	}

	cost, err := h.svc.CalculateDishCost(r.Context(), lines)
	if err != nil {
		h.writeCostError(w, "dish cost", err)
		return
	}
	writeJSON(w, http.StatusOK, toDishCostResponse(cost))
}

// StoredDishCost handles GET /admin/dishes/{id}/cost.
func (h *CostHandler) StoredDishCost(w http.ResponseWriter, r *http.Request) {
	dishID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid dish ID")
		return
	}

	cost, err := h.svc.StoredDishCost(r.Context(), dishID)
	if err != nil {
		h.writeCostError(w, "stored dish cost", err)
		return
	}
	writeJSON(w, http.StatusOK, toDishCostResponse(cost))
}

func (h *CostHandler) writeCostError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, units.ErrUnsupportedUnit),
		errors.Is(err, units.ErrNoConversionPath),
		errors.Is(err, costing.ErrDivisionByZero),
		errors.Is(err, costing.ErrInvalidQuantity):
		writeError(w, http.StatusUnprocessableEntity, "cannot compute cost: "+err.Error())
	case errors.Is(err, service.ErrEntityNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		internalError(w, h.logger, op, err)
	}
}

func toDishCostResponse(c service.DishCost) dishCostResponse {
	return dishCostResponse{Cost: money(c.Rounded), CostExact: c.Cost.String()}
}

func formatIngredientError(i int, msg string) string {
	return "ingredients[" + strconv.Itoa(i) + "]: " + msg
}
