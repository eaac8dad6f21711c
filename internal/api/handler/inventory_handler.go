package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kardexlab/inventory-api/internal/api/metrics"
	"github.com/kardexlab/inventory-api/internal/core/domain"
	"github.com/kardexlab/inventory-api/internal/core/ports"
)

type InventoryHandler struct {
	inventory ports.InventoryService
}

func NewInventoryHandler(inventory ports.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventory: inventory}
}

type movementRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Type      string `json:"type" validate:"required,oneof=in out"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
	Notes     string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// Levels returns the current stock quantity for every product.
//
// @Summary      Stock levels
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Inventory
// @Router       /api/inventory [get]
func (h *InventoryHandler) Levels(c echo.Context) error {
	levels, err := h.inventory.Levels(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, levels)
}

// ApplyMovement records a stock movement and adjusts the quantity on hand.
// The acting user is taken from the identity context.
//
// @Summary      Apply stock movement
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      movementRequest  true  "Movement details"
// @Success      201   {object}  domain.Movement
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/movements [post]
func (h *InventoryHandler) ApplyMovement(c echo.Context) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	var req movementRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	movement, err := h.inventory.ApplyMovement(c.Request().Context(), ports.MovementInput{
		ProductID: req.ProductID,
		Type:      domain.MovementType(req.Type),
		Quantity:  req.Quantity,
		Notes:     req.Notes,
		UserID:    identity.UserID,
	})
	if err != nil {
		return err
	}

	metrics.MovementsTotal.WithLabelValues(string(movement.Type)).Inc()
	return c.JSON(http.StatusCreated, movement)
}

// Movements returns the movement history, optionally filtered by product.
//
// @Summary      Movement history
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Param        product_id  query    string  false  "Filter by product id"
// @Success      200         {array}  domain.Movement
// @Router       /api/movements [get]
func (h *InventoryHandler) Movements(c echo.Context) error {
	movements, err := h.inventory.Movements(c.Request().Context(), c.QueryParam("product_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, movements)
}
