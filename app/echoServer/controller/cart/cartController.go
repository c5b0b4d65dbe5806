package cart

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"bookstore/app/echoServer/jwtx"
	cartsvc "bookstore/service/cart"
)

type ItemReq struct {
	BookID   int64 `json:"book_id" validate:"required,gt=0"`
	Quantity int64 `json:"quantity" validate:"required,gte=1"`
}

type RemoveReq struct {
	BookID int64 `json:"book_id" validate:"required,gt=0"`
}

type Controller struct {
	Svc cartsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /api/cart/add
func (h *Controller) Add(c echo.Context) error {
	id, err := jwtx.IdentityFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	var req ItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error"})
	}

	if err := h.Svc.Add(c.Request().Context(), id.UserID, req.BookID, req.Quantity); err != nil {
		return h.mapError(c, "cart add", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "added to cart"})
}

// GET /api/cart
func (h *Controller) List(c echo.Context) error {
	id, err := jwtx.IdentityFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	rows, err := h.Svc.List(c.Request().Context(), id.UserID)
	if err != nil {
		return h.mapError(c, "cart list", err)
	}
	return c.JSON(http.StatusOK, rows)
}

// PUT /api/cart/update
func (h *Controller) Update(c echo.Context) error {
	id, err := jwtx.IdentityFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	var req ItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error"})
	}

	if err := h.Svc.Update(c.Request().Context(), id.UserID, req.BookID, req.Quantity); err != nil {
		return h.mapError(c, "cart update", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "quantity updated"})
}

// DELETE /api/cart/remove
func (h *Controller) Remove(c echo.Context) error {
	id, err := jwtx.IdentityFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	var req RemoveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error"})
	}

	if err := h.Svc.Remove(c.Request().Context(), id.UserID, req.BookID); err != nil {
		return h.mapError(c, "cart remove", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "removed from cart"})
}

func (h *Controller) mapError(c echo.Context, op string, err error) error {
	switch {
	case errors.Is(err, cartsvc.ErrBadInput):
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid input"})
	case errors.Is(err, cartsvc.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"message": "cart item not found"})
	default:
		h.Log.Error(op, "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
}
