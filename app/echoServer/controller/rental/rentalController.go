package rental

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"bookstore/app/echoServer/jwtx"
	"bookstore/model"
	rs "bookstore/service/rental"
	"bookstore/util/access"
)

type Controller struct {
	Svc rs.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /api/rental-requests
func (h *Controller) SubmitRequest(c echo.Context) error {
	id, err := jwtx.IdentityFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	var req SubmitRequestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	reqID, err := h.Svc.Submit(c.Request().Context(), id, req.BookID, req.RequestedReturnDate)
	if err != nil {
		return h.mapError(c, "request submit", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"id":      reqID,
		"message": "rental request submitted",
	})
}

// GET /api/rental-requests
func (h *Controller) ListRequests(c echo.Context) error {
	id, err := jwtx.IdentityFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	rows, err := h.Svc.ListPending(c.Request().Context(), id)
	if err != nil {
		return h.mapError(c, "request list", err)
	}
	return c.JSON(http.StatusOK, rows)
}

// PUT /api/rental-requests/:id
func (h *Controller) ResolveRequest(c echo.Context) error {
	id, err := jwtx.IdentityFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	requestID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || requestID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	var req ResolveRequestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid status"})
	}

	if err := h.Svc.Resolve(c.Request().Context(), id, requestID, model.RequestStatus(req.Status)); err != nil {
		return h.mapError(c, "request resolve", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "request " + req.Status})
}

// POST /api/rentals
func (h *Controller) Issue(c echo.Context) error {
	id, err := jwtx.IdentityFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	var req IssueRentalReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	rentalID, err := h.Svc.Issue(c.Request().Context(), id, req.UserID, req.BookID, req.ReturnDate, req.PaymentMethod)
	if err != nil {
		return h.mapError(c, "rental issue", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"rental_id": rentalID,
		"message":   "rental issued",
	})
}

// GET /api/rentals/user/:user_id
func (h *Controller) ActiveForUser(c echo.Context) error {
	id, err := jwtx.IdentityFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil || userID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid user id"})
	}

	rows, err := h.Svc.ActiveForUser(c.Request().Context(), id, userID)
	if err != nil {
		return h.mapError(c, "rental list", err)
	}
	return c.JSON(http.StatusOK, rows)
}

// GET /api/my-rentals
func (h *Controller) MyRentals(c echo.Context) error {
	id, err := jwtx.IdentityFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	rows, err := h.Svc.ActiveForUser(c.Request().Context(), id, id.UserID)
	if err != nil {
		return h.mapError(c, "my rentals", err)
	}
	return c.JSON(http.StatusOK, rows)
}

// PUT /api/rentals/:id/close
func (h *Controller) Close(c echo.Context) error {
	id, err := jwtx.IdentityFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	rentalID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || rentalID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	if err := h.Svc.Close(c.Request().Context(), id, rentalID); err != nil {
		return h.mapError(c, "rental close", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "rental closed"})
}

// GET /api/readers
func (h *Controller) Readers(c echo.Context) error {
	id, err := jwtx.IdentityFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	rows, err := h.Svc.Readers(c.Request().Context(), id)
	if err != nil {
		return h.mapError(c, "readers list", err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *Controller) mapError(c echo.Context, op string, err error) error {
	if errors.Is(err, access.ErrForbidden) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	}
	switch rs.Code(err) {
	case rs.ErrBadInput:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid input"})
	case rs.ErrBookNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"message": "book not found"})
	case rs.ErrNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"message": "not found"})
	case rs.ErrOutOfStock:
		return c.JSON(http.StatusConflict, echo.Map{"message": "no rental stock available"})
	case rs.ErrNotActive:
		return c.JSON(http.StatusConflict, echo.Map{"message": "rental is not active"})
	case rs.ErrNotPending:
		return c.JSON(http.StatusConflict, echo.Map{"message": "request already resolved"})
	default:
		h.Log.Error(op, "err", err, "req_id", c.Response().Header().Get(echo.HeaderXRequestID))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
}
