package book

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"bookstore/app/echoServer/jwtx"
	booksvc "bookstore/service/book"
	"bookstore/util/access"
	"bookstore/util/blob"
)

type Controller struct {
	Svc  booksvc.Service
	Blob *blob.Store
	V    *validator.Validate
	Log  *slog.Logger
}

// POST /api/books  (owner, multipart)
func (h *Controller) Create(c echo.Context) error {
	id, err := jwtx.IdentityFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	var form CreateBookForm
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid form"})
	}
	if err := h.V.Struct(form); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	var categoryIDs []int64
	if form.Categories != "" {
		if err := json.Unmarshal([]byte(form.Categories), &categoryIDs); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid categories"})
		}
	}

	var imageRef *string
	if fh, err := c.FormFile("image"); err == nil {
		src, err := fh.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "cannot read upload"})
		}
		defer src.Close()

		ref, err := h.Blob.Save("books", fh.Filename, src)
		if err != nil {
			h.Log.Error("book image save", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
		imageRef = &ref
	}

	bookID, err := h.Svc.Create(c.Request().Context(), id, booksvc.CreateInput{
		Title:       form.Title,
		Author:      form.Author,
		Year:        form.Year,
		Price:       form.Price,
		Stock:       form.Stock,
		RentalStock: form.RentalStock,
		Available:   form.Available == "1",
		Rentable:    form.Rentable == "1",
		Description: form.Description,
		Image:       imageRef,
		CategoryIDs: categoryIDs,
	})
	if err != nil {
		switch {
		case errors.Is(err, access.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
		case errors.Is(err, booksvc.ErrBadInput):
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid payload"})
		default:
			h.Log.Error("book create", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": bookID, "image": imageRef})
}

// GET /api/books
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.List(c.Request().Context())
	if err != nil {
		h.Log.Error("book list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, rows)
}

// GET /api/books/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	row, err := h.Svc.Detail(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, booksvc.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "book not found"})
		}
		h.Log.Error("book detail", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, row)
}

// GET /api/books/search/:query
func (h *Controller) Search(c echo.Context) error {
	rows, err := h.Svc.Search(c.Request().Context(), c.Param("query"))
	if err != nil {
		h.Log.Error("book search", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, rows)
}

// GET /api/categories
func (h *Controller) Categories(c echo.Context) error {
	rows, err := h.Svc.Categories(c.Request().Context())
	if err != nil {
		h.Log.Error("category list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, rows)
}
