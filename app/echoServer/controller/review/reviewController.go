package review

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"bookstore/app/echoServer/jwtx"
	reviewsvc "bookstore/service/review"
	"bookstore/util/blob"
)

// ReviewForm is multipart: text fields plus an optional image.
type ReviewForm struct {
	BookID  int64  `form:"book_id" validate:"required,gt=0"`
	Rating  int    `form:"rating" validate:"required,gte=1,lte=5"`
	Pros    string `form:"pros"`
	Cons    string `form:"cons"`
	Comment string `form:"comment"`
}

type Controller struct {
	Svc  reviewsvc.Service
	Blob *blob.Store
	V    *validator.Validate
	Log  *slog.Logger
}

// GET /api/reviews/book/:bookId
func (h *Controller) ListByBook(c echo.Context) error {
	bookID, err := strconv.ParseInt(c.Param("bookId"), 10, 64)
	if err != nil || bookID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid book id"})
	}

	rows, err := h.Svc.ListByBook(c.Request().Context(), bookID)
	if err != nil {
		h.Log.Error("review list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reviews": rows})
}

// POST /api/reviews
func (h *Controller) Create(c echo.Context) error {
	id, err := jwtx.IdentityFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	var form ReviewForm
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid form"})
	}
	if err := h.V.Struct(form); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error"})
	}

	var imageRef *string
	if fh, err := c.FormFile("image"); err == nil {
		src, err := fh.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "cannot read upload"})
		}
		defer src.Close()

		ref, err := h.Blob.Save("reviews", fh.Filename, src)
		if err != nil {
			h.Log.Error("review image save", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
		imageRef = &ref
	}

	rv, err := h.Svc.Create(c.Request().Context(), id.UserID, reviewsvc.CreateInput{
		BookID:  form.BookID,
		Rating:  form.Rating,
		Pros:    form.Pros,
		Cons:    form.Cons,
		Comment: form.Comment,
		Image:   imageRef,
	})
	if err != nil {
		if errors.Is(err, reviewsvc.ErrBadInput) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid payload"})
		}
		h.Log.Error("review create", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusCreated, rv)
}
