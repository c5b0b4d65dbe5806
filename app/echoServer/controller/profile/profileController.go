package profile

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"bookstore/app/echoServer/jwtx"
	profilesvc "bookstore/service/profile"
	"bookstore/util/blob"
)

type UpdateReq struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
}

type ChangePasswordReq struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

type Controller struct {
	Svc  profilesvc.Service
	Blob *blob.Store
	V    *validator.Validate
	Log  *slog.Logger
}

// GET /api/profile
func (h *Controller) Get(c echo.Context) error {
	id, err := jwtx.IdentityFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	u, err := h.Svc.Get(c.Request().Context(), id.UserID)
	if err != nil {
		if errors.Is(err, profilesvc.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "user not found"})
		}
		h.Log.Error("profile get", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, u)
}

// PUT /api/profile
func (h *Controller) Update(c echo.Context) error {
	id, err := jwtx.IdentityFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	var req UpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error"})
	}

	if err := h.Svc.Update(c.Request().Context(), id.UserID, req.FullName, req.Email); err != nil {
		if errors.Is(err, profilesvc.ErrBadInput) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "bad input"})
		}
		h.Log.Error("profile update", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "profile updated"})
}

// PUT /api/profile/password
func (h *Controller) ChangePassword(c echo.Context) error {
	id, err := jwtx.IdentityFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	var req ChangePasswordReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error"})
	}

	if err := h.Svc.ChangePassword(c.Request().Context(), id.UserID, req.OldPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, profilesvc.ErrWrongOldPwd):
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "old password does not match"})
		case errors.Is(err, profilesvc.ErrBadInput):
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "bad input"})
		case errors.Is(err, profilesvc.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "user not found"})
		default:
			h.Log.Error("password change", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "password changed"})
}

// POST /api/profile/avatar
func (h *Controller) UploadAvatar(c echo.Context) error {
	id, err := jwtx.IdentityFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	fh, err := c.FormFile("avatar")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "avatar file is required"})
	}
	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "cannot read upload"})
	}
	defer src.Close()

	ref, err := h.Blob.Save("avatars", fh.Filename, src)
	if err != nil {
		h.Log.Error("avatar save", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}

	if err := h.Svc.SetAvatar(c.Request().Context(), id.UserID, ref); err != nil {
		h.Log.Error("avatar update", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":        "avatar uploaded",
		"profilePicture": ref,
	})
}
