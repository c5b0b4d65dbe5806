package echoServer

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	authctrl "bookstore/app/echoServer/controller/auth"
	bookctrl "bookstore/app/echoServer/controller/book"
	cartctrl "bookstore/app/echoServer/controller/cart"
	profilectrl "bookstore/app/echoServer/controller/profile"
	rentalctrl "bookstore/app/echoServer/controller/rental"
	reviewctrl "bookstore/app/echoServer/controller/review"
)

type C struct {
	Auth    *authctrl.Controller
	Profile *profilectrl.Controller
	Book    *bookctrl.Controller
	Cart    *cartctrl.Controller
	Review  *reviewctrl.Controller
	Rental  *rentalctrl.Controller

	JWTSecret string
	UploadDir string
}

func Register(e *echo.Echo, c C) {
	// Public
	pub := e.Group("/api")
	pub.POST("/auth/register", c.Auth.Register)
	pub.POST("/auth/login", c.Auth.Login)

	pub.GET("/books", c.Book.List)
	pub.GET("/books/:id", c.Book.Detail)
	pub.GET("/books/search/:query", c.Book.Search)
	pub.GET("/categories", c.Book.Categories)
	pub.GET("/reviews/book/:bookId", c.Review.ListByBook)

	// Uploaded images are served straight off disk.
	e.Static("/uploads", c.UploadDir)

	// Auth
	auth := e.Group("/api")
	auth.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(c.JWTSecret),
		TokenLookup: "header:Authorization:Bearer ",
	}))
	auth.Use(identityMiddleware)

	// Profile
	auth.GET("/profile", c.Profile.Get)
	auth.PUT("/profile", c.Profile.Update)
	auth.PUT("/profile/password", c.Profile.ChangePassword)
	auth.POST("/profile/avatar", c.Profile.UploadAvatar)

	// Catalog (create is admin-only, enforced in the service)
	auth.POST("/books", c.Book.Create)

	// Cart
	auth.POST("/cart/add", c.Cart.Add)
	auth.GET("/cart", c.Cart.List)
	auth.PUT("/cart/update", c.Cart.Update)
	auth.DELETE("/cart/remove", c.Cart.Remove)

	// Reviews
	auth.POST("/reviews", c.Review.Create)

	// Rental requests (librarian decides, anyone submits)
	auth.POST("/rental-requests", c.Rental.SubmitRequest)
	auth.GET("/rental-requests", c.Rental.ListRequests)
	auth.PUT("/rental-requests/:id", c.Rental.ResolveRequest)

	// Rentals
	auth.POST("/rentals", c.Rental.Issue)
	auth.GET("/rentals/user/:user_id", c.Rental.ActiveForUser)
	auth.GET("/my-rentals", c.Rental.MyRentals)
	auth.PUT("/rentals/:id/close", c.Rental.Close)
	auth.GET("/readers", c.Rental.Readers)
}

// identityMiddleware lifts sub/role_id out of the verified token so
// handlers work with typed context values.
func identityMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tok, ok := c.Get("user").(*jwt.Token)
		if !ok || tok == nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
		}
		claims, ok := tok.Claims.(jwt.MapClaims)
		if !ok {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
		}

		sub, ok := claims["sub"].(float64)
		if !ok {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
		}
		role, ok := claims["role_id"].(float64)
		if !ok {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
		}

		c.Set("user_id", int64(sub))
		c.Set("role_id", int64(role))
		return next(c)
	}
}
