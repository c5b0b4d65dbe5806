// Package main bookstore API.
//
// @title           Bookstore API
// @version         1.0
// @description     Library/bookstore backend (catalog, cart, reviews, rentals).
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"bookstore/app/echoServer"
	authctrl "bookstore/app/echoServer/controller/auth"
	bookctrl "bookstore/app/echoServer/controller/book"
	cartctrl "bookstore/app/echoServer/controller/cart"
	profilectrl "bookstore/app/echoServer/controller/profile"
	rentalctrl "bookstore/app/echoServer/controller/rental"
	reviewctrl "bookstore/app/echoServer/controller/review"
	"bookstore/app/echoServer/validation"
	"bookstore/config"
	bookrepo "bookstore/repository/book"
	cartrepo "bookstore/repository/cart"
	rentalrepo "bookstore/repository/rental"
	reviewrepo "bookstore/repository/review"
	userrepo "bookstore/repository/user"
	authsvc "bookstore/service/auth"
	booksvc "bookstore/service/book"
	cartsvc "bookstore/service/cart"
	profilesvc "bookstore/service/profile"
	rentalsvc "bookstore/service/rental"
	reviewsvc "bookstore/service/review"
	"bookstore/util/blob"
	"bookstore/util/database"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// DB: *sql.DB
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// blob store for uploaded images
	blobs, err := blob.NewStore(cfg.UploadDir)
	if err != nil {
		log.Error("blob store init failed", "err", err)
		os.Exit(1)
	}

	// repos
	ur := userrepo.New(db)
	br := bookrepo.New(db)
	rr := rentalrepo.New(db)
	cr := cartrepo.New(db)
	vr := reviewrepo.New(db)

	// services
	as := authsvc.New(ur, cfg.JWTSecret)
	ps := profilesvc.New(ur)
	bs := booksvc.New(br)
	rs := rentalsvc.New(db, rr, ur)
	cs := cartsvc.New(cr)
	vs := reviewsvc.New(vr, cfg.ServerURL)

	// controllers
	v := validator.New()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	profileC := &profilectrl.Controller{Svc: ps, Blob: blobs, V: v, Log: log}
	bookC := &bookctrl.Controller{Svc: bs, Blob: blobs, V: v, Log: log}
	cartC := &cartctrl.Controller{Svc: cs, V: v, Log: log}
	reviewC := &reviewctrl.Controller{Svc: vs, Blob: blobs, V: v, Log: log}
	rentalC := &rentalctrl.Controller{Svc: rs, V: v, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e, cfg.CORSOrigin)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Auth:    authC,
		Profile: profileC,
		Book:    bookC,
		Cart:    cartC,
		Review:  reviewC,
		Rental:  rentalC,

		JWTSecret: cfg.JWTSecret,
		UploadDir: cfg.UploadDir,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	slog.Info("starting server", "port", port, "env", cfg.Env)

	e.Logger.Fatal(e.Start(":" + port))
}
