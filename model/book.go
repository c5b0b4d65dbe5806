// model/book.go
package model

type Book struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	Year        int      `json:"year"`
	Price       float64  `json:"price"`
	Stock       int64    `json:"stock"`
	RentalStock int64    `json:"rental_stock"`
	Available   bool     `json:"available"`
	Rentable    bool     `json:"rentable"`
	Description string   `json:"description"`
	Image       *string  `json:"image,omitempty"`
	Categories  []string `json:"categories"`
}

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
