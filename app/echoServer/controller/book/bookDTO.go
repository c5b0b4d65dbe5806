package book

// CreateBookForm mirrors the multipart form fields of the catalog
// create endpoint. Flags arrive as "1"/"0" strings, categories as a
// JSON array of category ids.
type CreateBookForm struct {
	Title       string  `form:"title" validate:"required"`
	Author      string  `form:"author" validate:"required"`
	Year        int     `form:"year" validate:"required,gt=0"`
	Price       float64 `form:"price" validate:"gte=0"`
	Stock       int64   `form:"stock" validate:"gte=0"`
	RentalStock int64   `form:"rental_stock" validate:"gte=0"`
	Available   string  `form:"available"`
	Rentable    string  `form:"rentable"`
	Description string  `form:"description"`
	Categories  string  `form:"categories"`
}
