// model/cart.go
package model

type CartRow struct {
	ID       int64   `json:"id"`
	BookID   int64   `json:"book_id"`
	Quantity int64   `json:"quantity"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Image    *string `json:"image,omitempty"`
}
