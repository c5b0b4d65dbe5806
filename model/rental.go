// model/rental.go
package model

import "time"

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestDenied   RequestStatus = "denied"
)

type RentalStatus string

const (
	RentalActive   RentalStatus = "active"
	RentalReturned RentalStatus = "returned"
)

type RentalRequest struct {
	ID                  int64         `json:"id"`
	UserID              int64         `json:"user_id"`
	BookID              int64         `json:"book_id"`
	RequestedReturnDate string        `json:"requested_return_date"`
	Status              RequestStatus `json:"status"`
	CreatedAt           time.Time     `json:"created_at"`
}

type Rental struct {
	ID            int64        `json:"id"`
	UserID        int64        `json:"user_id"`
	BookID        int64        `json:"book_id"`
	RentalDate    time.Time    `json:"rental_date"`
	ReturnDate    string       `json:"return_date"`
	Status        RentalStatus `json:"status"`
	PaymentMethod string       `json:"payment_method"`
}
