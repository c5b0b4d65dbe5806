package rental

type SubmitRequestReq struct {
	BookID              int64  `json:"book_id" validate:"required,gt=0"`
	RequestedReturnDate string `json:"requested_return_date" validate:"required"`
}

type ResolveRequestReq struct {
	Status string `json:"status" validate:"required,oneof=approved denied"`
}

type IssueRentalReq struct {
	UserID        int64  `json:"user_id" validate:"required,gt=0"`
	BookID        int64  `json:"book_id" validate:"required,gt=0"`
	ReturnDate    string `json:"return_date" validate:"required"`
	PaymentMethod string `json:"payment_method" validate:"required"`
}
