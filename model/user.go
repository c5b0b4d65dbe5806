// model/user.go
package model

import "time"

type User struct {
	ID             int64     `json:"id"`
	RoleID         int64     `json:"role_id"`
	FullName       string    `json:"full_name"`
	Email          string    `json:"email"`
	Phone          *string   `json:"phone,omitempty"`
	ProfilePicture *string   `json:"profile_picture,omitempty"`
	PasswordHash   string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}

// RegisterReq represents user registration payload
// swagger:model RegisterReq
type RegisterReq struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginReq represents login payload
// swagger:model LoginReq
type LoginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
