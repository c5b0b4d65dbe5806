// model/review.go
package model

type Review struct {
	ID         int64   `json:"id"`
	FullName   string  `json:"full_name"`
	UserAvatar *string `json:"user_avatar"`
	Rating     int     `json:"rating"`
	Pros       string  `json:"pros"`
	Cons       string  `json:"cons"`
	Comment    string  `json:"comment"`
	Image      *string `json:"image"`
}
