package models

type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	Phone        string `json:"phone"`
	PasswordHash string `json:"-"` // don’t expose hash
	Salt         string `json:"-"`
}
