package models

// User represents a user record in the system
type User struct {
	ID             int64   `json:"id" db:"id"`
	Name           string  `json:"name" db:"name"`
	Surname        string  `json:"surname" db:"surname"`
	Email          string  `json:"email" db:"email"`
	Birthdate      Date    `json:"birthdate" db:"birthdate"`
	AdditionalInfo *string `json:"additional_info" db:"additional_info"`
}

// UserInput is the payload accepted on create and on full-record update.
// Field constraints mirror the users table column bounds.
type UserInput struct {
	Name           string  `json:"name" binding:"required,max=50"`
	Surname        string  `json:"surname" binding:"required,max=50"`
	Email          string  `json:"email" binding:"required,email,max=100"`
	Birthdate      Date    `json:"birthdate" binding:"required"`
	AdditionalInfo *string `json:"additional_info" binding:"omitempty,max=255"`
}
