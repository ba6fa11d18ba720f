package entity

import "time"

// User identifies a portal account. Authentication is handled by the
// upstream auth proxy; the backend only scopes data by user id.
type User struct {
	ID          int64     `json:"id"`
	Email       string    `json:"email"`
	FullName    string    `json:"full_name"`
	CompanyName string    `json:"company_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
