package domain

import "time"

// User represents a registered subscriber
type User struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	JoinedDate time.Time `json:"joined_date"`
}
