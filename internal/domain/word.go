package domain

import "time"

// Word represents a vocabulary entry
type Word struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Example       string    `json:"example"`
	PublishedDate time.Time `json:"published_date"`
}

// WordInput holds the fields an admin supplies when publishing a word
type WordInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Example     string `json:"example"`
}

// Validate checks that all required fields are present
func (w WordInput) Validate() error {
	if w.Title == "" || w.Description == "" || w.Example == "" {
		return NewValidationError("Missing required fields")
	}
	return nil
}

// IsNewerThan reports whether w is the word of the day over other.
// Later published date wins, equal dates fall back to the higher id.
func (w Word) IsNewerThan(other Word) bool {
	if w.PublishedDate.Equal(other.PublishedDate) {
		return w.ID > other.ID
	}
	return w.PublishedDate.After(other.PublishedDate)
}
