package models

import (
	"fmt"
	"time"
)

// Document is a reading document registered with the engine. Content holds
// the normalized level-0 text; shorter variants are cached separately per
// level, keyed by the content hash.
type Document struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Source    string    `json:"source,omitempty"`
	Content   string    `json:"content"`
	Hash      string    `json:"hash"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DocumentInput is the input for registering a document.
type DocumentInput struct {
	ID      string `json:"id,omitempty"`
	Title   string `json:"title,omitempty"`
	Content string `json:"content"`
}

// Validate checks the input fields.
func (d *DocumentInput) Validate() error {
	if d.Content == "" {
		return fmt.Errorf("content is required")
	}
	return nil
}
