package model

import "time"

// ContactMessage represents a message submitted via the contact form.
// All four text fields are required; records are immutable once stored
// and no read or delete path is exposed.
type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
