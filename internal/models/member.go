package models

// Member represents a chat user who records expenses.
type Member struct {
	// ID is the unique identifier for the member (UUID format).
	ID string

	// ChatID is the user's identifier on the chat transport.
	ChatID int64

	// Username is the display name used in reports. When the transport
	// provides no username, the gateway falls back to the first name.
	Username string

	// FirstName and LastName come from the chat profile and may be empty.
	FirstName string
	LastName  string

	// CreatedAt is the Unix timestamp when the member was first seen.
	CreatedAt int64
}
