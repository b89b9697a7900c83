package models

// Group represents a chat where expenses are shared among members.
// Private chats get a single-member group of their own.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// ChatID is the chat's identifier on the chat transport.
	ChatID int64

	// Name is the chat title, or "<username>__private" for private chats.
	Name string

	// CreatedAt is the Unix timestamp when the group was first seen.
	CreatedAt int64
}
