package models

// Tag labels expenses within a group. Tags are created lazily the first
// time a name is used and are unique per (name, group).
type Tag struct {
	// ID is the unique identifier for the tag (UUID format).
	ID string

	// Name is the tag name as given in the command.
	Name string

	// GroupID scopes the tag to one group.
	GroupID string

	// CreatedAt is the Unix timestamp when the tag was first used.
	CreatedAt int64
}
