package service

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound means a lookup by id, slug or username matched nothing.
	ErrNotFound = errors.New("record not found")
	// ErrNotAuthor means the caller tried to edit somebody else's post.
	ErrNotAuthor = errors.New("caller is not the author")
	// ErrFollowSelf means a user tried to follow themself.
	ErrFollowSelf = errors.New("cannot follow self")
	// ErrGroupNotFound means a submitted group reference matched no group.
	ErrGroupNotFound = errors.New("group does not exist")
)

// notFound maps gorm's record-not-found onto the service taxonomy.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
