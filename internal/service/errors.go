package service

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound covers both missing and non-visible entities.
	ErrNotFound = errors.New("not found")
	// ErrNotAuthor means the acting user does not own the entity.
	ErrNotAuthor = errors.New("not the author")
	// ErrInvalidInput is a malformed form submission.
	ErrInvalidInput = errors.New("invalid input")
)

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
