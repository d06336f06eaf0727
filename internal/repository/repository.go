package repository

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned by all repositories when no document matches.
var ErrNotFound = errors.New("document not found")

// translate maps driver-level lookup misses to ErrNotFound.
func translate(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}
