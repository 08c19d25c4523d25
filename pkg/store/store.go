// Package store persists named circuit designs.
//
// Two backends are provided:
//   - FileStore: JSON files under the user config directory, for CLI use
//   - MongoStore: MongoDB-backed storage for server deployments
//
// Both implement the Store interface. Design names double as storage keys
// and are validated before touching the backend, so a hostile name never
// becomes a file path or a query.
package store

import (
	"context"
	"time"

	"github.com/arclabs/breadboard/pkg/circuit"
)

// Design is a stored circuit design with bookkeeping metadata.
type Design struct {
	Name      string       `json:"name" bson:"_id"`
	Data      circuit.Data `json:"data" bson:"data"`
	CreatedAt time.Time    `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time    `json:"updated_at" bson:"updated_at"`
}

// Store is the interface for design storage backends.
type Store interface {
	// Save stores a design under the given name, overwriting any
	// previous design with that name. CreatedAt survives overwrites.
	Save(ctx context.Context, name string, data circuit.Data) error

	// Load retrieves a design by name. Returns an error with code
	// DESIGN_NOT_FOUND when no such design exists.
	Load(ctx context.Context, name string) (*Design, error)

	// List returns all stored designs sorted by name.
	List(ctx context.Context) ([]Design, error)

	// Delete removes a design. Returns an error with code
	// DESIGN_NOT_FOUND when no such design exists.
	Delete(ctx context.Context, name string) error

	// Close releases any resources held by the store.
	Close() error
}
