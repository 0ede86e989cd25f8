// Package character stores character snapshots
package character

//go:generate mockgen -destination=mock/mock_repository.go -package=charactermock github.com/KirkDiggler/rpg-progression/internal/repositories/character Repository

import (
	"context"

	"github.com/KirkDiggler/rpg-progression/internal/entities"
	"github.com/KirkDiggler/rpg-progression/internal/errors"
)

// Repository persists character snapshots. Derived stats are never stored;
// callers rebuild them through character.Restore.
type Repository interface {
	// Save creates or replaces the snapshot with the same ID
	// Returns errors.InvalidArgument for a nil snapshot or empty ID
	// Returns errors.Internal for storage failures
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)

	// Get retrieves a snapshot by character ID
	// Returns errors.InvalidArgument for an empty ID
	// Returns errors.NotFound if no snapshot exists
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Delete removes a snapshot
	// Returns errors.NotFound if no snapshot exists
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// ListByPlayerID returns every snapshot owned by a player
	// Returns errors.InvalidArgument for an empty player ID
	ListByPlayerID(ctx context.Context, input ListByPlayerIDInput) (*ListByPlayerIDOutput, error)
}

// SaveInput defines the input for saving a snapshot
type SaveInput struct {
	Snapshot *entities.CharacterSnapshot
}

// SaveOutput defines the output for saving a snapshot
type SaveOutput struct {
	Created bool
}

// GetInput defines the input for getting a snapshot
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a snapshot
type GetOutput struct {
	Snapshot *entities.CharacterSnapshot
}

// DeleteInput defines the input for deleting a snapshot
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the output for deleting a snapshot
type DeleteOutput struct{}

// ListByPlayerIDInput defines the input for listing a player's snapshots
type ListByPlayerIDInput struct {
	PlayerID string
}

// ListByPlayerIDOutput defines the output for listing a player's snapshots
type ListByPlayerIDOutput struct {
	Snapshots []*entities.CharacterSnapshot
}

const (
	errSnapshotNil      = "snapshot cannot be nil"
	errCharacterIDEmpty = "character ID cannot be empty"
	errPlayerIDEmpty    = "player ID cannot be empty"
)

func validateSave(input SaveInput) error {
	if input.Snapshot == nil {
		return errors.InvalidArgument(errSnapshotNil)
	}
	if input.Snapshot.ID == "" {
		return errors.InvalidArgument(errCharacterIDEmpty)
	}
	return nil
}
