package character

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/KirkDiggler/rpg-progression/internal/entities"
	"github.com/KirkDiggler/rpg-progression/internal/errors"
)

// InMemoryRepository implements Repository in process memory. Snapshots are
// stored encoded so callers never share state with the store.
type InMemoryRepository struct {
	mu    sync.RWMutex
	store map[string][]byte
	owner map[string]string
}

// NewInMemory creates an empty in-memory repository
func NewInMemory() *InMemoryRepository {
	return &InMemoryRepository{
		store: make(map[string][]byte),
		owner: make(map[string]string),
	}
}

// Save stores a copy of the snapshot
func (r *InMemoryRepository) Save(_ context.Context, input SaveInput) (*SaveOutput, error) {
	if err := validateSave(input); err != nil {
		return nil, err
	}

	data, err := json.Marshal(input.Snapshot)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal snapshot %s", input.Snapshot.ID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	_, exists := r.store[input.Snapshot.ID]
	r.store[input.Snapshot.ID] = data
	r.owner[input.Snapshot.ID] = input.Snapshot.PlayerID

	return &SaveOutput{Created: !exists}, nil
}

// Get returns a copy of the stored snapshot
func (r *InMemoryRepository) Get(_ context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	snap, err := r.decode(input.ID)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Snapshot: snap}, nil
}

// Delete removes a snapshot
func (r *InMemoryRepository) Delete(_ context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[input.ID]; !exists {
		return nil, errors.NotFoundf("snapshot %s not found", input.ID)
	}
	delete(r.store, input.ID)
	delete(r.owner, input.ID)

	return &DeleteOutput{}, nil
}

// ListByPlayerID returns the player's snapshots ordered by character ID
func (r *InMemoryRepository) ListByPlayerID(
	_ context.Context,
	input ListByPlayerIDInput,
) (*ListByPlayerIDOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0)
	for id, playerID := range r.owner {
		if playerID == input.PlayerID {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	snapshots := make([]*entities.CharacterSnapshot, 0, len(ids))
	for _, id := range ids {
		snap, err := r.decode(id)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snap)
	}

	return &ListByPlayerIDOutput{Snapshots: snapshots}, nil
}

func (r *InMemoryRepository) decode(id string) (*entities.CharacterSnapshot, error) {
	data, exists := r.store[id]
	if !exists {
		return nil, errors.NotFoundf("snapshot %s not found", id)
	}

	var snap entities.CharacterSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal snapshot %s", id)
	}
	return &snap, nil
}
