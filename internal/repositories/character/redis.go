package character

import (
	"context"
	"encoding/json"
	"log/slog"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-progression/internal/entities"
	"github.com/KirkDiggler/rpg-progression/internal/errors"
	redisclient "github.com/KirkDiggler/rpg-progression/internal/redis"
)

const (
	snapshotKeyPrefix = "character:"
	playerIndexPrefix = "character:player:"
)

type redisRepository struct {
	client redisclient.Client
}

// RedisConfig contains configuration for the Redis snapshot repository.
type RedisConfig struct {
	Client redisclient.Client
}

// Validate validates the RedisConfig.
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a Redis-backed snapshot repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &redisRepository{client: cfg.Client}, nil
}

func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if err := validateSave(input); err != nil {
		return nil, err
	}
	snap := input.Snapshot
	key := snapshotKeyPrefix + snap.ID

	existing, err := r.load(ctx, key)
	if err != nil && !errors.IsNotFound(err) {
		return nil, err
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal snapshot %s", snap.ID)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, key, data, 0)
	if existing != nil && existing.PlayerID != "" && existing.PlayerID != snap.PlayerID {
		pipe.SRem(ctx, playerIndexPrefix+existing.PlayerID, snap.ID)
	}
	if snap.PlayerID != "" {
		pipe.SAdd(ctx, playerIndexPrefix+snap.PlayerID, snap.ID)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		slog.ErrorContext(ctx, "failed to save snapshot",
			"character_id", snap.ID,
			"error", err.Error())
		return nil, errors.Wrapf(err, "failed to save snapshot %s", snap.ID)
	}

	slog.DebugContext(ctx, "saved snapshot",
		"character_id", snap.ID,
		"player_id", snap.PlayerID,
		"level", snap.Level.Level,
		"bytes", len(data))

	return &SaveOutput{Created: existing == nil}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	snap, err := r.load(ctx, snapshotKeyPrefix+input.ID)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Snapshot: snap}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	key := snapshotKeyPrefix + input.ID
	snap, err := r.load(ctx, key)
	if err != nil {
		return nil, err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, key)
	if snap.PlayerID != "" {
		pipe.SRem(ctx, playerIndexPrefix+snap.PlayerID, input.ID)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete snapshot %s", input.ID)
	}

	return &DeleteOutput{}, nil
}

func (r *redisRepository) ListByPlayerID(
	ctx context.Context,
	input ListByPlayerIDInput,
) (*ListByPlayerIDOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}

	indexKey := playerIndexPrefix + input.PlayerID
	ids, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read index %s", indexKey)
	}

	snapshots := make([]*entities.CharacterSnapshot, 0, len(ids))
	for _, id := range ids {
		snap, err := r.load(ctx, snapshotKeyPrefix+id)
		if err != nil {
			if errors.IsNotFound(err) {
				slog.WarnContext(ctx, "snapshot missing, cleaning up index",
					"character_id", id,
					"index_key", indexKey)
				r.client.SRem(ctx, indexKey, id)
				continue
			}
			return nil, err
		}
		snapshots = append(snapshots, snap)
	}

	slog.DebugContext(ctx, "listed snapshots by player",
		"player_id", input.PlayerID,
		"count", len(snapshots))

	return &ListByPlayerIDOutput{Snapshots: snapshots}, nil
}

func (r *redisRepository) load(ctx context.Context, key string) (*entities.CharacterSnapshot, error) {
	raw, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("snapshot %s not found", key)
		}
		return nil, errors.Wrapf(err, "failed to get %s", key)
	}

	var snap entities.CharacterSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal %s", key)
	}
	return &snap, nil
}
