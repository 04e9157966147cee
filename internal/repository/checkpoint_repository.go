package repository

import (
	"context"
	"errors"
	"time"

	"interview-service/internal/errs"
	"interview-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CheckpointRepository stores one checkpoint document per session id.
// Concurrent create/resume calls on the same session are serialized by
// conditioning every write on the expected prior version: the loser of a
// race gets errs.ErrConflict and the stored state is never half-written.
type CheckpointRepository struct {
	Col *mongo.Collection
}

func NewCheckpointRepository(db *mongo.Database) *CheckpointRepository {
	return &CheckpointRepository{Col: db.Collection("checkpoints")}
}

func (r *CheckpointRepository) Insert(ctx context.Context, cp *models.Checkpoint) error {
	_, err := r.Col.InsertOne(ctx, cp)
	if mongo.IsDuplicateKeyError(err) {
		return errs.Conflictf("checkpoint %s already exists", cp.SessionID)
	}
	return err
}

func (r *CheckpointRepository) Get(ctx context.Context, sessionID string) (*models.Checkpoint, error) {
	var cp models.Checkpoint
	err := r.Col.FindOne(ctx, bson.M{"_id": sessionID}).Decode(&cp)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.NotFoundf("session %s", sessionID)
	}
	if err != nil {
		return nil, err
	}
	return &cp, nil
}

// Update replaces the whole document in one conditional write. The filter
// carries the expected version, so a concurrent writer that committed
// first makes this a zero-match update and the caller sees a conflict.
func (r *CheckpointRepository) Update(ctx context.Context, cp *models.Checkpoint, expectedVersion int64) error {
	res, err := r.Col.ReplaceOne(ctx,
		bson.M{"_id": cp.SessionID, "version": expectedVersion},
		cp,
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errs.Conflictf("checkpoint %s version %d was overtaken", cp.SessionID, expectedVersion)
	}
	return nil
}

// FindExpiredAwaiting returns ids of sessions suspended in AWAITING_ANSWER
// whose deadline has passed. Used by the TTL sweep.
func (r *CheckpointRepository) FindExpiredAwaiting(ctx context.Context, now time.Time) ([]string, error) {
	cur, err := r.Col.Find(ctx, bson.M{"state": models.StateAwaitingAnswer})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var expired []string
	for cur.Next(ctx) {
		var cp models.Checkpoint
		if err := cur.Decode(&cp); err != nil {
			return nil, err
		}
		if !now.Before(cp.Payload.Deadline()) {
			expired = append(expired, cp.SessionID)
		}
	}
	return expired, cur.Err()
}
