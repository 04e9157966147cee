package repository

import (
	"context"
	"errors"
	"time"

	"interview-service/internal/errs"
	"interview-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ResultRecord is the queryable copy of a terminal result. The terminal
// checkpoint embeds the same result; this collection exists for user-level
// listing without loading checkpoints.
type ResultRecord struct {
	SessionID string                 `bson:"_id" json:"session_id"`
	UserID    string                 `bson:"user_id" json:"user_id"`
	JobTitle  string                 `bson:"job_title" json:"job_title"`
	Result    models.InterviewResult `bson:"result" json:"result"`
	CreatedAt time.Time              `bson:"created_at" json:"created_at"`
}

type ResultRepository struct {
	Col *mongo.Collection
}

func NewResultRepository(db *mongo.Database) *ResultRepository {
	return &ResultRepository{Col: db.Collection("results")}
}

func (r *ResultRepository) FindBySession(ctx context.Context, sessionID string) (*ResultRecord, error) {
	var record ResultRecord
	err := r.Col.FindOne(ctx, bson.M{"_id": sessionID}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.NotFoundf("result for session %s", sessionID)
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *ResultRepository) FindByUser(ctx context.Context, userID string) ([]ResultRecord, error) {
	cur, err := r.Col.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var records []ResultRecord
	for cur.Next(ctx) {
		var record ResultRecord
		if err := cur.Decode(&record); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, cur.Err()
}

// Upsert keeps the write idempotent: the finalizer may deliver the same
// terminal result more than once after retried resumes.
func (r *ResultRepository) Upsert(ctx context.Context, record *ResultRecord) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.Col.ReplaceOne(ctx, bson.M{"_id": record.SessionID}, record, opts)
	return err
}
