package repository

import (
	"context"
	"errors"
	"log"
	"time"

	"interview-service/internal/errs"
	"interview-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TestRepository stores interview activation records. Unique indexes on
// test_id and activate_code make a duplicate insert surface as a conflict
// so the caller can regenerate the code.
type TestRepository struct {
	Col *mongo.Collection
}

func NewTestRepository(db *mongo.Database) *TestRepository {
	col := db.Collection("tests")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "test_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "activate_code", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		log.Fatalf("Failed to create test indexes: %v", err)
	}
	return &TestRepository{Col: col}
}

func (r *TestRepository) Create(ctx context.Context, test *models.Test) error {
	res, err := r.Col.InsertOne(ctx, test)
	if mongo.IsDuplicateKeyError(err) {
		return errs.Conflictf("test %s or code %s already exists", test.TestID, test.ActivateCode)
	}
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		test.ID = oid.Hex()
	}
	return nil
}

func (r *TestRepository) FindByTestID(ctx context.Context, testID string) (*models.Test, error) {
	var test models.Test
	err := r.Col.FindOne(ctx, bson.M{"test_id": testID}).Decode(&test)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.NotFoundf("test %s", testID)
	}
	if err != nil {
		return nil, err
	}
	return &test, nil
}

func (r *TestRepository) FindByActivateCode(ctx context.Context, code string) (*models.Test, error) {
	var test models.Test
	err := r.Col.FindOne(ctx, bson.M{"activate_code": code}).Decode(&test)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.NotFoundf("activation code %s", code)
	}
	if err != nil {
		return nil, err
	}
	return &test, nil
}

func (r *TestRepository) UpdateStatus(ctx context.Context, testID string, status models.TestStatus) error {
	update := bson.M{"status": status}
	switch status {
	case models.TestStatusStarted:
		update["start_date"] = time.Now()
	case models.TestStatusCompleted, models.TestStatusExpired:
		update["close_date"] = time.Now()
	}
	res, err := r.Col.UpdateOne(ctx, bson.M{"test_id": testID}, bson.M{"$set": update})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errs.NotFoundf("test %s", testID)
	}
	return nil
}
