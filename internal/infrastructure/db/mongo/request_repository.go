package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/interactive/eservice-platform/internal/core/domain"
)

const requestsCollection = "service_requests"

const requestSequence = "request_id"

type RequestRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewRequestRepository(db *mongo.Database) *RequestRepository {
	return &RequestRepository{db: db, coll: db.Collection(requestsCollection)}
}

// Create inserts a new request document, allocating its numeric id from the
// shared sequence. The allocated id is written back to r.
func (r *RequestRepository) Create(ctx context.Context, req *domain.Request) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextSequence(ctx, r.db, requestSequence)
	if err != nil {
		return err
	}
	req.ID = id

	if _, err := r.coll.InsertOne(ctx, req); err != nil {
		return fmt.Errorf("insert request: %w", err)
	}
	return nil
}

func (r *RequestRepository) FindByID(ctx context.Context, id int64) (*domain.Request, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var req domain.Request
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&req); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: id %d", domain.ErrRequestNotFound, id)
		}
		return nil, fmt.Errorf("find request: %w", err)
	}
	return &req, nil
}

func (r *RequestRepository) FindAllByUserID(ctx context.Context, userID int64) ([]*domain.Request, error) {
	return r.findAll(ctx, bson.M{"user_id": userID})
}

// FindAllByStatus matches the stored status string verbatim; an unrecognised
// value matches no documents.
func (r *RequestRepository) FindAllByStatus(ctx context.Context, status string) ([]*domain.Request, error) {
	return r.findAll(ctx, bson.M{"status": status})
}

func (r *RequestRepository) findAll(ctx context.Context, filter bson.M) ([]*domain.Request, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find requests: %w", err)
	}
	defer cursor.Close(ctx)

	var requests []*domain.Request
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("decode requests: %w", err)
	}
	return requests, nil
}

// UpdateStatus performs the compare-and-set behind every lifecycle
// transition: the write only lands if the persisted status still equals
// from. A miss means either the id vanished (reported as not found) or a
// concurrent transition committed first (reported as an invalid transition,
// since the caller's read is stale).
func (r *RequestRepository) UpdateStatus(ctx context.Context, id int64, from, next domain.RequestStatus) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(
		ctx,
		bson.M{"_id": id, "status": from},
		bson.M{"$set": bson.M{"status": next}},
	)
	if err != nil {
		return fmt.Errorf("update request status: %w", err)
	}
	if res.MatchedCount == 0 {
		if _, findErr := r.FindByID(ctx, id); findErr != nil {
			return findErr
		}
		return fmt.Errorf("%w: request %d is no longer %s", domain.ErrInvalidTransition, id, from)
	}
	return nil
}

// EnsureIndexes creates the lookup indexes on the requests collection.
func (r *RequestRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
