package repo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	dom "github.com/rvega1204/job-manager/internal/domain"
)

// JobRepo provides job persistence. Every operation takes the owner id and
// folds it into the store filter, so a job owned by someone else is
// indistinguishable from a missing one.
type JobRepo interface {
	Create(ctx context.Context, j dom.Job) (dom.Job, error)
	GetByID(ctx context.Context, ownerID, id primitive.ObjectID) (dom.Job, error)
	List(ctx context.Context, ownerID primitive.ObjectID) ([]dom.Job, error)
	Update(ctx context.Context, ownerID, id primitive.ObjectID, patch dom.Job) (dom.Job, error)
	Delete(ctx context.Context, ownerID, id primitive.ObjectID) error
}

// MongoJobRepo implements JobRepo over the jobs collection.
type MongoJobRepo struct {
	coll *mongo.Collection
}

// NewMongoJobRepo returns a new MongoJobRepo.
func NewMongoJobRepo(db *mongo.Database) *MongoJobRepo {
	return &MongoJobRepo{coll: db.Collection("jobs")}
}

func (r *MongoJobRepo) Create(ctx context.Context, j dom.Job) (dom.Job, error) {
	now := time.Now().UTC()
	j.CreatedAt = now
	j.UpdatedAt = now
	res, err := r.coll.InsertOne(ctx, j)
	if err != nil {
		return dom.Job{}, err
	}
	j.ID = res.InsertedID.(primitive.ObjectID)
	return j, nil
}

func (r *MongoJobRepo) GetByID(ctx context.Context, ownerID, id primitive.ObjectID) (dom.Job, error) {
	var j dom.Job
	err := r.coll.FindOne(ctx, bson.M{"_id": id, "createdBy": ownerID}).Decode(&j)
	return j, err
}

func (r *MongoJobRepo) List(ctx context.Context, ownerID primitive.ObjectID) ([]dom.Job, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{"createdBy": ownerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var list []dom.Job
	if err := cur.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Update applies the patch in a single filtered store call: the owner
// check and the mutation are never separated.
func (r *MongoJobRepo) Update(ctx context.Context, ownerID, id primitive.ObjectID, patch dom.Job) (dom.Job, error) {
	update := bson.M{"$set": bson.M{
		"company":   patch.Company,
		"position":  patch.Position,
		"status":    patch.Status,
		"updatedAt": time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var j dom.Job
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id, "createdBy": ownerID}, update, opts).Decode(&j)
	return j, err
}

func (r *MongoJobRepo) Delete(ctx context.Context, ownerID, id primitive.ObjectID) error {
	var j dom.Job
	return r.coll.FindOneAndDelete(ctx, bson.M{"_id": id, "createdBy": ownerID}).Decode(&j)
}
