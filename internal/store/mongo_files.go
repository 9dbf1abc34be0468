package store

import (
	"context"
	"errors"

	"filesmanager/backend/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const fileCollection = "files"

// MongoFileStore is the MongoDB implementation of FileStore.
type MongoFileStore struct {
	db *mongo.Database
}

func NewMongoFileStore(db *mongo.Database) *MongoFileStore {
	return &MongoFileStore{db: db}
}

func (s *MongoFileStore) Insert(ctx context.Context, file *models.File) error {
	res, err := s.db.Collection(fileCollection).InsertOne(ctx, file)
	if err != nil {
		return err
	}
	file.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *MongoFileStore) FindByID(ctx context.Context, id string) (*models.File, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return s.findOne(ctx, bson.M{"_id": oid})
}

func (s *MongoFileStore) FindOwned(ctx context.Context, ownerID, id string) (*models.File, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return s.findOne(ctx, bson.M{"_id": oid, "userId": ownerID})
}

func (s *MongoFileStore) findOne(ctx context.Context, filter bson.M) (*models.File, error) {
	var file models.File
	err := s.db.Collection(fileCollection).FindOne(ctx, filter).Decode(&file)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &file, nil
}

func (s *MongoFileStore) List(ctx context.Context, ownerID, parentID string, skip, limit int64) ([]models.File, error) {
	filter := bson.M{
		"userId":   ownerID,
		"parentId": parentID,
	}
	opts := options.Find().SetSkip(skip).SetLimit(limit)

	cursor, err := s.db.Collection(fileCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	files := make([]models.File, 0)
	if err := cursor.All(ctx, &files); err != nil {
		return nil, err
	}
	return files, nil
}

func (s *MongoFileStore) SetVisibility(ctx context.Context, ownerID, id string, isPublic bool) (*models.File, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	filter := bson.M{"_id": oid, "userId": ownerID}
	update := bson.M{"$set": bson.M{"isPublic": isPublic}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var file models.File
	err = s.db.Collection(fileCollection).FindOneAndUpdate(ctx, filter, update, opts).Decode(&file)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &file, nil
}

func (s *MongoFileStore) Count(ctx context.Context) (int64, error) {
	return s.db.Collection(fileCollection).CountDocuments(ctx, bson.M{})
}
