package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"taskmanager/internal/core/domain"
	"taskmanager/internal/core/ports"
)

type taskDocument struct {
	ID          string    `bson:"_id"`
	Title       string    `bson:"title"`
	Description string    `bson:"description"`
	Status      string    `bson:"status"`
	User        string    `bson:"user"`
	CreatedAt   time.Time `bson:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt"`
}

type TaskRepository struct {
	collection *mongo.Collection
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository(collection *mongo.Collection) *TaskRepository {
	return &TaskRepository{collection: collection}
}

func ownedFilter(taskID, ownerID string) bson.M {
	return bson.M{"_id": taskID, "user": ownerID}
}

func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Task, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user": ownerID}, opts)
	if err != nil {
		return nil, err
	}

	var docs []taskDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	tasks := make([]domain.Task, 0, len(docs))
	for _, doc := range docs {
		tasks = append(tasks, doc.toDomain())
	}
	return tasks, nil
}

func (r *TaskRepository) FindOwned(ctx context.Context, taskID, ownerID string) (domain.Task, error) {
	var doc taskDocument
	if err := r.collection.FindOne(ctx, ownedFilter(taskID, ownerID)).Decode(&doc); err != nil {
		return domain.Task{}, mapNoDocuments(err)
	}
	return doc.toDomain(), nil
}

func (r *TaskRepository) Create(ctx context.Context, task domain.Task) error {
	_, err := r.collection.InsertOne(ctx, taskDocument{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		User:        task.UserID,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	})
	return err
}

func (r *TaskRepository) UpdateOwned(ctx context.Context, taskID, ownerID string, patch domain.TaskPatch) (domain.Task, error) {
	set := bson.M{"updatedAt": patch.UpdatedAt}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Status != nil {
		set["status"] = string(*patch.Status)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc taskDocument
	err := r.collection.FindOneAndUpdate(ctx, ownedFilter(taskID, ownerID), bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		return domain.Task{}, mapNoDocuments(err)
	}
	return doc.toDomain(), nil
}

func (r *TaskRepository) DeleteOwned(ctx context.Context, taskID, ownerID string) error {
	var doc taskDocument
	if err := r.collection.FindOneAndDelete(ctx, ownedFilter(taskID, ownerID)).Decode(&doc); err != nil {
		return mapNoDocuments(err)
	}
	return nil
}

func (d taskDocument) toDomain() domain.Task {
	return domain.Task{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Status:      domain.TaskStatus(d.Status),
		UserID:      d.User,
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
}

func mapNoDocuments(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.ErrTaskNotFound
	}
	return err
}
