package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/ErlanBelekov/uptask/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type statusChangeDoc struct {
	User      string            `bson:"user"`
	Status    domain.TaskStatus `bson:"status"`
	ChangedAt time.Time         `bson:"changedAt"`
}

type taskDoc struct {
	ID          string            `bson:"_id"`
	Name        string            `bson:"name"`
	Description string            `bson:"description"`
	Project     string            `bson:"project"`
	Status      domain.TaskStatus `bson:"status"`
	CompletedBy []statusChangeDoc `bson:"completedBy"`
	Notes       []string          `bson:"notes"`
	CreatedAt   time.Time         `bson:"createdAt"`
	UpdatedAt   time.Time         `bson:"updatedAt"`
}

func (d taskDoc) toDomain() *domain.Task {
	history := make([]domain.StatusChange, len(d.CompletedBy))
	for i, c := range d.CompletedBy {
		history[i] = domain.StatusChange{UserID: c.User, Status: c.Status, ChangedAt: c.ChangedAt}
	}
	return &domain.Task{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		ProjectID:   d.Project,
		Status:      d.Status,
		CompletedBy: history,
		Notes:       d.Notes,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type TaskRepository struct {
	tasks *mongo.Collection
	notes *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{
		tasks: db.Collection(tasksCollection),
		notes: db.Collection(notesCollection),
	}
}

func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) error {
	now := time.Now().UTC()
	_, err := r.tasks.InsertOne(ctx, taskDoc{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Project:     t.ProjectID,
		Status:      t.Status,
		CompletedBy: []statusChangeDoc{},
		Notes:       []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	var doc taskDoc
	if err := r.tasks.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *TaskRepository) ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.tasks.Find(ctx, bson.M{"project": projectID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	var docs []taskDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}

	tasks := make([]*domain.Task, len(docs))
	for i, d := range docs {
		tasks[i] = d.toDomain()
	}
	return tasks, nil
}

func (r *TaskRepository) Update(ctx context.Context, t *domain.Task) error {
	return r.updateOne(ctx, "update task", t.ID, bson.M{"$set": bson.M{
		"name":        t.Name,
		"description": t.Description,
		"updatedAt":   time.Now().UTC(),
	}})
}

func (r *TaskRepository) RecordStatus(ctx context.Context, taskID string, change domain.StatusChange) error {
	return r.updateOne(ctx, "record status", taskID, bson.M{
		"$set": bson.M{"status": change.Status, "updatedAt": time.Now().UTC()},
		"$push": bson.M{"completedBy": statusChangeDoc{
			User:      change.UserID,
			Status:    change.Status,
			ChangedAt: change.ChangedAt,
		}},
	})
}

// Delete drops the task's notes before the task itself.
func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.notes.DeleteMany(ctx, bson.M{"task": id}); err != nil {
		return fmt.Errorf("delete task notes: %w", err)
	}

	res, err := r.tasks.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) AppendNote(ctx context.Context, taskID, noteID string) error {
	return r.updateOne(ctx, "append note", taskID, bson.M{
		"$push": bson.M{"notes": noteID},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	})
}

func (r *TaskRepository) RemoveNote(ctx context.Context, taskID, noteID string) error {
	return r.updateOne(ctx, "remove note", taskID, bson.M{
		"$pull": bson.M{"notes": noteID},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	})
}

func (r *TaskRepository) updateOne(ctx context.Context, op, id string, update bson.M) error {
	res, err := r.tasks.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}
