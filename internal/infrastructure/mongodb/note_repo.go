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

type noteDoc struct {
	ID        string    `bson:"_id"`
	Content   string    `bson:"content"`
	CreatedBy string    `bson:"createdBy"`
	Task      string    `bson:"task"`
	CreatedAt time.Time `bson:"createdAt"`
}

func (d noteDoc) toDomain() *domain.Note {
	return &domain.Note{
		ID:        d.ID,
		Content:   d.Content,
		CreatedBy: d.CreatedBy,
		TaskID:    d.Task,
		CreatedAt: d.CreatedAt,
	}
}

type NoteRepository struct {
	notes *mongo.Collection
}

func NewNoteRepository(db *mongo.Database) *NoteRepository {
	return &NoteRepository{notes: db.Collection(notesCollection)}
}

func (r *NoteRepository) Create(ctx context.Context, n *domain.Note) error {
	_, err := r.notes.InsertOne(ctx, noteDoc{
		ID:        n.ID,
		Content:   n.Content,
		CreatedBy: n.CreatedBy,
		Task:      n.TaskID,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("create note: %w", err)
	}
	return nil
}

func (r *NoteRepository) FindByID(ctx context.Context, id string) (*domain.Note, error) {
	var doc noteDoc
	if err := r.notes.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrNoteNotFound
		}
		return nil, fmt.Errorf("find note: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *NoteRepository) ListByTask(ctx context.Context, taskID string) ([]*domain.Note, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.notes.Find(ctx, bson.M{"task": taskID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	var docs []noteDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode notes: %w", err)
	}

	notes := make([]*domain.Note, len(docs))
	for i, d := range docs {
		notes[i] = d.toDomain()
	}
	return notes, nil
}

func (r *NoteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.notes.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNoteNotFound
	}
	return nil
}
