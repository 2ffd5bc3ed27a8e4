package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ErlanBelekov/uptask/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type projectDoc struct {
	ID          string    `bson:"_id"`
	ProjectName string    `bson:"projectName"`
	ClientName  string    `bson:"clientName"`
	Description string    `bson:"description"`
	Manager     string    `bson:"manager"`
	Team        []string  `bson:"team"`
	Tasks       []string  `bson:"tasks"`
	CreatedAt   time.Time `bson:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt"`
}

func (d projectDoc) toDomain() *domain.Project {
	return &domain.Project{
		ID:          d.ID,
		ProjectName: d.ProjectName,
		ClientName:  d.ClientName,
		Description: d.Description,
		ManagerID:   d.Manager,
		Team:        d.Team,
		Tasks:       d.Tasks,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type ProjectRepository struct {
	projects *mongo.Collection
	tasks    *mongo.Collection
	notes    *mongo.Collection
}

func NewProjectRepository(db *mongo.Database) *ProjectRepository {
	return &ProjectRepository{
		projects: db.Collection(projectsCollection),
		tasks:    db.Collection(tasksCollection),
		notes:    db.Collection(notesCollection),
	}
}

func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) error {
	now := time.Now().UTC()
	_, err := r.projects.InsertOne(ctx, projectDoc{
		ID:          p.ID,
		ProjectName: p.ProjectName,
		ClientName:  p.ClientName,
		Description: p.Description,
		Manager:     p.ManagerID,
		Team:        emptyIfNil(p.Team),
		Tasks:       emptyIfNil(p.Tasks),
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return fmt.Errorf("create project: %w", err)
	}
	return nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*domain.Project, error) {
	var doc projectDoc
	if err := r.projects.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("find project: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ProjectRepository) ListVisibleTo(ctx context.Context, userID string) ([]*domain.Project, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"manager": userID},
		bson.M{"team": userID},
	}}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	cursor, err := r.projects.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	var docs []projectDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode projects: %w", err)
	}

	projects := make([]*domain.Project, len(docs))
	for i, d := range docs {
		projects[i] = d.toDomain()
	}
	return projects, nil
}

func (r *ProjectRepository) Update(ctx context.Context, p *domain.Project) error {
	return r.updateOne(ctx, "update project", bson.M{"_id": p.ID}, bson.M{"$set": bson.M{
		"projectName": p.ProjectName,
		"clientName":  p.ClientName,
		"description": p.Description,
		"updatedAt":   time.Now().UTC(),
	}})
}

// Delete removes notes first, then tasks, then the project, so an interrupted
// run never leaves a note whose task is gone.
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	taskIDs, err := r.tasks.Distinct(ctx, "_id", bson.M{"project": id})
	if err != nil {
		return fmt.Errorf("list project tasks: %w", err)
	}
	if len(taskIDs) > 0 {
		if _, err := r.notes.DeleteMany(ctx, bson.M{"task": bson.M{"$in": taskIDs}}); err != nil {
			return fmt.Errorf("delete project notes: %w", err)
		}
	}
	if _, err := r.tasks.DeleteMany(ctx, bson.M{"project": id}); err != nil {
		return fmt.Errorf("delete project tasks: %w", err)
	}

	res, err := r.projects.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

func (r *ProjectRepository) AppendTask(ctx context.Context, projectID, taskID string) error {
	return r.updateOne(ctx, "append task", bson.M{"_id": projectID}, bson.M{
		"$push": bson.M{"tasks": taskID},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	})
}

func (r *ProjectRepository) RemoveTask(ctx context.Context, projectID, taskID string) error {
	return r.updateOne(ctx, "remove task", bson.M{"_id": projectID}, bson.M{
		"$pull": bson.M{"tasks": taskID},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	})
}

func (r *ProjectRepository) AddMember(ctx context.Context, projectID, userID string) error {
	err := r.updateOne(ctx, "add member",
		bson.M{"_id": projectID, "team": bson.M{"$ne": userID}},
		bson.M{
			"$push": bson.M{"team": userID},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		})
	if errors.Is(err, domain.ErrProjectNotFound) {
		return r.explainNoop(ctx, projectID, domain.ErrAlreadyMember)
	}
	return err
}

func (r *ProjectRepository) RemoveMember(ctx context.Context, projectID, userID string) error {
	err := r.updateOne(ctx, "remove member",
		bson.M{"_id": projectID, "team": userID},
		bson.M{
			"$pull": bson.M{"team": userID},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		})
	if errors.Is(err, domain.ErrProjectNotFound) {
		return r.explainNoop(ctx, projectID, domain.ErrNotMember)
	}
	return err
}

func (r *ProjectRepository) updateOne(ctx context.Context, op string, filter, update bson.M) error {
	res, err := r.projects.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

func (r *ProjectRepository) explainNoop(ctx context.Context, projectID string, guardErr error) error {
	if _, err := r.FindByID(ctx, projectID); err != nil {
		return err
	}
	return guardErr
}

func emptyIfNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
