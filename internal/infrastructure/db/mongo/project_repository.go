package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/moderndash/dashboard/internal/core/domain"
)

const projectsCollection = "projects"

type ProjectRepository struct {
	coll *mongo.Collection
}

func NewProjectRepository(db *mongo.Database) *ProjectRepository {
	return &ProjectRepository{coll: db.Collection(projectsCollection)}
}

type mongoProjectOwner struct {
	Name  string `bson:"name"`
	Email string `bson:"email"`
}

type mongoProject struct {
	ID          string             `bson:"_id"`
	Title       string             `bson:"title"`
	Description string             `bson:"description,omitempty"`
	Status      string             `bson:"status"`
	CreatedBy   string             `bson:"created_by"`
	Owner       *mongoProjectOwner `bson:"owner,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (mp mongoProject) toDomain() *domain.Project {
	p := &domain.Project{
		ID:          mp.ID,
		Title:       mp.Title,
		Description: mp.Description,
		Status:      domain.ProjectStatus(mp.Status),
		CreatedBy:   mp.CreatedBy,
		CreatedAt:   mp.CreatedAt.UTC(),
		UpdatedAt:   mp.UpdatedAt.UTC(),
	}
	if mp.Owner != nil {
		p.Owner = &domain.ProjectOwner{Name: mp.Owner.Name, Email: mp.Owner.Email}
	}
	return p
}

// List returns projects newest first, joining the owner's name and email from users.
func (r *ProjectRepository) List(ctx context.Context) ([]*domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: usersCollection},
			{Key: "localField", Value: "created_by"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "owner"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$owner"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "owner._id", Value: 0},
			{Key: "owner.role", Value: 0},
			{Key: "owner.status", Value: 0},
			{Key: "owner.avatar_url", Value: 0},
			{Key: "owner.last_login", Value: 0},
			{Key: "owner.created_at", Value: 0},
			{Key: "owner.updated_at", Value: 0},
		}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate projects: %w", err)
	}
	var docs []mongoProject
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode projects: %w", err)
	}

	projects := make([]*domain.Project, 0, len(docs))
	for _, d := range docs {
		projects = append(projects, d.toDomain())
	}
	return projects, nil
}

// Create inserts project, assigning an id when it has none.
func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoProject{
		ID:          project.ID,
		Title:       project.Title,
		Description: project.Description,
		Status:      string(project.Status),
		CreatedBy:   project.CreatedBy,
		CreatedAt:   project.CreatedAt.UTC(),
		UpdatedAt:   project.UpdatedAt.UTC(),
	}
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}
	return doc.toDomain(), nil
}

// EnsureIndexes creates the indexes the projects collection relies on.
func (r *ProjectRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "created_by", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
