package ports

import (
	"context"

	"github.com/moderndash/dashboard/internal/core/domain"
)

// ProjectRepository defines persistence operations for the projects table.
type ProjectRepository interface {
	// List returns projects newest first with the owner's name and email joined.
	List(ctx context.Context) ([]*domain.Project, error)
	Create(ctx context.Context, project *domain.Project) (*domain.Project, error)
}
