package domain

import "time"

// ProjectStatus is the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectCompleted ProjectStatus = "completed"
	ProjectPaused    ProjectStatus = "paused"
)

// ProjectOwner is the subset of the owning user joined into project listings.
type ProjectOwner struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Project is a row of the projects table.
type Project struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Status      ProjectStatus `json:"status"`
	CreatedBy   string        `json:"created_by"`
	Owner       *ProjectOwner `json:"owner,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
