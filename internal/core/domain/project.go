package domain

import "time"

// ProjectStatus represents the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectOpen       ProjectStatus = "open"
	ProjectInProgress ProjectStatus = "in-progress"
	ProjectCompleted  ProjectStatus = "completed"
	ProjectCancelled  ProjectStatus = "cancelled"
)

// Valid reports whether s is one of the known project statuses.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectOpen, ProjectInProgress, ProjectCompleted, ProjectCancelled:
		return true
	}
	return false
}

// Categories lists the accepted project categories.
var Categories = []string{"logo", "branding", "ui-ux", "illustration", "other"}

// ValidCategory reports whether c is an accepted category.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ProjectMessage is a single entry in a project's discussion thread.
type ProjectMessage struct {
	ID        string    `json:"id"`
	SenderID  string    `json:"sender_id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Project is a job posted by a customer. OwnerID never changes after creation.
type Project struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	Budget       float64          `json:"budget"`
	Deadline     time.Time        `json:"deadline"`
	Category     string           `json:"category"`
	Tags         []string         `json:"tags,omitempty"`
	Requirements []string         `json:"requirements,omitempty"`
	Status       ProjectStatus    `json:"status"`
	OwnerID      string           `json:"owner_id"`
	OwnerName    string           `json:"owner_name"`
	Messages     []ProjectMessage `json:"messages,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
}
