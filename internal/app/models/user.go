package models

import (
	"time"

	"github.com/google/uuid"
)

// User defines the user model based on the 'users' table
type User struct {
	ID             uuid.UUID `json:"id" db:"id"`
	Email          string    `json:"email" db:"email"`
	FullName       string    `json:"fullName" db:"full_name"`
	Role           Role      `json:"role" db:"role"`
	College        *string   `json:"college,omitempty" db:"college"`
	Course         *string   `json:"course,omitempty" db:"course"`
	Branch         *string   `json:"branch,omitempty" db:"branch"`
	Year           *int      `json:"year,omitempty" db:"year"`
	Skills         []string  `json:"skills" db:"skills"`
	About          *string   `json:"about,omitempty" db:"about"`
	AdminAbout     *string   `json:"adminAbout,omitempty" db:"admin_about"`
	AdminSkills    []string  `json:"adminSkills,omitempty" db:"admin_skills"`
	TrustScore     float64   `json:"trustScore" db:"trust_score"`
	ProjectsJoined int       `json:"projectsJoined" db:"projects_joined"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`
}

// IsAdmin reports whether the stored role is admin
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// ProfileUpdate carries the self-service profile fields; nil means unchanged
type ProfileUpdate struct {
	FullName *string
	College  *string
	Course   *string
	Branch   *string
	Year     *int
	Skills   []string
	About    *string
}
