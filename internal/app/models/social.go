package models

import (
	"time"

	"github.com/google/uuid"
)

// Endorsement is a peer rating from one user to another
type Endorsement struct {
	ID         uuid.UUID `json:"id" db:"id"`
	FromUserID uuid.UUID `json:"fromUserId" db:"from_user_id"`
	ToUserID   uuid.UUID `json:"toUserId" db:"to_user_id"`
	Rating     float64   `json:"rating" db:"rating"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

// Notification is a pull-only notice; only ReadAt ever changes
type Notification struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	RecipientID uuid.UUID  `json:"recipientId" db:"recipient_id"`
	ActorID     uuid.UUID  `json:"actorId" db:"actor_id"`
	Type        string     `json:"type" db:"type"`
	PostID      *uuid.UUID `json:"postId,omitempty" db:"post_id"`
	Message     string     `json:"message" db:"message"`
	ReadAt      *time.Time `json:"readAt,omitempty" db:"read_at"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
}

// Post is a "let's build" collaboration post
type Post struct {
	ID          uuid.UUID `json:"id" db:"id"`
	AuthorID    uuid.UUID `json:"authorId" db:"author_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
