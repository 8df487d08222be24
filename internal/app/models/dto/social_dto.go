package dto

import (
	"github.com/google/uuid"
	"github.com/yigit/launchpad/internal/app/models"
)

// EndorseRequest rates another user
type EndorseRequest struct {
	ToUserID string  `json:"toUserId" example:"3f8a1c2e-7d4b-4b8e-9a51-2c6d0e9f1a77"`
	Rating   float64 `json:"rating" binding:"omitempty,gt=0,lte=5" example:"4.5"`
}

// EndorsementResponse returns the stored endorsement and, when the recompute succeeded, the new score
type EndorsementResponse struct {
	Endorsement *models.Endorsement `json:"endorsement"`
	TrustScore  *float64            `json:"trustScore,omitempty" example:"4.2"`
}

// CreatePostRequest opens a collaboration post
type CreatePostRequest struct {
	Title       string `json:"title" binding:"required,notblank,max=255" example:"Looking for a frontend co-founder"`
	Description string `json:"description" example:"React + Go, weekends"`
}

// JoinPostResponse reports whether the join created a new membership
type JoinPostResponse struct {
	PostID uuid.UUID `json:"postId"`
	Joined bool      `json:"joined" example:"true"`
}
