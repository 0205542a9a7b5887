package models

import "time"

// Audience size buckets used in place of raw follower counts.
const (
	AudienceNone  = "none"
	AudienceMicro = "micro"
	Audience1K    = "1k"
	Audience5KUp  = "5k+"
)

type Creator struct {
	ID                string    `json:"id" yaml:"id"`
	Name              string    `json:"name" yaml:"name"`
	Email             string    `json:"email" yaml:"email"`
	Username          *string   `json:"username" yaml:"username"`
	Niche             string    `json:"niche" yaml:"niche"`
	Platform          string    `json:"platform" yaml:"platform"` // Instagram, TikTok, YouTube, Twitter, LinkedIn
	AudienceSize      int       `json:"audienceSize" yaml:"audienceSize"`
	AudienceSizeRange string    `json:"audienceSizeRange" yaml:"audienceSizeRange"`
	Goal              string    `json:"goal" yaml:"goal"` // followers, engagement, sales, exposure
	Bio               *string   `json:"bio" yaml:"bio"`
	ProfileImage      *string   `json:"profileImage" yaml:"profileImage"`
	IsActive          bool      `json:"isActive" yaml:"isActive"`
	JoinedAt          time.Time `json:"joinedAt" yaml:"-"`
}

// NewCreator is the signup payload: every Creator field except the ones the
// store assigns.
type NewCreator struct {
	Name              string  `json:"name" binding:"required"`
	Email             string  `json:"email" binding:"required,email"`
	Username          *string `json:"username"`
	Niche             string  `json:"niche" binding:"required"`
	Platform          string  `json:"platform" binding:"required"`
	AudienceSize      int     `json:"audienceSize" binding:"min=0"`
	AudienceSizeRange string  `json:"audienceSizeRange" binding:"required,oneof=none micro 1k 5k+"`
	Goal              string  `json:"goal" binding:"required"`
	Bio               *string `json:"bio"`
	ProfileImage      *string `json:"profileImage"`
}

// CreatorUpdate is a shallow merge: nil fields are left untouched.
type CreatorUpdate struct {
	Name              *string `json:"name" binding:"omitempty,min=1"`
	Email             *string `json:"email" binding:"omitempty,email"`
	Username          *string `json:"username"`
	Niche             *string `json:"niche" binding:"omitempty,min=1"`
	Platform          *string `json:"platform" binding:"omitempty,min=1"`
	AudienceSize      *int    `json:"audienceSize" binding:"omitempty,min=0"`
	AudienceSizeRange *string `json:"audienceSizeRange" binding:"omitempty,oneof=none micro 1k 5k+"`
	Goal              *string `json:"goal" binding:"omitempty,min=1"`
	Bio               *string `json:"bio"`
	ProfileImage      *string `json:"profileImage"`
	IsActive          *bool   `json:"isActive"`
}

// Apply merges the non-nil fields of u into c.
func (u CreatorUpdate) Apply(c *Creator) {
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.Email != nil {
		c.Email = *u.Email
	}
	if u.Username != nil {
		c.Username = cloneString(u.Username)
	}
	if u.Niche != nil {
		c.Niche = *u.Niche
	}
	if u.Platform != nil {
		c.Platform = *u.Platform
	}
	if u.AudienceSize != nil {
		c.AudienceSize = *u.AudienceSize
	}
	if u.AudienceSizeRange != nil {
		c.AudienceSizeRange = *u.AudienceSizeRange
	}
	if u.Goal != nil {
		c.Goal = *u.Goal
	}
	if u.Bio != nil {
		c.Bio = cloneString(u.Bio)
	}
	if u.ProfileImage != nil {
		c.ProfileImage = cloneString(u.ProfileImage)
	}
	if u.IsActive != nil {
		c.IsActive = *u.IsActive
	}
}

// Clone returns a copy of c that shares no memory with it.
func (c Creator) Clone() Creator {
	c.Username = cloneString(c.Username)
	c.Bio = cloneString(c.Bio)
	c.ProfileImage = cloneString(c.ProfileImage)
	return c
}

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
