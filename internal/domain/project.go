package domain

import "time"

type Project struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ImageURL     *string   `json:"image_url,omitempty"`
	Technologies []string  `json:"technologies"`
	GitHubURL    *string   `json:"github_url,omitempty"`
	LiveURL      *string   `json:"live_url,omitempty"`
	Featured     bool      `json:"featured"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
}

type ProjectStats struct {
	Total    int64 `json:"total"`
	Featured int64 `json:"featured"`
}

// ProjectFilter narrows project listings.
type ProjectFilter struct {
	FeaturedOnly bool
	Limit        int
}
