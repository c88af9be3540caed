package domain

import (
	"time"
	"unicode/utf8"
)

// News is the core domain entity. The ID and CreatedAt are set once at
// creation and never change; UpdatedAt is refreshed on every mutation.
type News struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateNewsRequest is the inbound payload for creating a news item.
type CreateNewsRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (r *CreateNewsRequest) Validate() error {
	if r.Title == "" {
		return ErrTitleRequired
	}
	// Bounds count characters, not bytes, so multibyte titles are measured
	// the same way the varchar(255) column measures them.
	if n := utf8.RuneCountInString(r.Title); n < 5 || n > 255 {
		return ErrTitleLength
	}
	if r.Description == "" {
		return ErrDescriptionRequired
	}
	if utf8.RuneCountInString(r.Description) < 10 {
		return ErrDescriptionLength
	}
	return nil
}

// UpdateNewsRequest carries a partial update. Nil fields are left untouched;
// supplied fields are validated with the same bounds as creation.
type UpdateNewsRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (r *UpdateNewsRequest) Validate() error {
	if r.Title != nil {
		if n := utf8.RuneCountInString(*r.Title); n < 5 || n > 255 {
			return ErrTitleLength
		}
	}
	if r.Description != nil && utf8.RuneCountInString(*r.Description) < 10 {
		return ErrDescriptionLength
	}
	return nil
}

// ListFilter holds query parameters for the paginated news listing.
// Title and Description are substring filters; empty means no filter.
type ListFilter struct {
	Page        int
	Limit       int
	Title       string
	Description string
}

// PageMeta is the pagination metadata attached to every listing response.
type PageMeta struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// PaginatedNews is one page of news items plus its metadata. This is the
// unit stored in the page cache, so a cache hit returns the exact snapshot
// assembled on the original miss.
type PaginatedNews struct {
	Data []*News  `json:"data"`
	Meta PageMeta `json:"meta"`
}
