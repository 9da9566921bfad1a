package post

import (
	"time"

	"github.com/inkwell-blog/core/internal/models"
)

// CreatePostDTO is the request body for creating a post.
type CreatePostDTO struct {
	Title       string   `json:"title"   binding:"required,max=255"`
	Content     string   `json:"content" binding:"required"`
	Slug        string   `json:"slug"    binding:"max=255"`
	Published   bool     `json:"published"`
	CategoryIDs []string `json:"categoryIds"`
}

// UpdatePostDTO is the request body for updating a post. Scalar fields are
// applied only when supplied. CategoryIDs distinguishes omitted (nil,
// associations untouched) from present-but-empty (set cleared).
type UpdatePostDTO struct {
	Title       *string   `json:"title"`
	Content     *string   `json:"content"`
	Slug        *string   `json:"slug"`
	Published   *bool     `json:"published"`
	CategoryIDs *[]string `json:"categoryIds"`
}

// ListQuery holds the public list filters.
type ListQuery struct {
	Published   *bool    `form:"published"`
	CategoryIDs []string `form:"categoryIds"`
}

// categoryRef is the category shape attached to list items.
type categoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// postResponse is the API response shape for a post.
type postResponse struct {
	ID         string                  `json:"id"`
	Title      string                  `json:"title"`
	Content    string                  `json:"content"`
	Slug       string                  `json:"slug"`
	Published  bool                    `json:"published"`
	AuthorID   string                  `json:"authorId"`
	Author     *models.PublicIdentity  `json:"author,omitempty"`
	Categories []models.CategoryModel  `json:"categories"`
	Created    time.Time               `json:"created"`
	Modified   time.Time               `json:"modified"`
}

// listItem is the API response shape for a list entry.
type listItem struct {
	ID         string        `json:"id"`
	Title      string        `json:"title"`
	Content    string        `json:"content"`
	Slug       string        `json:"slug"`
	Published  bool          `json:"published"`
	AuthorID   string        `json:"authorId"`
	Categories []categoryRef `json:"categories"`
	Created    time.Time     `json:"created"`
	Modified   time.Time     `json:"modified"`
}

func toResponse(p *models.PostModel) postResponse {
	categories := p.Categories
	if categories == nil {
		categories = []models.CategoryModel{}
	}
	resp := postResponse{
		ID:         p.ID,
		Title:      p.Title,
		Content:    p.Content,
		Slug:       p.Slug,
		Published:  p.IsPublished,
		AuthorID:   p.AuthorID,
		Categories: categories,
		Created:    p.CreatedAt,
		Modified:   p.UpdatedAt,
	}
	if p.Author != nil {
		identity := p.Author.Public()
		resp.Author = &identity
	}
	return resp
}

func toListItem(p *ListedPost) listItem {
	categories := p.Categories
	if categories == nil {
		categories = []categoryRef{}
	}
	return listItem{
		ID:         p.ID,
		Title:      p.Title,
		Content:    p.Content,
		Slug:       p.Slug,
		Published:  p.IsPublished,
		AuthorID:   p.AuthorID,
		Categories: categories,
		Created:    p.CreatedAt,
		Modified:   p.UpdatedAt,
	}
}
