package dto

import (
	"strings"
	"time"

	"gorm.io/datatypes"

	"estatehub_backend/internals/features/content/blog/model"
)

type CreateBlogPostRequest struct {
	Title           string   `json:"title" validate:"required,min=3,max=250"`
	Slug            string   `json:"slug" validate:"omitempty,max=280"`
	Excerpt         string   `json:"excerpt" validate:"max=600"`
	Content         string   `json:"content" validate:"required"`
	CoverImage      string   `json:"coverImage" validate:"max=1000"`
	Category        string   `json:"category" validate:"max=80"`
	Tags            []string `json:"tags" validate:"omitempty,max=30,dive,max=60"`
	AuthorName      string   `json:"authorName" validate:"max=120"`
	Status          string   `json:"status" validate:"omitempty,oneof=draft published"`
	IsFeatured      bool     `json:"isFeatured"`
	MetaTitle       string   `json:"metaTitle" validate:"max=250"`
	MetaDescription string   `json:"metaDescription" validate:"max=500"`
}

func cleanTags(in []string) datatypes.JSONSlice[string] {
	out := datatypes.JSONSlice[string]{}
	seen := map[string]bool{}
	for _, t := range in {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

func (r *CreateBlogPostRequest) ToModel() model.BlogPostModel {
	m := model.BlogPostModel{
		Title:           strings.TrimSpace(r.Title),
		Excerpt:         strings.TrimSpace(r.Excerpt),
		Content:         r.Content,
		CoverImage:      strings.TrimSpace(r.CoverImage),
		Category:        strings.TrimSpace(r.Category),
		Tags:            cleanTags(r.Tags),
		AuthorName:      strings.TrimSpace(r.AuthorName),
		Status:          r.Status,
		IsFeatured:      r.IsFeatured,
		MetaTitle:       strings.TrimSpace(r.MetaTitle),
		MetaDescription: strings.TrimSpace(r.MetaDescription),
	}
	if m.Status == "" {
		m.Status = model.BlogDraft
	}
	if m.Status == model.BlogPublished {
		now := time.Now()
		m.PublishedAt = &now
	}
	return m
}

type UpdateBlogPostRequest struct {
	Title           *string   `json:"title" validate:"omitempty,min=3,max=250"`
	Slug            *string   `json:"slug" validate:"omitempty,max=280"`
	Excerpt         *string   `json:"excerpt" validate:"omitempty,max=600"`
	Content         *string   `json:"content" validate:"omitempty,min=1"`
	CoverImage      *string   `json:"coverImage" validate:"omitempty,max=1000"`
	Category        *string   `json:"category" validate:"omitempty,max=80"`
	Tags            *[]string `json:"tags" validate:"omitempty,max=30,dive,max=60"`
	AuthorName      *string   `json:"authorName" validate:"omitempty,max=120"`
	Status          *string   `json:"status" validate:"omitempty,oneof=draft published"`
	IsFeatured      *bool     `json:"isFeatured"`
	MetaTitle       *string   `json:"metaTitle" validate:"omitempty,max=250"`
	MetaDescription *string   `json:"metaDescription" validate:"omitempty,max=500"`
}

// Apply stamps publishedAt the first time a post becomes published.
func (r *UpdateBlogPostRequest) Apply(m *model.BlogPostModel) {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	set(&m.Title, r.Title)
	set(&m.Excerpt, r.Excerpt)
	set(&m.CoverImage, r.CoverImage)
	set(&m.Category, r.Category)
	set(&m.AuthorName, r.AuthorName)
	set(&m.MetaTitle, r.MetaTitle)
	set(&m.MetaDescription, r.MetaDescription)
	if r.Content != nil {
		m.Content = *r.Content
	}
	if r.Tags != nil {
		m.Tags = cleanTags(*r.Tags)
	}
	if r.IsFeatured != nil {
		m.IsFeatured = *r.IsFeatured
	}
	if r.Status != nil {
		m.Status = *r.Status
		if m.Status == model.BlogPublished && m.PublishedAt == nil {
			now := time.Now()
			m.PublishedAt = &now
		}
	}
}
