package dto

import (
	"strings"

	"gorm.io/datatypes"

	"estatehub_backend/internals/features/content/pages/model"
)

type CreatePageRequest struct {
	PageKey         string         `json:"pageKey" validate:"required,min=2,max=120"`
	Title           string         `json:"title" validate:"required,max=250"`
	Content         string         `json:"content"`
	Sections        datatypes.JSON `json:"sections"`
	MetaTitle       string         `json:"metaTitle" validate:"max=250"`
	MetaDescription string         `json:"metaDescription" validate:"max=500"`
	IsPublished     *bool          `json:"isPublished"`
}

func (r *CreatePageRequest) ToModel() model.PageContentModel {
	m := model.PageContentModel{
		PageKey:         NormalizeKey(r.PageKey),
		Title:           strings.TrimSpace(r.Title),
		Content:         r.Content,
		Sections:        r.Sections,
		MetaTitle:       strings.TrimSpace(r.MetaTitle),
		MetaDescription: strings.TrimSpace(r.MetaDescription),
		IsPublished:     true,
	}
	if r.IsPublished != nil {
		m.IsPublished = *r.IsPublished
	}
	return m
}

// NormalizeKey lowercases and trims a page key.
func NormalizeKey(k string) string {
	return strings.ToLower(strings.TrimSpace(k))
}

type UpdatePageRequest struct {
	Title           *string         `json:"title" validate:"omitempty,min=1,max=250"`
	Content         *string         `json:"content"`
	Sections        *datatypes.JSON `json:"sections"`
	MetaTitle       *string         `json:"metaTitle" validate:"omitempty,max=250"`
	MetaDescription *string         `json:"metaDescription" validate:"omitempty,max=500"`
	IsPublished     *bool           `json:"isPublished"`
	ChangeNote      string          `json:"changeNote" validate:"max=300"`
}

func (r *UpdatePageRequest) Apply(m *model.PageContentModel) {
	if r.Title != nil {
		m.Title = strings.TrimSpace(*r.Title)
	}
	if r.Content != nil {
		m.Content = *r.Content
	}
	if r.Sections != nil {
		m.Sections = *r.Sections
	}
	if r.MetaTitle != nil {
		m.MetaTitle = strings.TrimSpace(*r.MetaTitle)
	}
	if r.MetaDescription != nil {
		m.MetaDescription = strings.TrimSpace(*r.MetaDescription)
	}
	if r.IsPublished != nil {
		m.IsPublished = *r.IsPublished
	}
}

type PageResponse struct {
	model.PageContentModel
	CurrentVersion int `json:"currentVersion"`
}

type RollbackResponse struct {
	Page            PageResponse `json:"page"`
	RestoredVersion int          `json:"restoredVersion"`
	SnapshotVersion int          `json:"snapshotVersion"`
}
