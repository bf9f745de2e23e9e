package dto

import (
	"strings"

	"estatehub_backend/internals/features/content/newsletter/model"
)

type SubscribeRequest struct {
	Email  string `json:"email" validate:"required,email,max=255"`
	Name   string `json:"name" validate:"max=150"`
	Source string `json:"source" validate:"max=60"`
}

func (r *SubscribeRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Name = strings.TrimSpace(r.Name)
	r.Source = strings.TrimSpace(r.Source)
	if r.Source == "" {
		r.Source = "website"
	}
}

type UnsubscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type SubscribeResponse struct {
	Success    bool                            `json:"success"`
	Message    string                          `json:"message"`
	Subscriber model.NewsletterSubscriberModel `json:"subscriber"`
}
