package dto

type SocialLinks struct {
	Facebook  string `json:"facebook" validate:"omitempty,url"`
	Instagram string `json:"instagram" validate:"omitempty,url"`
	Twitter   string `json:"twitter" validate:"omitempty,url"`
	LinkedIn  string `json:"linkedin" validate:"omitempty,url"`
	YouTube   string `json:"youtube" validate:"omitempty,url"`
}

type Organization struct {
	Name         string      `json:"name" validate:"required,max=150"`
	Tagline      string      `json:"tagline" validate:"max=250"`
	Description  string      `json:"description" validate:"max=2000"`
	Email        string      `json:"email" validate:"omitempty,email"`
	Phone        string      `json:"phone" validate:"max=30"`
	Address      string      `json:"address" validate:"max=500"`
	Website      string      `json:"website" validate:"omitempty,url"`
	LogoURL      string      `json:"logoUrl" validate:"max=500"`
	FaviconURL   string      `json:"faviconUrl" validate:"max=500"`
	Currency     string      `json:"currency" validate:"omitempty,len=3"`
	Social       SocialLinks `json:"social"`
	SupportHours string      `json:"supportHours" validate:"max=120"`
}

func DefaultOrganization() Organization {
	return Organization{Name: "EstateHub", Currency: "INR"}
}

type FooterLink struct {
	Label string `json:"label" validate:"required,max=80"`
	URL   string `json:"url" validate:"required,max=500"`
}

type FooterColumn struct {
	Title string       `json:"title" validate:"required,max=80"`
	Links []FooterLink `json:"links" validate:"max=20,dive"`
}

type FooterSettings struct {
	About          string         `json:"about" validate:"max=1000"`
	Columns        []FooterColumn `json:"columns" validate:"max=6,dive"`
	Social         SocialLinks    `json:"social"`
	ContactEmail   string         `json:"contactEmail" validate:"omitempty,email"`
	ContactPhone   string         `json:"contactPhone" validate:"max=30"`
	Address        string         `json:"address" validate:"max=500"`
	CopyrightText  string         `json:"copyrightText" validate:"max=250"`
	ShowNewsletter bool           `json:"showNewsletter"`
}

func DefaultFooter() FooterSettings {
	return FooterSettings{
		Columns:        []FooterColumn{},
		CopyrightText:  "© EstateHub. All rights reserved.",
		ShowNewsletter: true,
	}
}
