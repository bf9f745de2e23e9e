package dto

// UploadURLRequest asks for a direct-upload target. Private defaults to false.
type UploadURLRequest struct {
	Filename    string `json:"filename" validate:"required,max=255"`
	Name        string `json:"name"`
	ContentType string `json:"contentType"`
	Private     bool   `json:"private"`
}

type UploadURLResponse struct {
	UploadURL  string `json:"uploadURL"`
	Method     string `json:"method"`
	Filename   string `json:"filename"`
	ObjectPath string `json:"objectPath"`
	URL        string `json:"url"`
	Visibility string `json:"visibility"`
	ExpiresIn  int    `json:"expiresIn"`
}
