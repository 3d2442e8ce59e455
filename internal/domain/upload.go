package domain

import "time"

// Upload is attachment metadata. The bytes themselves live with an
// external object store; this side only tracks ownership and the url.
type Upload struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Filename  string    `json:"filename"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

type UploadCreateReq struct {
	Filename string `json:"filename" validate:"required,max=120"`
}
