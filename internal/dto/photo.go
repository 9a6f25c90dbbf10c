package dto

import "time"

// UploadPhotoRequest carries the declared file name and the base64-encoded
// image bytes.
type UploadPhotoRequest struct {
	FileName string `json:"fileName"`
	Data     string `json:"data"`
}

type UploadPhotoResponse struct {
	Message    string    `json:"message"`
	PhotoID    uint      `json:"photoId"`
	FileName   string    `json:"fileName"`
	UploadDate time.Time `json:"uploadDate"`
}
