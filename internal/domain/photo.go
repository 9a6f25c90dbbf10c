package domain

import "time"

// Photo is an image attached to an order as delivery evidence. FileName is
// the name the uploader declared; StorageKey is the generated blob key and
// is never derived from the declared name beyond its extension.
type Photo struct {
	ID         uint
	OrderID    uint
	FileName   string
	StorageKey string
	UploadDate time.Time
}
