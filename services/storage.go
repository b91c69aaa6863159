package services

import (
	"mime/multipart"
)

// ObjectStorage is what the workflows need from R2. utils.R2Storage is the
// production implementation; tests substitute an in-memory fake.
type ObjectStorage interface {
	Upload(fileHeader *multipart.FileHeader, key string) (string, error)
	Delete(key string) error
}
