// Package media turns client-supplied photo values into stored URLs.
package media

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/hongminglow/employee-be/internal/apperr"
)

// DefaultFolder is the folder uploaded employee photos are stored under.
const DefaultFolder = "comp3133_assignment1/employees"

// minBareBase64Len is the length a prefix-less base64 string must exceed to be treated as image data.
const minBareBase64Len = 200

var bareBase64 = regexp.MustCompile(`^[A-Za-z0-9+/=]+$`)

// Uploader stores an image given as a data URI and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, dataURI, folder string) (string, error)
}

// Resolver decides whether a photo value is a link to keep or image data to upload.
type Resolver struct {
	uploader Uploader
	folder   string
	validate *validator.Validate
}

// NewResolver builds a Resolver. A nil uploader means uploads are not configured;
// values that need uploading are then rejected.
func NewResolver(uploader Uploader, folder string) *Resolver {
	if folder == "" {
		folder = DefaultFolder
	}
	return &Resolver{
		uploader: uploader,
		folder:   folder,
		validate: validator.New(),
	}
}

// Resolve returns the value to store for raw.
func (r *Resolver) Resolve(ctx context.Context, raw string) (string, error) {
	value := strings.TrimSpace(raw)
	switch {
	case value == "":
		return "", nil
	case r.isLink(value):
		return value, nil
	case strings.HasPrefix(value, "data:"):
		return r.upload(ctx, value)
	case len(value) > minBareBase64Len && bareBase64.MatchString(value):
		return r.upload(ctx, "data:image/jpeg;base64,"+value)
	default:
		return value, nil
	}
}

func (r *Resolver) isLink(value string) bool {
	if r.validate.Var(value, "url") != nil {
		return false
	}
	u, err := url.Parse(value)
	if err != nil || u.Host == "" {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https", "ftp":
		return true
	}
	return false
}

func (r *Resolver) upload(ctx context.Context, dataURI string) (string, error) {
	if r.uploader == nil {
		return "", apperr.BadInput("Cloudinary is not configured.")
	}
	link, err := r.uploader.Upload(ctx, dataURI, r.folder)
	if err != nil {
		return "", fmt.Errorf("upload employee photo: %w", err)
	}
	return link, nil
}
