package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"Yatube/api/utils/fileformat"

	"github.com/disintegration/imaging"
)

const (
	MaxImageSize  = 5 << 20
	MaxImageWidth = 960
	postsPrefix   = "posts/"
)

var (
	ErrNotImage      = errors.New("upload a valid image")
	ErrImageTooLarge = errors.New("image must be 5 MB or smaller")
)

// Image is an upload after validation and re-encoding.
type Image struct {
	Data        []byte
	ContentType string
	Ext         string
}

// ProcessImage validates an uploaded image and re-encodes it, scaled down
// to MaxImageWidth when wider.
func ProcessImage(r io.Reader) (*Image, error) {
	raw, err := io.ReadAll(io.LimitReader(r, MaxImageSize+1))
	if err != nil {
		return nil, err
	}
	if len(raw) > MaxImageSize {
		return nil, ErrImageTooLarge
	}
	detected := http.DetectContentType(raw)
	if !strings.HasPrefix(detected, "image/") {
		return nil, ErrNotImage
	}

	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return nil, ErrNotImage
	}
	if img.Bounds().Dx() > MaxImageWidth {
		img = imaging.Fit(img, MaxImageWidth, img.Bounds().Dy(), imaging.Lanczos)
	}

	format, contentType, ext := imaging.JPEG, "image/jpeg", ".jpg"
	if detected == "image/png" || detected == "image/gif" {
		format, contentType, ext = imaging.PNG, "image/png", ".png"
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format, imaging.JPEGQuality(85)); err != nil {
		return nil, err
	}
	return &Image{Data: buf.Bytes(), ContentType: contentType, Ext: ext}, nil
}

// SavePostImage processes the upload and stores it under posts/.
func SavePostImage(ctx context.Context, store Store, r io.Reader) (string, error) {
	img, err := ProcessImage(r)
	if err != nil {
		return "", err
	}
	return store.Save(ctx, postsPrefix+fileformat.UniqueFormat("image"+img.Ext), img.ContentType, img.Data)
}
