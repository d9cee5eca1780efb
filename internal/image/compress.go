// Package image re-encodes uploaded photos before storage.
package image

import (
	"fmt"

	"github.com/h2non/bimg"
)

// Options control re-encoding.
type Options struct {
	// Quality for lossy encoding, 1-100.
	Quality int
	// MaxWidth caps the output width; height follows the aspect ratio.
	// 0 means no resize.
	MaxWidth int
	// StripMetadata removes EXIF blocks, including GPS tags.
	StripMetadata bool
}

// DefaultOptions are what piano photo uploads use.
func DefaultOptions() Options {
	return Options{
		Quality:       82,
		MaxWidth:      1920,
		StripMetadata: true,
	}
}

// Compress re-encodes an image in its original format, resizing it down to
// opts.MaxWidth when it is wider. Aspect ratio is preserved; images already
// within bounds are only re-encoded.
func Compress(data []byte, opts Options) ([]byte, error) {
	img := bimg.NewImage(data)
	meta, err := img.Metadata()
	if err != nil {
		return nil, fmt.Errorf("read image metadata: %w", err)
	}

	bopts := bimg.Options{
		Quality:       opts.Quality,
		StripMetadata: opts.StripMetadata,
		Type:          parseType(meta.Type),
	}
	if opts.MaxWidth > 0 && meta.Size.Width > opts.MaxWidth {
		bopts.Width = opts.MaxWidth
		bopts.Height = meta.Size.Height * opts.MaxWidth / meta.Size.Width
	}

	out, err := img.Process(bopts)
	if err != nil {
		return nil, fmt.Errorf("re-encode image: %w", err)
	}
	return out, nil
}

// MIMEType sniffs the image format; empty when the bytes are not an image
// bimg understands.
func MIMEType(data []byte) string {
	switch bimg.DetermineImageType(data) {
	case bimg.JPEG:
		return "image/jpeg"
	case bimg.PNG:
		return "image/png"
	case bimg.WEBP:
		return "image/webp"
	case bimg.GIF:
		return "image/gif"
	}
	return ""
}

func parseType(name string) bimg.ImageType {
	switch name {
	case "jpeg", "jpg":
		return bimg.JPEG
	case "png":
		return bimg.PNG
	case "webp":
		return bimg.WEBP
	case "gif":
		return bimg.GIF
	}
	return bimg.JPEG
}
