// Package router selects the execution path for a conversion request and
// dispatches it, falling back from the server media stub to the in-process
// media engine when the server declines.
package router

import (
	"github.com/justjobs360/fileconverter/internal/formats"
)

// Path is an execution path for a conversion request.
type Path int

const (
	// Unsupported means no executor can handle the request; surfaced as
	// an error without invoking anything.
	Unsupported Path = iota
	// DocumentServer runs the document executor.
	DocumentServer
	// ImageServer runs the image executor.
	ImageServer
	// ImageToPDFServer runs the image-to-PDF executor.
	ImageToPDFServer
	// MediaServer runs the server media stub, which may decline with a
	// retry-on-client signal.
	MediaServer
	// MediaClient runs the in-process media engine directly.
	MediaClient
)

func (p Path) String() string {
	switch p {
	case DocumentServer:
		return "document-server"
	case ImageServer:
		return "image-server"
	case ImageToPDFServer:
		return "image-to-pdf-server"
	case MediaServer:
		return "media-server"
	case MediaClient:
		return "media-client"
	default:
		return "unsupported"
	}
}

// Limits carries the size tiers the router applies. The media threshold is
// deliberately below the upload ceiling: media files above it never reach
// the server path at all.
type Limits struct {
	// MaxUploadBytes is the request-body ceiling for the server
	// executors (images, documents, image-to-PDF).
	MaxUploadBytes int64

	// MediaServerMaxBytes is the threshold above which media routes
	// straight to the in-process engine.
	MediaServerMaxBytes int64
}

// DefaultLimits mirrors the hosting platform's 4.5MB body ceiling and the
// 4MB media threshold.
func DefaultLimits() Limits {
	return Limits{
		MaxUploadBytes:      4608 * 1024,
		MediaServerMaxBytes: 4 * 1024 * 1024,
	}
}

// Route picks the execution path for a detected source format, requested
// target, and file size. First match wins:
//
//  1. document source always goes to the document executor
//  2. image source with a pdf target goes to the image-to-PDF executor
//  3. image source (or an image target when the source is undetermined)
//     goes to the image executor
//  4. video/audio goes to the media server below the threshold, to the
//     engine above it
//  5. anything else is unsupported
func Route(source, target string, size int64, cfg Limits) Path {
	source = formats.Normalize(source)
	target = formats.Normalize(target)

	srcCat := formats.CategoryOf(source)
	switch {
	case srcCat == formats.CategoryDocument:
		return DocumentServer
	case srcCat == formats.CategoryImage && target == "pdf":
		return ImageToPDFServer
	case srcCat == formats.CategoryImage,
		source == "" && formats.CategoryOf(target) == formats.CategoryImage:
		return ImageServer
	case srcCat == formats.CategoryVideo, srcCat == formats.CategoryAudio:
		if size <= cfg.MediaServerMaxBytes {
			return MediaServer
		}
		return MediaClient
	default:
		return Unsupported
	}
}
