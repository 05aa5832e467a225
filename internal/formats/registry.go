package formats

import "strings"

// Category classifies a format into a broad media family.
type Category string

const (
	// CategoryImage represents raster and vector image formats.
	CategoryImage Category = "image"
	// CategoryVideo represents video container formats.
	CategoryVideo Category = "video"
	// CategoryAudio represents audio formats.
	CategoryAudio Category = "audio"
	// CategoryDocument represents document formats.
	CategoryDocument Category = "document"
	// CategoryOther represents unknown or unsupported formats.
	CategoryOther Category = "other"
)

// Info describes a single known format. Instances are defined once in the
// registry below and never mutated.
type Info struct {
	ID         string   `json:"id"`
	Label      string   `json:"label"`
	Category   Category `json:"category"`
	MIMETypes  []string `json:"mimeTypes"`
	Extensions []string `json:"extensions"`
}

// All is the static table of every format the converter understands.
var All = []Info{
	// Images
	{ID: "jpg", Label: "JPG", Category: CategoryImage, MIMETypes: []string{"image/jpeg"}, Extensions: []string{"jpg", "jpeg"}},
	{ID: "png", Label: "PNG", Category: CategoryImage, MIMETypes: []string{"image/png"}, Extensions: []string{"png"}},
	{ID: "webp", Label: "WebP", Category: CategoryImage, MIMETypes: []string{"image/webp"}, Extensions: []string{"webp"}},
	{ID: "gif", Label: "GIF", Category: CategoryImage, MIMETypes: []string{"image/gif"}, Extensions: []string{"gif"}},
	{ID: "tiff", Label: "TIFF", Category: CategoryImage, MIMETypes: []string{"image/tiff"}, Extensions: []string{"tiff", "tif"}},
	{ID: "avif", Label: "AVIF", Category: CategoryImage, MIMETypes: []string{"image/avif"}, Extensions: []string{"avif"}},
	{ID: "svg", Label: "SVG", Category: CategoryImage, MIMETypes: []string{"image/svg+xml"}, Extensions: []string{"svg"}},

	// Videos
	{ID: "mp4", Label: "MP4", Category: CategoryVideo, MIMETypes: []string{"video/mp4"}, Extensions: []string{"mp4"}},
	{ID: "mov", Label: "MOV", Category: CategoryVideo, MIMETypes: []string{"video/quicktime"}, Extensions: []string{"mov"}},
	{ID: "avi", Label: "AVI", Category: CategoryVideo, MIMETypes: []string{"video/x-msvideo"}, Extensions: []string{"avi"}},
	{ID: "mkv", Label: "MKV", Category: CategoryVideo, MIMETypes: []string{"video/x-matroska"}, Extensions: []string{"mkv"}},
	{ID: "webm", Label: "WebM", Category: CategoryVideo, MIMETypes: []string{"video/webm"}, Extensions: []string{"webm"}},

	// Audio
	{ID: "mp3", Label: "MP3", Category: CategoryAudio, MIMETypes: []string{"audio/mpeg", "audio/mp3"}, Extensions: []string{"mp3"}},
	{ID: "wav", Label: "WAV", Category: CategoryAudio, MIMETypes: []string{"audio/wav", "audio/wave"}, Extensions: []string{"wav"}},
	{ID: "aac", Label: "AAC", Category: CategoryAudio, MIMETypes: []string{"audio/aac"}, Extensions: []string{"aac"}},
	{ID: "flac", Label: "FLAC", Category: CategoryAudio, MIMETypes: []string{"audio/flac"}, Extensions: []string{"flac"}},
	{ID: "ogg", Label: "OGG", Category: CategoryAudio, MIMETypes: []string{"audio/ogg"}, Extensions: []string{"ogg", "oga"}},

	// Documents
	{ID: "pdf", Label: "PDF", Category: CategoryDocument, MIMETypes: []string{"application/pdf"}, Extensions: []string{"pdf"}},
	{ID: "docx", Label: "DOCX", Category: CategoryDocument, MIMETypes: []string{"application/vnd.openxmlformats-officedocument.wordprocessingml.document"}, Extensions: []string{"docx"}},
	{ID: "txt", Label: "TXT", Category: CategoryDocument, MIMETypes: []string{"text/plain"}, Extensions: []string{"txt"}},
	{ID: "rtf", Label: "RTF", Category: CategoryDocument, MIMETypes: []string{"application/rtf", "text/rtf"}, Extensions: []string{"rtf"}},
}

// byID is built once at init for constant-time lookups.
var byID = func() map[string]Info {
	m := make(map[string]Info, len(All))
	for _, f := range All {
		m[f.ID] = f
	}
	return m
}()

var imageTargets = []string{"pdf", "jpg", "png", "webp", "tiff", "avif", "gif"}
var videoTargets = []string{"mp4", "mov", "avi", "mkv", "webm"}
var audioTargets = []string{"mp3", "wav", "aac", "flac", "ogg"}
var documentTargets = []string{"pdf", "docx", "txt", "rtf"}

// compatibility restricts which target formats are reachable from a source.
// Keys are canonical ids plus the raw aliases users may hand us before
// normalization. Every referenced id exists in the registry.
var compatibility = map[string][]string{
	"jpg":  imageTargets,
	"jpeg": imageTargets,
	"png":  imageTargets,
	"webp": imageTargets,
	"gif":  imageTargets,
	"tiff": imageTargets,
	"tif":  imageTargets,
	"avif": imageTargets,
	"svg":  append(append([]string{}, imageTargets...), "svg"),

	"mp4":  videoTargets,
	"mov":  videoTargets,
	"avi":  videoTargets,
	"mkv":  videoTargets,
	"webm": videoTargets,

	"mp3":  audioTargets,
	"wav":  audioTargets,
	"aac":  audioTargets,
	"flac": audioTargets,
	"ogg":  audioTargets,
	"oga":  audioTargets,

	"pdf":  documentTargets,
	"docx": documentTargets,
	"txt":  documentTargets,
	"rtf":  documentTargets,
}

// Lookup returns the registry entry for a canonical format id.
func Lookup(id string) (Info, bool) {
	f, ok := byID[strings.ToLower(id)]
	return f, ok
}

// CategoryOf returns the category for a format id, or CategoryOther when the
// id is not in the registry.
func CategoryOf(id string) Category {
	if f, ok := Lookup(id); ok {
		return f.Category
	}
	return CategoryOther
}

// IsConversionSupported reports whether target is reachable from source
// according to the compatibility matrix. Unknown sources are unreachable.
func IsConversionSupported(source, target string) bool {
	targets, ok := compatibility[strings.ToLower(source)]
	if !ok {
		return false
	}
	target = strings.ToLower(target)
	for _, t := range targets {
		if t == target {
			return true
		}
	}
	return false
}

// SupportedTargets returns the allowed target ids for a source format.
// The result is a copy; callers may not mutate the matrix.
func SupportedTargets(source string) []string {
	targets, ok := compatibility[strings.ToLower(source)]
	if !ok {
		return nil
	}
	out := make([]string, len(targets))
	copy(out, targets)
	return out
}

// MIMEForTarget returns the canonical content type to serve for a target
// format id. Unknown ids fall back to application/octet-stream.
func MIMEForTarget(id string) string {
	if f, ok := Lookup(id); ok && len(f.MIMETypes) > 0 {
		return f.MIMETypes[0]
	}
	return "application/octet-stream"
}

// CanonicalExtension returns the preferred file extension (without dot) for
// a format id. Unknown ids return the lowercased id itself so generated
// filenames stay predictable.
func CanonicalExtension(id string) string {
	if f, ok := Lookup(id); ok && len(f.Extensions) > 0 {
		return f.Extensions[0]
	}
	return strings.ToLower(id)
}

// OutputFilename derives the attachment filename for a converted file by
// replacing only the final extension of the original name. Names without an
// extension get the target extension appended.
func OutputFilename(original, target string) string {
	ext := CanonicalExtension(target)
	if idx := strings.LastIndex(original, "."); idx > 0 {
		return original[:idx] + "." + ext
	}
	return original + "." + ext
}
