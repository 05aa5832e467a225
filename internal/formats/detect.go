package formats

import "strings"

// aliases normalizes alternate extensions to their canonical format id.
var aliases = map[string]string{
	"jpeg": "jpg",
	"tif":  "tiff",
	"oga":  "ogg",
}

// Normalize maps extension aliases to canonical ids (jpeg -> jpg).
// Already-canonical ids pass through unchanged.
func Normalize(id string) string {
	id = strings.ToLower(id)
	if canonical, ok := aliases[id]; ok {
		return canonical
	}
	return id
}

// extensionOf returns the lowercased substring after the last dot, or ""
// when the name has no usable extension.
func extensionOf(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 || idx == len(filename)-1 {
		return ""
	}
	return strings.ToLower(filename[idx+1:])
}

// mimeHints maps MIME substrings to format ids, checked in order within
// each category. Substring matching mirrors how browsers report loose
// types like "video/quicktime" or "audio/x-wav".
var imageMIMEHints = []struct{ substr, id string }{
	{"jpeg", "jpg"},
	{"png", "png"},
	{"webp", "webp"},
	{"gif", "gif"},
	{"tiff", "tiff"},
	{"avif", "avif"},
	{"svg", "svg"},
}

var videoMIMEHints = []struct{ substr, id string }{
	{"mp4", "mp4"},
	{"quicktime", "mov"},
	{"x-msvideo", "avi"},
	{"matroska", "mkv"},
	{"webm", "webm"},
}

var audioMIMEHints = []struct{ substr, id string }{
	{"mpeg", "mp3"},
	{"mp3", "mp3"},
	{"wav", "wav"},
	{"wave", "wav"},
	{"aac", "aac"},
	{"flac", "flac"},
	{"ogg", "ogg"},
}

// Detect resolves an uploaded file to a canonical format id using the
// filename extension first, then declared MIME type heuristics. It returns
// "" when the file cannot be identified; callers must treat that as
// unsupported rather than guessing.
func Detect(filename, mimeType string) string {
	if ext := extensionOf(filename); ext != "" {
		return Normalize(ext)
	}

	mimeType = strings.ToLower(mimeType)

	switch {
	case strings.HasPrefix(mimeType, "image/"):
		for _, h := range imageMIMEHints {
			if strings.Contains(mimeType, h.substr) {
				return h.id
			}
		}
	case strings.HasPrefix(mimeType, "video/"):
		for _, h := range videoMIMEHints {
			if strings.Contains(mimeType, h.substr) {
				return h.id
			}
		}
	case strings.HasPrefix(mimeType, "audio/"):
		for _, h := range audioMIMEHints {
			if strings.Contains(mimeType, h.substr) {
				return h.id
			}
		}
	}

	// Document MIME types carry enough signal on their own.
	switch {
	case strings.Contains(mimeType, "pdf"):
		return "pdf"
	case strings.Contains(mimeType, "wordprocessingml"):
		return "docx"
	case strings.Contains(mimeType, "text/plain"):
		return "txt"
	case strings.Contains(mimeType, "rtf"):
		return "rtf"
	}

	return ""
}
