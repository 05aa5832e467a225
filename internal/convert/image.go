package convert

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/justjobs360/fileconverter/internal/formats"
	"github.com/justjobs360/fileconverter/internal/logging"
)

const (
	// maxImageDimension caps rasterization output to keep memory bounded.
	maxImageDimension = 10000

	defaultImageQuality = 90
	defaultAvifQuality  = 60
)

// imageTargets enumerates the encodings the image executor can produce.
var imageTargets = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"webp": true,
	"avif": true,
	"tiff": true,
	"gif":  true,
	"svg":  true,
}

// ConvertImage converts an uploaded image to the requested target format.
// maxBytes is the hosting platform's request-body ceiling; oversize inputs
// are rejected before any decoding happens.
func ConvertImage(req Request, maxBytes int64) (*Result, *Error) {
	if len(req.Data) == 0 || req.TargetFormat == "" {
		return nil, errMissingParameters()
	}

	if req.Size > maxBytes {
		return nil, errTooLarge(req.Size, maxBytes, false)
	}

	lowerName := strings.ToLower(req.Filename)
	isSVGInput := strings.Contains(req.MIMEType, "svg") || strings.HasSuffix(lowerName, ".svg")

	if !strings.HasPrefix(req.MIMEType, "image/") && !strings.HasSuffix(lowerName, ".svg") {
		if strings.HasSuffix(lowerName, ".heic") || strings.HasSuffix(lowerName, ".heif") {
			return nil, newError(CodeUnsupportedFormat, http.StatusBadRequest,
				"HEIC/HEIF format is not directly supported. Please convert to JPG or PNG first using a compatible tool.")
		}
		return nil, newError(CodeInvalidFileType, http.StatusBadRequest,
			"Only image files are supported by this endpoint")
	}

	target := formats.Normalize(req.TargetFormat)
	if !imageTargets[target] {
		return nil, newError(CodeUnsupportedFormat, http.StatusBadRequest,
			"Unsupported output format: %s. Supported formats are: JPG, PNG, WebP, AVIF, TIFF, GIF, SVG", req.TargetFormat)
	}

	quality := clampQuality(req.Quality, target)

	// SVG output: vectors cannot be generated from rasters, so the only
	// valid case is SVG in, SVG out.
	if target == "svg" {
		if !isSVGInput {
			return nil, newError(CodeRasterToSVG, http.StatusBadRequest,
				"Raster to SVG conversion is not supported. SVG is a vector format that cannot be accurately generated from raster images.")
		}
		return &Result{
			Bytes:       req.Data,
			ContentType: "image/svg+xml",
			Filename:    formats.OutputFilename(req.Filename, target),
		}, nil
	}

	input := req.Data
	if isSVGInput {
		rasterized, err := rasterizeSVG(req.Data)
		if err != nil {
			e := newError(CodeSVGProcessingError, http.StatusBadRequest,
				"Failed to process SVG file. The SVG may contain unsupported features or be corrupted.")
			e.Details = err.Error()
			return nil, e
		}
		input = rasterized
	}

	var out []byte
	var err error
	if IsVipsAvailable() {
		out, err = encodeWithVips(input, target, quality)
	} else {
		logging.Debug("libvips unavailable, using pure-Go image pipeline for %s", target)
		out, err = encodeFallback(input, target, quality)
	}
	if err != nil {
		if cerr := classifyImageError(err); cerr != nil {
			return nil, cerr
		}
		return nil, classify(err)
	}

	return &Result{
		Bytes:       out,
		ContentType: formats.MIMEForTarget(target),
		Filename:    formats.OutputFilename(req.Filename, target),
	}, nil
}

// clampQuality resolves the effective quality: format-specific default when
// unset, clamped to 1-100 otherwise.
func clampQuality(quality int, target string) int {
	if quality == 0 {
		if target == "avif" {
			return defaultAvifQuality
		}
		return defaultImageQuality
	}
	if quality < 1 {
		return 1
	}
	if quality > 100 {
		return 100
	}
	return quality
}

// pngCompressionLevel converts a 1-100 quality into zlib compression 0-9.
// PNG is lossless, so "quality" is expressed as inverse compression effort.
func pngCompressionLevel(quality int) int {
	level := int(float64(100-quality)/11.11 + 0.5)
	if level < 0 {
		return 0
	}
	if level > 9 {
		return 9
	}
	return level
}

// classifyImageError maps decoder/encoder failures onto the image-specific
// codes before falling back to the generic taxonomy.
func classifyImageError(err error) *Error {
	msg := err.Error()
	switch {
	case containsAny(msg, "unsupported image format", "image: unknown format", "unable to load"):
		return newError(CodeInvalidImageFormat, http.StatusBadRequest,
			"The uploaded file is not a valid image or uses an unsupported format. Please ensure the file is a valid image.")
	case containsAny(msg, "memory", "too large"):
		return newError(CodeImageTooLarge, http.StatusRequestEntityTooLarge,
			"Image is too large to process. Please resize or compress the image before conversion.")
	default:
		return nil
	}
}

var (
	svgWidthRe   = regexp.MustCompile(`(?i)width=["']?(\d+)`)
	svgHeightRe  = regexp.MustCompile(`(?i)height=["']?(\d+)`)
	svgViewBoxRe = regexp.MustCompile(`(?i)viewBox=["']?[\d.]+[\s,]+[\d.]+[\s,]+(\d+)[\s,]+(\d+)`)
)

// svgDimensions extracts raster dimensions from SVG markup, preferring the
// viewBox, then explicit width/height, then a generous default. The result
// is scaled down to fit maxImageDimension.
func svgDimensions(data []byte) (int, int) {
	width, height := 2000, 2000

	text := string(data)
	if m := svgViewBoxRe.FindStringSubmatch(text); m != nil {
		if w, err := strconv.Atoi(m[1]); err == nil && w > 0 {
			width = w
		}
		if h, err := strconv.Atoi(m[2]); err == nil && h > 0 {
			height = h
		}
	} else {
		wm := svgWidthRe.FindStringSubmatch(text)
		hm := svgHeightRe.FindStringSubmatch(text)
		if wm != nil && hm != nil {
			if w, err := strconv.Atoi(wm[1]); err == nil && w > 0 {
				width = w
			}
			if h, err := strconv.Atoi(hm[1]); err == nil && h > 0 {
				height = h
			}
		}
	}

	if maxDim := max(width, height); maxDim > maxImageDimension {
		scale := float64(maxImageDimension) / float64(maxDim)
		width = int(float64(width) * scale)
		height = int(float64(height) * scale)
	}

	return width, height
}
