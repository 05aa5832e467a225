package convert

import (
	"bytes"
	"image"
	"net/http"
	"strings"

	"github.com/justjobs360/fileconverter/internal/formats"

	"github.com/jung-kurt/gofpdf"
)

// pxToPt converts pixels to PDF points at the conventional 96 DPI.
const pxToPt = 72.0 / 96.0

// ConvertImageToPDF embeds an uploaded raster image as a single full-bleed
// PDF page sized to the image's pixel dimensions. Every input is first
// normalized to PNG so the embedding path is uniform regardless of source
// encoding.
func ConvertImageToPDF(req Request, maxBytes int64) (*Result, *Error) {
	if len(req.Data) == 0 {
		return nil, errMissingParameters()
	}

	if !strings.EqualFold(req.TargetFormat, "pdf") {
		return nil, newError(CodeInvalidRequest, http.StatusBadRequest,
			"Invalid request. File required and format must be PDF.")
	}

	if req.Size > maxBytes {
		return nil, errTooLarge(req.Size, maxBytes, false)
	}

	lowerName := strings.ToLower(req.Filename)
	if !strings.HasPrefix(req.MIMEType, "image/") && !hasImageSuffix(lowerName) {
		return nil, newError(CodeInvalidFileType, http.StatusBadRequest,
			"Only image to PDF conversion is currently supported. Please upload an image file.")
	}

	// Normalize to PNG. SVG goes through the rasterizer; everything else
	// is re-encoded losslessly.
	var pngBytes []byte
	var err error
	if strings.Contains(req.MIMEType, "svg") || strings.HasSuffix(lowerName, ".svg") {
		pngBytes, err = rasterizeSVG(req.Data)
	} else if IsVipsAvailable() {
		pngBytes, err = encodeWithVips(req.Data, "png", 100)
	} else {
		pngBytes, err = encodeFallback(req.Data, "png", 100)
	}
	if err != nil {
		if cerr := classifyImageError(err); cerr != nil {
			return nil, cerr
		}
		return nil, classify(err)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(pngBytes))
	if err != nil {
		e := newError(CodeInvalidImageFormat, http.StatusBadRequest,
			"The uploaded file is not a valid image or uses an unsupported format.")
		e.Details = err.Error()
		return nil, e
	}

	widthPt := float64(cfg.Width) * pxToPt
	heightPt := float64(cfg.Height) * pxToPt

	doc := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: widthPt, Ht: heightPt},
	})
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()

	doc.RegisterImageOptionsReader("upload", gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(pngBytes))
	doc.ImageOptions("upload", 0, 0, widthPt, heightPt, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		e := newError(CodeProcessingError, http.StatusInternalServerError,
			"Failed to convert image to PDF. Please ensure the file is a valid image format and try again.")
		e.Details = err.Error()
		return nil, e
	}

	return &Result{
		Bytes:       buf.Bytes(),
		ContentType: "application/pdf",
		Filename:    formats.OutputFilename(req.Filename, "pdf"),
	}, nil
}

func hasImageSuffix(lowerName string) bool {
	for _, ext := range []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp", ".svg", ".tiff", ".tif", ".avif"} {
		if strings.HasSuffix(lowerName, ext) {
			return true
		}
	}
	return false
}
