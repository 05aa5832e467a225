package convert

import (
	"bytes"
	"fmt"
	"image/gif"
	"image/jpeg"
	"image/png"

	"github.com/disintegration/imaging"
	"golang.org/x/image/tiff"

	// Register decoders the named imports above do not already cover.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// encodeFallback is the pure-Go image pipeline used when libvips is not
// available. It covers the formats the Go ecosystem can encode natively;
// webp and avif encoding have no pure-Go encoder and are rejected here.
func encodeFallback(input []byte, target string, quality int) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(input), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("image: unknown format: %w", err)
	}

	var buf bytes.Buffer
	switch target {
	case "jpg", "jpeg":
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality})
	case "png":
		enc := png.Encoder{CompressionLevel: pngEncoderLevel(quality)}
		err = enc.Encode(&buf, img)
	case "gif":
		err = gif.Encode(&buf, img, nil)
	case "tiff":
		err = tiff.Encode(&buf, img, &tiff.Options{Compression: tiff.LZW})
	case "webp", "avif":
		return nil, fmt.Errorf("%s encoding requires libvips", target)
	default:
		return nil, fmt.Errorf("no fallback encoder for format %q", target)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", target, err)
	}
	return buf.Bytes(), nil
}

// pngEncoderLevel maps the 0-9 compression level onto the stdlib encoder's
// coarser settings.
func pngEncoderLevel(quality int) png.CompressionLevel {
	switch level := pngCompressionLevel(quality); {
	case level == 0:
		return png.NoCompression
	case level <= 3:
		return png.BestSpeed
	case level <= 6:
		return png.DefaultCompression
	default:
		return png.BestCompression
	}
}
