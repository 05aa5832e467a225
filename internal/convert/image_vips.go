package convert

import (
	"fmt"

	"github.com/davidbyttow/govips/v2/vips"
)

// encodeWithVips decodes the input and re-encodes it in the target format
// using libvips. Format-specific tunables mirror what the UI promises:
// progressive JPEG with optimized coding, LZW TIFF, inverse-compression PNG.
func encodeWithVips(input []byte, target string, quality int) ([]byte, error) {
	ref, err := vips.NewImageFromBuffer(input)
	if err != nil {
		return nil, fmt.Errorf("vips failed to load image: %w", err)
	}
	defer ref.Close()

	var out []byte
	switch target {
	case "jpg", "jpeg":
		out, _, err = ref.ExportJpeg(&vips.JpegExportParams{
			Quality:        quality,
			Interlace:      true,
			OptimizeCoding: true,
		})
	case "png":
		out, _, err = ref.ExportPng(&vips.PngExportParams{
			Compression: pngCompressionLevel(quality),
			Interlace:   true,
		})
	case "webp":
		out, _, err = ref.ExportWebp(&vips.WebpExportParams{
			Quality:         quality,
			ReductionEffort: 4,
		})
	case "avif":
		out, _, err = ref.ExportAvif(&vips.AvifExportParams{
			Quality: quality,
		})
	case "tiff":
		out, _, err = ref.ExportTiff(&vips.TiffExportParams{
			Compression: vips.TiffCompressionLzw,
			Quality:     quality,
		})
	case "gif":
		out, _, err = ref.ExportGIF(&vips.GifExportParams{
			Quality: quality,
		})
	default:
		return nil, fmt.Errorf("no vips encoder for format %q", target)
	}
	if err != nil {
		return nil, fmt.Errorf("vips export to %s failed: %w", target, err)
	}
	return out, nil
}

// rasterizeSVG renders SVG markup to an intermediate PNG, bounded by
// maxImageDimension. Requires libvips (librsvg); the pure-Go pipeline has
// no vector renderer.
func rasterizeSVG(data []byte) ([]byte, error) {
	if !IsVipsAvailable() {
		return nil, fmt.Errorf("SVG rasterization requires libvips")
	}

	ref, err := vips.NewImageFromBuffer(data)
	if err != nil {
		return nil, fmt.Errorf("vips failed to load SVG: %w", err)
	}
	defer ref.Close()

	width, height := svgDimensions(data)
	if err := ref.Thumbnail(width, height, vips.InterestingNone); err != nil {
		return nil, fmt.Errorf("vips SVG resize failed: %w", err)
	}

	out, _, err := ref.ExportPng(vips.NewPngExportParams())
	if err != nil {
		return nil, fmt.Errorf("vips SVG rasterization failed: %w", err)
	}
	return out, nil
}
