package formats

import (
	"testing"
)

func TestRegistryReferentialIntegrity(t *testing.T) {
	// Every target referenced by the compatibility matrix must exist in the
	// registry, otherwise the router could select an unservable format.
	for source, targets := range compatibility {
		for _, target := range targets {
			if _, ok := Lookup(target); !ok {
				t.Errorf("compatibility[%q] references unknown target %q", source, target)
			}
		}
	}

	// Every canonical registry id must have a matrix entry.
	for _, f := range All {
		if _, ok := compatibility[f.ID]; !ok {
			t.Errorf("registry format %q has no compatibility entry", f.ID)
		}
	}
}

func TestIsConversionSupported(t *testing.T) {
	tests := []struct {
		name   string
		source string
		target string
		want   bool
	}{
		{
			name:   "image to image",
			source: "png",
			target: "jpg",
			want:   true,
		},
		{
			name:   "image to pdf",
			source: "jpg",
			target: "pdf",
			want:   true,
		},
		{
			name:   "raster to svg is not reachable",
			source: "png",
			target: "svg",
			want:   false,
		},
		{
			name:   "svg to svg passthrough",
			source: "svg",
			target: "svg",
			want:   true,
		},
		{
			name:   "video to video",
			source: "mov",
			target: "mp4",
			want:   true,
		},
		{
			name:   "video to audio is not reachable",
			source: "mp4",
			target: "mp3",
			want:   false,
		},
		{
			name:   "audio alias source",
			source: "oga",
			target: "mp3",
			want:   true,
		},
		{
			name:   "document to document",
			source: "docx",
			target: "txt",
			want:   true,
		},
		{
			name:   "document to spreadsheet",
			source: "docx",
			target: "xlsx",
			want:   false,
		},
		{
			name:   "unknown source",
			source: "exe",
			target: "pdf",
			want:   false,
		},
		{
			name:   "case insensitive",
			source: "PNG",
			target: "JPG",
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsConversionSupported(tt.source, tt.target)
			if got != tt.want {
				t.Errorf("IsConversionSupported(%q, %q) = %v, want %v", tt.source, tt.target, got, tt.want)
			}
		})
	}
}

func TestSupportedTargetsUnknownSource(t *testing.T) {
	if got := SupportedTargets("nope"); got != nil {
		t.Errorf("SupportedTargets(unknown) = %v, want nil", got)
	}
}

func TestSupportedTargetsReturnsCopy(t *testing.T) {
	first := SupportedTargets("png")
	if len(first) == 0 {
		t.Fatal("expected targets for png")
	}
	first[0] = "mutated"

	second := SupportedTargets("png")
	if second[0] == "mutated" {
		t.Error("SupportedTargets exposed internal matrix storage")
	}
}

func TestCategoryOf(t *testing.T) {
	tests := []struct {
		id   string
		want Category
	}{
		{"jpg", CategoryImage},
		{"svg", CategoryImage},
		{"mkv", CategoryVideo},
		{"flac", CategoryAudio},
		{"rtf", CategoryDocument},
		{"xyz", CategoryOther},
		{"", CategoryOther},
	}

	for _, tt := range tests {
		if got := CategoryOf(tt.id); got != tt.want {
			t.Errorf("CategoryOf(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestMIMEForTarget(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"jpg", "image/jpeg"},
		{"svg", "image/svg+xml"},
		{"mp3", "audio/mpeg"},
		{"pdf", "application/pdf"},
		{"rtf", "application/rtf"},
		{"unknown", "application/octet-stream"},
	}

	for _, tt := range tests {
		if got := MIMEForTarget(tt.id); got != tt.want {
			t.Errorf("MIMEForTarget(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestOutputFilename(t *testing.T) {
	tests := []struct {
		name     string
		original string
		target   string
		want     string
	}{
		{
			name:     "simple replacement",
			original: "photo.png",
			target:   "jpg",
			want:     "photo.jpg",
		},
		{
			name:     "only final extension replaced",
			original: "report.v2.txt",
			target:   "pdf",
			want:     "report.v2.pdf",
		},
		{
			name:     "no extension appends",
			original: "notes",
			target:   "txt",
			want:     "notes.txt",
		},
		{
			name:     "canonical extension used for tiff",
			original: "scan.png",
			target:   "tiff",
			want:     "scan.tiff",
		},
		{
			name:     "dotfile keeps leading dot",
			original: ".env",
			target:   "txt",
			want:     ".env.txt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OutputFilename(tt.original, tt.target)
			if got != tt.want {
				t.Errorf("OutputFilename(%q, %q) = %q, want %q", tt.original, tt.target, got, tt.want)
			}
		})
	}
}
