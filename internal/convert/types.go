package convert

// Request is the ephemeral value describing one conversion attempt. It is
// created per upload and discarded as soon as the conversion completes or
// fails; nothing here is ever persisted.
type Request struct {
	Filename string
	MIMEType string
	Size     int64
	Data     []byte

	// TargetFormat is the requested output format id (lowercased by the
	// caller is not assumed; executors normalize).
	TargetFormat string

	// Quality is the optional 1-100 quality parameter. Zero means unset
	// and lets the executor pick a format-specific default.
	Quality int
}

// Result is a successful conversion payload.
type Result struct {
	Bytes       []byte
	ContentType string
	Filename    string
}
