package engine

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/justjobs360/fileconverter/internal/convert"
	"github.com/justjobs360/fileconverter/internal/formats"
	"github.com/justjobs360/fileconverter/internal/logging"
	"github.com/justjobs360/fileconverter/internal/metrics"
)

// loadShare is the portion of the progress range reserved for engine
// startup; the ffmpeg run maps onto the remaining 10-100%.
const loadShare = 10

// DefaultTimeout bounds a single engine conversion.
const DefaultTimeout = 5 * time.Minute

// ProgressFunc receives percent values 0-100. Values are monotonically
// non-decreasing for the duration of one Convert call.
type ProgressFunc func(percent int)

// Engine runs media conversions through the ffmpeg binary. It is the
// in-process counterpart to client-side conversion: media files that the
// server-side stubs decline are retried here.
//
// The engine loads lazily on first use. A load failure is remembered and
// returned for every subsequent call rather than retried.
type Engine struct {
	loadOnce sync.Once
	loadErr  error

	ffmpegPath  string
	ffprobePath string
	workDir     string

	timeout time.Duration
}

// New creates an Engine. The binary lookup is deferred until the first
// conversion so startup never blocks on ffmpeg being installed.
func New() *Engine {
	return &Engine{timeout: DefaultTimeout}
}

// load resolves the ffmpeg/ffprobe binaries and creates the scratch
// directory. Runs at most once.
func (e *Engine) load() error {
	e.loadOnce.Do(func() {
		ffmpeg, err := exec.LookPath("ffmpeg")
		if err != nil {
			e.loadErr = fmt.Errorf("ffmpeg not found: %w", err)
			return
		}
		ffprobe, err := exec.LookPath("ffprobe")
		if err != nil {
			e.loadErr = fmt.Errorf("ffprobe not found: %w", err)
			return
		}
		dir, err := os.MkdirTemp("", "fileconverter-engine-")
		if err != nil {
			e.loadErr = fmt.Errorf("engine scratch dir: %w", err)
			return
		}
		e.ffmpegPath = ffmpeg
		e.ffprobePath = ffprobe
		e.workDir = dir
		logging.Info("Media engine loaded: %s", ffmpeg)
	})
	return e.loadErr
}

// Available reports whether the engine loaded successfully. Triggers the
// lazy load.
func (e *Engine) Available() bool {
	return e.load() == nil
}

// Close removes the engine scratch directory.
func (e *Engine) Close() {
	if e.workDir != "" {
		if err := os.RemoveAll(e.workDir); err != nil {
			logging.Warn("failed to remove engine scratch dir %s: %v", e.workDir, err)
		}
	}
}

// Convert transcodes req.Data into the requested target format. The input
// is written into a per-job scratch directory under a synthetic name that
// keeps only the original extension; the original filename never reaches
// the filesystem.
func (e *Engine) Convert(ctx context.Context, req convert.Request, progress ProgressFunc) (*convert.Result, *convert.Error) {
	if progress == nil {
		progress = func(int) {}
	}

	if err := e.load(); err != nil {
		return nil, &convert.Error{
			Code:    convert.CodeConversionError,
			Message: "Conversion engine failed to load.",
			Status:  http.StatusInternalServerError,
			Details: err.Error(),
		}
	}
	progress(loadShare)

	target := strings.ToLower(strings.TrimSpace(req.TargetFormat))
	if len(req.Data) == 0 || target == "" {
		return nil, &convert.Error{
			Code:    convert.CodeMissingParameters,
			Message: "File and format are required",
			Status:  http.StatusBadRequest,
		}
	}
	if cat := formats.CategoryOf(target); cat != formats.CategoryVideo && cat != formats.CategoryAudio {
		return nil, &convert.Error{
			Code:    convert.CodeUnsupportedFormat,
			Message: fmt.Sprintf("Unsupported media target format: %s", target),
			Status:  http.StatusBadRequest,
		}
	}

	metrics.EngineJobsInProgress.Inc()
	start := time.Now()
	status := "error"
	defer func() {
		metrics.EngineJobsInProgress.Dec()
		metrics.EngineJobsTotal.WithLabelValues(status).Inc()
		metrics.EngineJobDuration.Observe(time.Since(start).Seconds())
	}()

	jobDir, err := os.MkdirTemp(e.workDir, "job-")
	if err != nil {
		return nil, convert.Classify(err)
	}
	defer func() {
		if err := os.RemoveAll(jobDir); err != nil {
			logging.Warn("failed to remove job dir %s: %v", jobDir, err)
		}
	}()

	inPath := filepath.Join(jobDir, "input"+inputExtension(req.Filename))
	outPath := filepath.Join(jobDir, "output."+target)
	if err := os.WriteFile(inPath, req.Data, 0o600); err != nil {
		return nil, convert.Classify(err)
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	duration := e.probeDuration(ctx, inPath)

	args := append([]string{"-y", "-i", inPath}, targetArgs(target)...)
	args = append(args, "-progress", "pipe:1", "-nostats", outPath)

	cmd := exec.CommandContext(ctx, e.ffmpegPath, args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, convert.Classify(err)
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return nil, convert.Classify(err)
	}

	trackProgress(stdout, duration, progress)

	if err := cmd.Wait(); err != nil {
		if ctx.Err() != nil {
			return nil, convert.Classify(ctx.Err())
		}
		logging.Error("ffmpeg failed for %s -> %s: %s", req.Filename, target, stderr.String())
		return nil, classifyRun(err, stderr.String())
	}

	out, err := os.ReadFile(outPath)
	if err != nil {
		return nil, convert.Classify(err)
	}
	if len(out) == 0 {
		return nil, &convert.Error{
			Code:    convert.CodeConversionError,
			Message: "Conversion produced no output. Please ensure the file is valid and try again.",
			Status:  http.StatusInternalServerError,
		}
	}

	status = "success"
	progress(100)
	return &convert.Result{
		Bytes:       out,
		ContentType: formats.MIMEForTarget(target),
		Filename:    formats.OutputFilename(req.Filename, target),
	}, nil
}

// probeDuration asks ffprobe for the container duration in seconds.
// Returns 0 when the duration is unknown; progress then stays at the
// load share until completion.
func (e *Engine) probeDuration(ctx context.Context, path string) float64 {
	cmd := exec.CommandContext(ctx, e.ffprobePath,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	out, err := cmd.Output()
	if err != nil {
		logging.Debug("ffprobe duration failed for %s: %v", path, err)
		return 0
	}
	dur, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil || dur <= 0 {
		return 0
	}
	return dur
}

// inputExtension keeps only the extension of the uploaded name; defaults
// to .bin so ffmpeg still gets a file it can sniff.
func inputExtension(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" || ext == "." {
		return ".bin"
	}
	return ext
}

// targetArgs maps a target format to its encoder arguments. Formats
// without an entry fall through to the container's default muxer.
func targetArgs(target string) []string {
	switch target {
	case "mp3":
		return []string{"-c:a", "libmp3lame", "-q:a", "2"}
	case "mp4":
		return []string{
			"-c:v", "libx264",
			"-preset", "fast",
			"-crf", "23",
			"-c:a", "aac",
			"-b:a", "128k",
		}
	case "webm":
		return []string{
			"-c:v", "libvpx-vp9",
			"-crf", "30",
			"-b:v", "0",
			"-c:a", "libopus",
		}
	case "ogg":
		return []string{"-c:a", "libvorbis"}
	default:
		return nil
	}
}

// trackProgress reads ffmpeg's -progress pipe:1 key=value stream and maps
// the native fraction into the 10-100 range. Reported values never
// decrease even if ffmpeg's timestamps jitter.
func trackProgress(r io.Reader, duration float64, progress ProgressFunc) {
	scanner := bufio.NewScanner(r)
	last := loadShare
	for scanner.Scan() {
		line := scanner.Text()
		var outSeconds float64
		switch {
		case strings.HasPrefix(line, "out_time_us="):
			us, err := strconv.ParseFloat(strings.TrimPrefix(line, "out_time_us="), 64)
			if err != nil {
				continue
			}
			outSeconds = us / 1e6
		case strings.HasPrefix(line, "out_time_ms="):
			ms, err := strconv.ParseFloat(strings.TrimPrefix(line, "out_time_ms="), 64)
			if err != nil {
				continue
			}
			// ffmpeg reports microseconds under this key.
			outSeconds = ms / 1e6
		default:
			continue
		}

		if duration <= 0 {
			continue
		}
		fraction := outSeconds / duration
		if fraction > 1 {
			fraction = 1
		}
		pct := loadShare + int(fraction*float64(100-loadShare))
		if pct > last {
			last = pct
			progress(pct)
		}
	}
}

// classifyRun maps an ffmpeg exit failure into the taxonomy, folding the
// stderr tail into the heuristics so OOM kills and codec errors are
// distinguishable.
func classifyRun(err error, stderr string) *convert.Error {
	combined := err.Error() + " " + stderr
	cerr := convert.Classify(fmt.Errorf("%s", combined))
	if len(stderr) > 500 {
		stderr = stderr[len(stderr)-500:]
	}
	cerr.Details = strings.TrimSpace(stderr)
	return cerr
}
