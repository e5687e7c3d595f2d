package internal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/lrstanley/go-ytdlp"
)

// DefaultCaptionLanguage is used when no language is configured or the
// preferred one has no captions
const DefaultCaptionLanguage = "en"

// errNoCaptionFile means yt-dlp ran but wrote no subtitles for the requested language
var errNoCaptionFile = errors.New("no caption file written")

// YouTube fetches captions with yt-dlp
type YouTube struct {
	tempDir string
	ui      UIManager

	installMu sync.Mutex
	installed bool
	install   func(ctx context.Context) error
}

// NewYouTube creates a yt-dlp backed transcript provider writing scratch files under tempDir
func NewYouTube(tempDir string, ui UIManager) *YouTube {
	return &YouTube{
		tempDir: tempDir,
		ui:      ui,
		install: installYtdlp,
	}
}

func installYtdlp(ctx context.Context) error {
	_, err := ytdlp.Install(ctx, nil)
	return err
}

// ensureInstalled downloads yt-dlp on first use.
// Only success is remembered, a failed install is retried by the next fetch.
func (yt *YouTube) ensureInstalled(ctx context.Context) error {
	yt.installMu.Lock()
	defer yt.installMu.Unlock()

	if yt.installed {
		return nil
	}
	if err := yt.install(ctx); err != nil {
		return fmt.Errorf("installing yt-dlp: %w", err)
	}
	yt.installed = true
	return nil
}

func watchURL(id VideoID) string {
	return "https://www.youtube.com/watch?v=" + string(id)
}

// Fetch implements TranscriptProvider
func (yt *YouTube) Fetch(ctx context.Context, id VideoID, opts CaptionOptions) ([]TranscriptEntry, error) {
	if !IsValidYouTubeID(string(id)) {
		return nil, ErrInvalidURL
	}

	if err := yt.ensureInstalled(ctx); err != nil {
		return nil, err
	}

	// Check caption availability first, it is cheaper than a failed download
	hasCaptions, err := yt.hasCaptions(ctx, id)
	if err != nil {
		return nil, err
	}
	if !hasCaptions {
		return nil, ErrTranscriptsDisabled
	}

	lang := opts.Language
	if lang == "" {
		lang = DefaultCaptionLanguage
	}

	entries, err := yt.captions(ctx, id, lang)
	if errors.Is(err, errNoCaptionFile) && opts.Fallback && lang != DefaultCaptionLanguage {
		yt.ui.Verbose("No %s captions for %s, using %s\n", lang, id, DefaultCaptionLanguage)
		entries, err = yt.captions(ctx, id, DefaultCaptionLanguage)
	}
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// hasCaptions reports whether the video has manual or automatic captions
func (yt *YouTube) hasCaptions(ctx context.Context, id VideoID) (bool, error) {
	yt.ui.Verbose("Checking caption availability for %s\n", id)

	dl := ytdlp.New().
		DumpSingleJSON().
		NoPlaylist().
		SkipDownload()

	result, err := dl.Run(ctx, watchURL(id))
	if err != nil {
		return false, classifyYtdlpError(runStderr(result), err)
	}

	var rawData map[string]any
	if err := json.Unmarshal([]byte(result.Stdout), &rawData); err != nil {
		return false, fmt.Errorf("parsing video metadata: %w", err)
	}

	return extractSubtitleInfo(rawData), nil
}

// captions downloads one caption track as SRT and parses it
func (yt *YouTube) captions(ctx context.Context, id VideoID, lang string) ([]TranscriptEntry, error) {
	if err := EnsureDirs(yt.tempDir); err != nil {
		return nil, fmt.Errorf("creating temp directory: %w", err)
	}
	dir, err := os.MkdirTemp(yt.tempDir, string(id)+"-")
	if err != nil {
		return nil, fmt.Errorf("creating scratch directory: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(dir); err != nil {
			yt.ui.Verbose("Warning: failed to remove %s: %v\n", dir, err)
		}
	}()

	yt.ui.Verbose("Downloading %s captions for %s\n", lang, id)

	dl := ytdlp.New().
		WriteSubs().
		WriteAutoSubs().
		SubLangs(lang).
		ConvertSubs("srt").
		SkipDownload().
		Output(filepath.Join(dir, "%(id)s"))

	result, err := dl.Run(ctx, watchURL(id))
	if err != nil {
		return nil, classifyYtdlpError(runStderr(result), err)
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.srt"))
	if err != nil || len(files) == 0 {
		return nil, errNoCaptionFile
	}

	content, err := os.ReadFile(files[0])
	if err != nil {
		return nil, fmt.Errorf("reading SRT file: %w", err)
	}

	return removeDuplicates(parseSRT(string(content))), nil
}

func runStderr(result *ytdlp.Result) string {
	if result == nil {
		return ""
	}
	return result.Stderr
}

// classifyYtdlpError maps yt-dlp failures onto the provider error kinds
func classifyYtdlpError(stderr string, err error) error {
	msg := strings.ToLower(stderr)
	switch {
	case strings.Contains(msg, "video unavailable"),
		strings.Contains(msg, "private video"),
		strings.Contains(msg, "this video has been removed"),
		strings.Contains(msg, "not available in your country"):
		return ErrVideoUnavailable
	case strings.Contains(msg, "subtitles are disabled"),
		strings.Contains(msg, "there are no subtitles"):
		return ErrTranscriptsDisabled
	}

	if line := lastErrorLine(stderr); line != "" {
		return fmt.Errorf("yt-dlp: %s: %w", line, err)
	}
	return fmt.Errorf("yt-dlp: %w", err)
}

func lastErrorLine(stderr string) string {
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.HasPrefix(lines[i], "ERROR:") {
			return strings.TrimSpace(strings.TrimPrefix(lines[i], "ERROR:"))
		}
	}
	return ""
}

// parseSRT extracts timed entries from SRT content, one entry per caption line.
// Every line of a block gets the block's timing. Blocks without a valid timing
// line are skipped.
func parseSRT(content string) []TranscriptEntry {
	var entries []TranscriptEntry

	content = strings.ReplaceAll(content, "\r\n", "\n")
	for block := range strings.SplitSeq(content, "\n\n") {
		blockLines := strings.Split(strings.TrimSpace(block), "\n")
		if len(blockLines) < 3 {
			continue
		}

		start, end, ok := parseSRTTiming(blockLines[1])
		if !ok {
			continue
		}

		for _, line := range blockLines[2:] {
			if line = strings.TrimSpace(line); line != "" {
				entries = append(entries, TranscriptEntry{
					Start:    start,
					Duration: end - start,
					Text:     line,
				})
			}
		}
	}

	return entries
}

// parseSRTTiming parses "00:01:05,000 --> 00:01:07,500"
func parseSRTTiming(line string) (start, end float64, ok bool) {
	from, to, found := strings.Cut(line, "-->")
	if !found {
		return 0, 0, false
	}
	start, err := parseSRTTimestamp(strings.TrimSpace(from))
	if err != nil {
		return 0, 0, false
	}
	end, err = parseSRTTimestamp(strings.TrimSpace(to))
	if err != nil {
		return 0, 0, false
	}
	return start, end, true
}

func parseSRTTimestamp(ts string) (float64, error) {
	ts = strings.Replace(ts, ",", ".", 1)
	parts := strings.Split(ts, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", ts)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, err
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, err
	}
	seconds, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return 0, err
	}
	return float64(hours*3600+minutes*60) + seconds, nil
}

// removeDuplicates drops caption lines repeating the previous line. Rolling
// auto-generated captions carry each line into the next block.
func removeDuplicates(entries []TranscriptEntry) []TranscriptEntry {
	result := make([]TranscriptEntry, 0, len(entries))
	prev := ""

	for _, e := range entries {
		isDuplicate := prev != "" && (strings.Contains(e.Text, prev) || strings.Contains(prev, e.Text))
		if !isDuplicate {
			result = append(result, e)
		}
		prev = e.Text
	}

	return result
}

// extractSubtitleInfo extracts subtitle availability from yt-dlp JSON output
func extractSubtitleInfo(rawData map[string]any) bool {
	if subtitles, ok := rawData["subtitles"].(map[string]any); ok && len(subtitles) > 0 {
		return true
	}

	if autoCaptions, ok := rawData["automatic_captions"].(map[string]any); ok && len(autoCaptions) > 0 {
		return true
	}

	return false
}
