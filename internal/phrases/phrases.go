// internal/phrases/phrases.go
//
// Default phrase list management.
//
// Responsibilities:
//   - Load the default phrase list from a URL, a local file, or the
//     embedded fallback in assets/default_phrases.txt.
//   - Cache the list once per process (Init) and hand copies to new sessions.
//
// Source resolution (Load):
//  1. "http://" or "https://" prefix: GET the resource; non-2xx is an error.
//  2. Any other non-empty value: read it as a file path.
//  3. Empty: use the embedded default list.
//
// Lines are split with the same rules as bulk card uploads: trimmed, blank
// lines dropped, order kept.

package phrases

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/robalobadob/bingo/assets"
	"github.com/robalobadob/bingo/internal/bingo"
)

// maxSourceBytes bounds a fetched or read phrase list.
const maxSourceBytes = 1 << 20

var (
	initOnce sync.Once
	defaults []string
	initErr  error
)

// Init loads the default list exactly once.
// On failure the cached list stays empty and the error is returned on every call.
func Init(ctx context.Context, source string) error {
	initOnce.Do(func() {
		defaults, initErr = Load(ctx, source)
	})
	return initErr
}

// Defaults returns a copy of the cached default list.
func Defaults() []string {
	out := make([]string, len(defaults))
	copy(out, defaults)
	return out
}

// Load reads and splits a phrase list from source.
func Load(ctx context.Context, source string) ([]string, error) {
	raw, err := read(ctx, source)
	if err != nil {
		return nil, err
	}
	return bingo.SplitLines(raw), nil
}

func read(ctx context.Context, source string) (string, error) {
	switch {
	case source == "":
		return assets.DefaultPhrases()
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		return fetch(ctx, source)
	default:
		f, err := os.Open(source)
		if err != nil {
			return "", fmt.Errorf("open phrases %s: %w", source, err)
		}
		defer f.Close()
		return readAll(f, source)
	}
}

func fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch phrases %s: %w", url, err)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return "", fmt.Errorf("fetch phrases %s: unexpected status %s", url, res.Status)
	}
	return readAll(res.Body, url)
}

// readAll reads r fully. Lists over maxSourceBytes are rejected rather than
// cut short mid-line.
func readAll(r io.Reader, source string) (string, error) {
	b, err := io.ReadAll(io.LimitReader(r, maxSourceBytes+1))
	if err != nil {
		return "", fmt.Errorf("read phrases %s: %w", source, err)
	}
	if len(b) > maxSourceBytes {
		return "", fmt.Errorf("phrases %s: larger than %d bytes", source, maxSourceBytes)
	}
	return string(b), nil
}
