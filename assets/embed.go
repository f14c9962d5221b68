package assets

import (
	"embed"
	"io/fs"
)

//go:embed default_phrases.txt web
var FS embed.FS

// DefaultPhrases returns the raw embedded default phrase list.
func DefaultPhrases() (string, error) {
	b, err := FS.ReadFile("default_phrases.txt")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Web returns the embedded web page rooted at web/.
func Web() fs.FS {
	sub, err := fs.Sub(FS, "web")
	if err != nil {
		// web/ is embedded at build time; Sub only fails on an invalid path.
		panic(err)
	}
	return sub
}
