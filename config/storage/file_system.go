// Package storage reads and writes the configuration document. The file is
// the single source of truth and is fully rewritten on every save; foreign
// top-level keys found in it are carried across rewrites untouched.
package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/eleqtrizit/Claude-Code-Interceptor/config/models"
	"github.com/eleqtrizit/Claude-Code-Interceptor/internal/logging"
)

// ownKeys are the top-level fields cci manages. Anything else in the file
// belongs to somebody else and is preserved verbatim.
var ownKeys = map[string]bool{
	"providers":      true,
	"models":         true,
	"configs":        true,
	"default_config": true,
}

// Extra is a foreign top-level key captured at load time.
type Extra struct {
	Key string
	Raw json.RawMessage
}

// FileStore persists the document at a fixed path.
type FileStore struct {
	path string
	log  zerolog.Logger
}

// NewFileStore creates a store for the given file path.
func NewFileStore(path string) *FileStore {
	return &FileStore{
		path: path,
		log:  logging.New("storage"),
	}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the document. A missing, unreadable or corrupt file is never
// an error: it yields the empty default document and no extras, and the
// original bytes stay on disk until the next save overwrites them.
func (s *FileStore) Load() (*models.Document, []Extra) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Debug().Err(err).Str("path", s.path).Msg("config file unreadable, using defaults")
		}
		return models.NewDocument(), nil
	}

	var doc models.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		s.log.Debug().Err(err).Str("path", s.path).Msg("config file corrupt, using defaults")
		return models.NewDocument(), nil
	}
	doc.Normalize()

	return &doc, captureExtras(data)
}

// Save serializes the document and rewrites the file in one call, then
// re-applies any foreign top-level keys captured at load.
func (s *FileStore) Save(doc *models.Document, extras []Extra) error {
	doc.Normalize()
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	for _, extra := range extras {
		data, err = sjson.SetRawBytes(data, escapePath(extra.Key), extra.Raw)
		if err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0600)
}

// captureExtras collects top-level keys outside the managed set, in
// document order.
func captureExtras(data []byte) []Extra {
	parsed := gjson.ParseBytes(data)
	if !parsed.IsObject() {
		return nil
	}

	var extras []Extra
	parsed.ForEach(func(key, value gjson.Result) bool {
		if !ownKeys[key.Str] {
			extras = append(extras, Extra{Key: key.Str, Raw: json.RawMessage(value.Raw)})
		}
		return true
	})
	return extras
}

// escapePath makes a literal key safe for use as an sjson path.
func escapePath(key string) string {
	replacer := strings.NewReplacer(".", `\.`, "*", `\*`, "?", `\?`, "|", `\|`)
	return replacer.Replace(key)
}
