// internal/words/words.go
//
// Dictionary management for the game engine.
//
// Responsibilities:
//   - Load the word list from DICT_FILE or fall back to the embedded default.
//   - Answer membership lookups for the word detector.
//   - Never fail a session: a list that cannot be loaded becomes an empty
//     dictionary, so no word ever validates.
//
// Accepted formats:
//   - JSON object mapping lowercase words to any marker: {"ship": 1, ...}
//   - Plain text, one word per line ('#' starts a comment line).
//
// Environment variables:
//   DICT_FILE=/path/to/dict.json

package words

import (
	"bufio"
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

// MinLength is the shortest run the detector will look up.
const MinLength = 4

//go:embed default_dict.json
var embeddedDict []byte

// Dictionary is an immutable lowercase word set.
// The zero value and a nil *Dictionary are empty.
type Dictionary struct {
	set map[string]struct{}
}

// New builds a Dictionary from a list of words.
func New(list []string) *Dictionary {
	d := &Dictionary{set: make(map[string]struct{}, len(list))}
	for _, w := range list {
		if w = normalize(w); w != "" {
			d.set[w] = struct{}{}
		}
	}
	return d
}

// Empty returns a dictionary with no words.
func Empty() *Dictionary { return &Dictionary{} }

// Contains reports whether w (any case) is a dictionary word.
func (d *Dictionary) Contains(w string) bool {
	if d == nil || d.set == nil {
		return false
	}
	_, ok := d.set[strings.ToLower(w)]
	return ok
}

// Len returns the number of words.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.set)
}

// Load parses a dictionary in either accepted format.
func Load(r io.Reader) (*Dictionary, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var m map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &m); err != nil {
			return nil, fmt.Errorf("words: decode json: %w", err)
		}
		list := make([]string, 0, len(m))
		for w := range m {
			list = append(list, w)
		}
		return New(list), nil
	}
	var list []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		list = append(list, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return New(list), nil
}

// LoadFile reads a dictionary from path.
func LoadFile(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

var (
	initOnce sync.Once
	loaded   *Dictionary
)

// Init loads the process-wide dictionary exactly once and returns it. An
// empty path selects the embedded list. Load failures are logged and yield
// an empty dictionary.
func Init(path string) *Dictionary {
	initOnce.Do(func() {
		loaded = loadConfigured(path)
	})
	return loaded
}

func loadConfigured(path string) *Dictionary {
	var (
		d   *Dictionary
		err error
		src = "embedded"
	)
	if path != "" {
		src = path
		d, err = LoadFile(path)
	} else {
		d, err = Load(bytes.NewReader(embeddedDict))
	}
	if err != nil {
		log.Warn().Err(err).Str("source", src).Msg("dictionary load failed, no words will validate")
		return Empty()
	}
	log.Info().Str("source", src).Int("words", d.Len()).Msg("dictionary loaded")
	return d
}

// normalize lowercases and trims w, rejecting anything that is not a–z.
func normalize(w string) string {
	w = strings.TrimSpace(strings.ToLower(w))
	if !isAlpha(w) {
		return ""
	}
	return w
}

// isAlpha reports whether s is non-empty and all lowercase ASCII letters.
func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
