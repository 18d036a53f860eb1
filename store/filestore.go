package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/setidure/blog-api/models"
)

// collectionMarker introduces the collection literal inside the backing data
// file. The marketing site imports the same file, so the marker doubles as
// the export statement it expects. Everything between the marker and the
// closing "];" is a strict JSON array (JSON is a valid JS expression), parsed
// with encoding/json and never evaluated.
const collectionMarker = "export const blogs = "

// newFileTemplate is written when SaveAll targets a file that does not exist
// yet. The %s placeholder receives the serialized collection.
const newFileTemplate = `// Blog data structure
// This file is managed by the blog API; edit through the API, not by hand.

` + collectionMarker + `%s;
`

// FileStore persists the collection as a delimited JSON literal embedded in a
// larger text file, preserving all surrounding text on write.
type FileStore struct {
	path   string
	logger zerolog.Logger
}

func NewFileStore(path string) *FileStore {
	return &FileStore{
		path:   path,
		logger: log.With().Str("component", "fileStore").Str("path", path).Logger(),
	}
}

// LoadAll locates the collection literal and decodes it. Any failure - file
// unreadable, marker missing, literal unparsable - wraps ErrRead.
func (s *FileStore) LoadAll(ctx context.Context) ([]models.BlogPost, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRead, err)
	}

	content, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRead, err)
	}

	start, _, err := locateCollection(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRead, err)
	}

	var posts []models.BlogPost
	if err := json.NewDecoder(bytes.NewReader(content[start:])).Decode(&posts); err != nil {
		return nil, fmt.Errorf("%w: parsing collection literal: %v", ErrRead, err)
	}
	return posts, nil
}

// SaveAll serializes the full collection back between the same delimiters,
// keeping every byte outside the literal untouched. A missing backing file is
// materialized from newFileTemplate.
func (s *FileStore) SaveAll(ctx context.Context, posts []models.BlogPost) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}

	serialized, err := json.MarshalIndent(normalize(posts), "", "  ")
	if err != nil {
		return fmt.Errorf("%w: serializing collection: %v", ErrWrite, err)
	}

	content, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("%w: %v", ErrWrite, err)
		}
		fresh := fmt.Sprintf(newFileTemplate, serialized)
		if err := os.WriteFile(s.path, []byte(fresh), 0o644); err != nil {
			return fmt.Errorf("%w: %v", ErrWrite, err)
		}
		s.logger.Info().Int("posts", len(posts)).Msg("created backing file")
		return nil
	}

	start, end, err := locateCollection(content)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}

	var buf bytes.Buffer
	buf.Grow(len(content) + len(serialized))
	buf.Write(content[:start])
	buf.Write(serialized)
	buf.Write(content[end:])

	if err := os.WriteFile(s.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}

// locateCollection returns the byte range [start, end) of the JSON array that
// follows the collection marker. The end is found by decoding the array, not
// by scanning for "];", so string values containing "];" cannot truncate it.
func locateCollection(content []byte) (int, int, error) {
	idx := bytes.Index(content, []byte(collectionMarker))
	if idx < 0 {
		return 0, 0, fmt.Errorf("collection marker %q not found", collectionMarker)
	}
	start := idx + len(collectionMarker)

	dec := json.NewDecoder(bytes.NewReader(content[start:]))
	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return 0, 0, fmt.Errorf("collection literal is not valid JSON: %v", err)
	}
	if len(raw) == 0 || raw[0] != '[' {
		return 0, 0, fmt.Errorf("collection literal is not an array")
	}
	return start, start + int(dec.InputOffset()), nil
}

// normalize replaces nil tag slices with empty ones so the serialized
// collection always carries "tags": [] instead of null.
func normalize(posts []models.BlogPost) []models.BlogPost {
	out := make([]models.BlogPost, len(posts))
	copy(out, posts)
	for i := range out {
		if out[i].Tags == nil {
			out[i].Tags = []string{}
		}
	}
	return out
}
