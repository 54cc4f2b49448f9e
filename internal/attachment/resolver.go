// Package attachment normalizes the heterogeneous raw attachment records
// stored on permit applications into uniform file descriptors.
package attachment

import (
	"encoding/json"
	"log"
	"net/url"
	"path"
	"sort"
	"strings"

	"github.com/Theijiii/plms-sys-sub004/internal/domain"
)

// Resolver turns a permit's raw attachment record into a displayable list.
// It performs no I/O; URLs are built by joining the configured uploads base
// with the resolved filename.
type Resolver struct {
	baseURL string
}

// NewResolver creates a Resolver rooted at the given uploads base location.
func NewResolver(baseURL string) *Resolver {
	return &Resolver{baseURL: strings.TrimRight(baseURL, "/")}
}

// ref is one raw attachment reference: either a bare storage path or an
// object carrying an explicit name field.
type ref interface {
	fileName() (string, bool)
}

// pathRef is a raw string path; the filename is the final path segment.
type pathRef string

func (p pathRef) fileName() (string, bool) {
	s := strings.ReplaceAll(string(p), `\`, "/")
	name := path.Base(s)
	if name == "" || name == "." || name == "/" {
		return "", false
	}
	return name, true
}

// namedRef is an object whose "name" or "filename" field holds the filename.
type namedRef map[string]interface{}

func (n namedRef) fileName() (string, bool) {
	for _, key := range []string{"name", "filename"} {
		if v, ok := n[key].(string); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v), true
		}
	}
	return "", false
}

// Resolve normalizes a raw attachment record into file descriptors, keyed
// and ordered by the record's keys. It never fails: nil, empty, invalid
// JSON, or a non-object payload all yield an empty list, and individual
// malformed entries are logged and skipped rather than aborting the rest.
func (r *Resolver) Resolve(raw json.RawMessage) []domain.FileDescriptor {
	record, ok := decodeRecord(raw)
	if !ok {
		return nil
	}

	keys := make([]string, 0, len(record))
	for k := range record {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	descriptors := make([]domain.FileDescriptor, 0, len(keys))
	for _, key := range keys {
		entry, ok := classify(record[key])
		if !ok {
			log.Printf("attachment: skipping malformed entry %q", key)
			continue
		}
		name, ok := entry.fileName()
		if !ok {
			log.Printf("attachment: skipping entry %q with no resolvable filename", key)
			continue
		}
		descriptors = append(descriptors, domain.FileDescriptor{
			ID:       key,
			Name:     name,
			MimeType: MimeType(name),
			URL:      r.fileURL(name),
		})
	}
	return descriptors
}

// MimeType derives a content type from the filename extension, lowercased.
// Unknown extensions resolve to application/octet-stream, never an error.
func MimeType(name string) string {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
	if mime, ok := domain.MimeByExtension[ext]; ok {
		return mime
	}
	return domain.MimeTypeOctetStream
}

func (r *Resolver) fileURL(name string) string {
	return r.baseURL + "/" + url.PathEscape(name)
}

// decodeRecord unwraps the raw field into a key→value record. The store
// holds either a JSON object or a JSON-encoded string containing one.
func decodeRecord(raw json.RawMessage) (map[string]interface{}, bool) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil, false
	}

	var record map[string]interface{}
	if err := json.Unmarshal(raw, &record); err == nil {
		return record, len(record) > 0
	}

	// Double-encoded: a JSON string whose contents are the object.
	var inner string
	if err := json.Unmarshal(raw, &inner); err != nil {
		log.Printf("attachment: unreadable record: %.60s", trimmed)
		return nil, false
	}
	if err := json.Unmarshal([]byte(inner), &record); err != nil {
		log.Printf("attachment: unreadable embedded record: %v", err)
		return nil, false
	}
	return record, len(record) > 0
}

func classify(v interface{}) (ref, bool) {
	switch val := v.(type) {
	case string:
		if strings.TrimSpace(val) == "" {
			return nil, false
		}
		return pathRef(val), true
	case map[string]interface{}:
		return namedRef(val), true
	default:
		return nil, false
	}
}
