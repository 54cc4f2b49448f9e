// Package ledger encodes and decodes the append-only reviewer remark log
// that the data store persists as a single opaque text blob.
//
// Wire format: a sequence of blocks, each a timestamp marker line
// ("--- <timestamp> ---") followed by the remark text, blocks separated by a
// blank line. Encoding always appends chronologically, oldest first, at the
// tail. Existing data was produced by both head-append and tail-append
// conventions, so decoding normalizes order before any re-encode; callers
// needing newest-first display reverse the decoded list, never the raw blob.
package ledger

import (
	"regexp"
	"strings"
	"time"

	"github.com/Theijiii/plms-sys-sub004/internal/domain"
)

// unknownMarker is written for entries whose original block carried no
// parseable timestamp.
const unknownMarker = "unknown"

var markerRe = regexp.MustCompile(`^---\s*(.*?)\s*---\s*$`)

// escapedMarkerRe matches remark lines that would otherwise parse as an
// entry boundary. Encode prefixes them with a backslash, Decode strips it,
// so remark text can never forge an extra entry.
var escapedMarkerRe = regexp.MustCompile(`^\\+---\s*.*?\s*---\s*$`)

// timeLayouts are tried in order when parsing a marker. Legacy blobs carry
// display-formatted timestamps; everything this codec writes is RFC 3339.
var timeLayouts = []string{
	time.RFC3339,
	"Jan 2, 2006 3:04 PM",
	"Jan 2, 2006",
	"January 2, 2006 3:04 PM",
	"January 2, 2006",
	"2006-01-02 15:04:05",
	"01/02/2006 3:04 PM",
}

// Decode parses a raw comment blob into ledger entries, oldest first.
// It never fails: malformed or empty input yields an empty list, text with
// no recognizable marker becomes a single entry with a zero timestamp, and
// blobs written newest-first are reversed into chronological order.
func Decode(raw string) []domain.LedgerEntry {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var entries []domain.LedgerEntry
	var at time.Time
	var text []string
	started := false

	flush := func() {
		body := strings.TrimSpace(strings.Join(text, "\n"))
		if body != "" {
			entries = append(entries, domain.LedgerEntry{At: at, Text: body})
		}
		text = text[:0]
	}

	for _, line := range strings.Split(raw, "\n") {
		if m := markerRe.FindStringSubmatch(line); m != nil {
			if started {
				flush()
			}
			started = true
			at = parseMarker(m[1])
			continue
		}
		if escapedMarkerRe.MatchString(line) {
			line = line[1:]
		}
		text = append(text, line)
	}
	flush()

	return normalizeOrder(entries)
}

// Append returns the raw blob with e added in chronological position
// (tail append). Previously stored entries are preserved even when raw was
// written by the legacy newest-first convention: the whole blob is decoded,
// normalized, and re-encoded. An entry that is empty after trimming is never
// persisted; raw comes back unchanged.
func Append(raw string, e domain.LedgerEntry) string {
	e.Text = strings.TrimSpace(e.Text)
	if e.Text == "" {
		return raw
	}
	entries := append(Decode(raw), e)
	var b strings.Builder
	for i, entry := range entries {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("--- ")
		b.WriteString(formatMarker(entry.At))
		b.WriteString(" ---\n")
		b.WriteString(escapeText(entry.Text))
		b.WriteString("\n")
	}
	return b.String()
}

// DisplayTime formats a ledger timestamp for presentation. This is the only
// place a display-formatted timestamp is produced; nothing parses it back.
func DisplayTime(t time.Time) string {
	if t.IsZero() {
		return unknownMarker
	}
	return t.Local().Format("Jan 2, 2006 3:04 PM")
}

// escapeText backslash-prefixes remark lines shaped like a marker (or like
// an already-escaped marker, keeping the mapping reversible).
func escapeText(text string) string {
	if !strings.Contains(text, "---") {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if markerRe.MatchString(line) || escapedMarkerRe.MatchString(line) {
			lines[i] = `\` + line
		}
	}
	return strings.Join(lines, "\n")
}

func parseMarker(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, unknownMarker) {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

func formatMarker(t time.Time) string {
	if t.IsZero() {
		return unknownMarker
	}
	return t.UTC().Format(time.RFC3339)
}

// normalizeOrder returns entries oldest-first. Order is only flipped when the
// timestamped entries are strictly newest-first; ambiguous or untimestamped
// sequences keep document order.
func normalizeOrder(entries []domain.LedgerEntry) []domain.LedgerEntry {
	var known []time.Time
	for _, e := range entries {
		if !e.At.IsZero() {
			known = append(known, e.At)
		}
	}
	if len(known) < 2 {
		return entries
	}
	descending := true
	for i := 1; i < len(known); i++ {
		if known[i].After(known[i-1]) {
			descending = false
			break
		}
	}
	allEqual := true
	for i := 1; i < len(known); i++ {
		if !known[i].Equal(known[0]) {
			allEqual = false
			break
		}
	}
	if descending && !allEqual {
		for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
			entries[i], entries[j] = entries[j], entries[i]
		}
	}
	return entries
}
