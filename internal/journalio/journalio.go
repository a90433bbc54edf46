// Package journalio reads and writes journal exports.
package journalio

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/verte-zerg/moodpeek/internal/model"
)

// maxLineSize bounds a single JSON lines record.
const maxLineSize = 1 << 20

// record accepts both the web export keys and the CLI's own JSON output.
type record struct {
	ID        string          `json:"id"`
	MongoID   string          `json:"_id"`
	Date      json.RawMessage `json:"date"`
	Mood      string          `json:"mood"`
	Tags      []string        `json:"tags"`
	City      string          `json:"city"`
	Note      string          `json:"note"`
	CreatedAt *time.Time      `json:"createdAt"`
}

func (r record) entry() (model.Entry, error) {
	e := model.Entry{
		ID:   r.ID,
		Mood: r.Mood,
		Tags: cleanTags(r.Tags),
		City: r.City,
		Note: r.Note,
	}
	if e.ID == "" {
		e.ID = r.MongoID
	}
	if r.CreatedAt != nil {
		e.CreatedAt = *r.CreatedAt
	}
	date, err := decodeDate(r.Date)
	if err != nil {
		return model.Entry{}, err
	}
	e.Date = date
	return e, nil
}

// decodeDate keeps string dates verbatim and turns Unix milliseconds into
// RFC 3339 text.
func decodeDate(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	var ms int64
	if err := json.Unmarshal(raw, &ms); err != nil {
		return "", fmt.Errorf("unsupported date %s", raw)
	}
	return time.UnixMilli(ms).In(time.Local).Format(time.RFC3339Nano), nil
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

// LoadEntries reads entries from a JSON array or a JSON lines file.
func LoadEntries(path string) ([]model.Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only import file.
			_ = cerr
		}
	}()
	return ReadEntries(file)
}

// ReadEntries decodes entries from r. Input starting with '[' is read as a
// single array, anything else as one object per line.
func ReadEntries(r io.Reader) ([]model.Entry, error) {
	br := bufio.NewReader(r)
	first, err := peekNonSpace(br)
	if err == io.EOF {
		return nil, fmt.Errorf("journal file is empty")
	}
	if err != nil {
		return nil, err
	}
	if first == '[' {
		return readArray(br)
	}
	return readLines(br)
}

func peekNonSpace(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		}
		if err := br.UnreadByte(); err != nil {
			return 0, err
		}
		return b, nil
	}
}

func readArray(r io.Reader) ([]model.Entry, error) {
	var records []record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode entries: %w", err)
	}
	entries := make([]model.Entry, 0, len(records))
	for i, rec := range records {
		e, err := rec.entry()
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func readLines(r io.Reader) ([]model.Entry, error) {
	var entries []model.Entry
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var rec record
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		e, err := rec.entry()
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// WriteJSON encodes entries as an indented JSON array.
func WriteJSON(w io.Writer, entries []model.Entry) error {
	if entries == nil {
		entries = []model.Entry{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}
