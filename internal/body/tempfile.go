package body

import (
	"fmt"
	"os"
)

// TempAttachment is a part's decoded content spilled to a detached
// temp file, used when an operation needs a real path rather than an
// in-memory buffer (spec.md §9 supplemented feature 4,
// mutt_get_tmp_attachment). Grounded on the teacher's GridFS
// download-to-temp pattern in imap_core/indexer/indexer.go, adapted
// from "stream an object to a local file" to "stream a decoded part".
type TempAttachment struct {
	Path string
	file *os.File
}

// NewTempAttachment decodes b and writes it to a fresh temp file,
// named after the part's own filename when it has one so external
// tools see a sensible extension.
func NewTempAttachment(b *Body) (*TempAttachment, error) {
	raw, err := DecodeAttachment(b)
	if err != nil {
		return nil, fmt.Errorf("decode for temp attachment: %w", err)
	}
	pattern := "attach-*"
	if b.Filename != "" {
		pattern = "attach-*-" + b.Filename
	}
	f, err := os.CreateTemp("", pattern)
	if err != nil {
		return nil, fmt.Errorf("create temp attachment: %w", err)
	}
	if _, err := f.Write(raw); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, fmt.Errorf("write temp attachment: %w", err)
	}
	if _, err := f.Seek(0, 0); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, fmt.Errorf("rewind temp attachment: %w", err)
	}
	return &TempAttachment{Path: f.Name(), file: f}, nil
}

// Close closes and unlinks the backing temp file.
func (t *TempAttachment) Close() error {
	if t.file != nil {
		t.file.Close()
	}
	return os.Remove(t.Path)
}
