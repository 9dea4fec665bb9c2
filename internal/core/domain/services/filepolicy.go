package services

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

// FileKind names the three upload categories the workflow accepts. Each kind
// has its own extension allow-list and storage prefix.
type FileKind string

const (
	DemoFile      FileKind = "demo"
	FinalFile     FileKind = "final"
	ReferenceFile FileKind = "reference"
)

// ErrFileRejected is returned when an uploaded file fails the policy for its
// kind. Partial multi-file uploads keep the accepted files; the rejected names
// are reported back to the caller.
var ErrFileRejected = errors.New("file type is not allowed")

var allowedExtensions = map[FileKind]map[string]bool{
	DemoFile: {
		"mp3": true, "wav": true, "aif": true, "aiff": true, "flac": true,
	},
	FinalFile: {
		"mp3": true, "wav": true, "aif": true, "aiff": true, "flac": true,
		"zip": true, "rar": true, "pdf": true, "mid": true, "midi": true,
	},
	// Reference material may also be video, e.g. a clip the track should score.
	ReferenceFile: {
		"mp3": true, "wav": true, "aif": true, "aiff": true, "flac": true,
		"zip": true, "rar": true, "pdf": true, "mid": true, "midi": true,
		"mp4": true, "mov": true,
	},
}

var contentTypes = map[string]string{
	"mp3":  "audio/mpeg",
	"wav":  "audio/wav",
	"aif":  "audio/aiff",
	"aiff": "audio/aiff",
	"flac": "audio/flac",
	"mid":  "audio/midi",
	"midi": "audio/midi",
	"zip":  "application/zip",
	"rar":  "application/x-rar-compressed",
	"pdf":  "application/pdf",
	"mp4":  "video/mp4",
	"mov":  "video/quicktime",
}

// FilePolicy validates upload filenames against the per-kind allow-list and
// normalizes them for storage.
type FilePolicy struct{}

// NewFilePolicy creates the file policy.
func NewFilePolicy() *FilePolicy {
	return &FilePolicy{}
}

// Check validates one filename for the given kind.
// Returns ErrFileRejected when the extension is not allowed.
func (p *FilePolicy) Check(kind FileKind, filename string) error {
	ext := extensionOf(filename)
	if ext == "" || !allowedExtensions[kind][ext] {
		return fmt.Errorf("%w: %q is not a valid %s file", ErrFileRejected, filename, kind)
	}
	return nil
}

// ContentType returns the MIME type for a filename, falling back to a generic
// binary type for anything unmapped.
func (p *FilePolicy) ContentType(filename string) string {
	if ct, ok := contentTypes[extensionOf(filename)]; ok {
		return ct
	}
	return "application/octet-stream"
}

// SanitizeName strips any path components and replaces characters unsafe for
// storage keys, keeping the extension intact.
func (p *FilePolicy) SanitizeName(filename string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))

	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	sanitized := strings.Trim(b.String(), "._")
	if sanitized == "" {
		return "file"
	}
	return sanitized
}

func extensionOf(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return strings.TrimPrefix(ext, ".")
}
