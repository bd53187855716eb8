// Copyright (c) 2025, Hostfacts Authors.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package probe

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/hostfacts/hostfacts/pkg/defaults"
)

// FileOption configures a file-backed probe.
type FileOption func(*File)

// WithMaxSize sets the maximum size (in bytes) of the file to be read.
// Default is 1MB.
func WithMaxSize(size int) FileOption {
	return func(f *File) {
		f.maxSize = size
	}
}

// File reads one text file in full. Availability is a stat check, so an
// absent file is reported without an open attempt. Content larger than the
// size limit or containing invalid UTF-8 is an I/O failure, not a source of
// garbage downstream.
type File struct {
	path    string
	maxSize int
}

// NewFile creates a file probe for the given path.
func NewFile(path string, opts ...FileOption) File {
	f := File{
		path:    path,
		maxSize: defaults.FileProbeMaxSize,
	}
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

// Path returns the probed file path.
func (f File) Path() string {
	return f.path
}

// Available reports whether the file exists.
func (f File) Available() bool {
	_, err := os.Stat(f.path)
	return err == nil
}

// Fetch reads the file content. The returned string keeps the raw content;
// trimming and interpretation belong to the field parser.
func (f File) Fetch(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	b, err := os.ReadFile(f.path)
	if err != nil {
		return "", fmt.Errorf("failed to read file %q: %w", f.path, err)
	}

	if len(b) > f.maxSize {
		return "", fmt.Errorf("file %q exceeds maximum size of %d bytes", f.path, f.maxSize)
	}

	if !utf8.Valid(b) {
		return "", fmt.Errorf("file %q contains invalid UTF-8 content", f.path)
	}

	return string(b), nil
}

// KVOption configures a key-value file probe.
type KVOption func(*KeyValueFile)

// WithKVDelimiter sets the key-value delimiter. Default is "=".
func WithKVDelimiter(delim string) KVOption {
	return func(p *KeyValueFile) {
		p.kvDelimiter = delim
	}
}

// WithValueTrimChars sets characters to trim from values (e.g. surrounding
// quotes). Default is no trimming.
func WithValueTrimChars(chars string) KVOption {
	return func(p *KeyValueFile) {
		p.vTrimChars = chars
	}
}

// WithKeepComments disables comment-line skipping. By default lines starting
// with '#' are skipped.
func WithKeepComments() KVOption {
	return func(p *KeyValueFile) {
		p.skipComments = false
	}
}

// WithFileOptions forwards options to the underlying file probe.
func WithFileOptions(opts ...FileOption) KVOption {
	return func(p *KeyValueFile) {
		p.fileOpts = opts
	}
}

// KeyValueFile reads a file of KEY<delim>VALUE lines into a map, the format
// of /etc/os-release and friends. Malformed lines (no delimiter) are skipped
// with a debug log rather than failing the whole read; a file that yields no
// entries at all is left to the field parser to reject.
type KeyValueFile struct {
	file         File
	fileOpts     []FileOption
	kvDelimiter  string
	vTrimChars   string
	skipComments bool
}

// NewKeyValueFile creates a key-value file probe for the given path.
func NewKeyValueFile(path string, opts ...KVOption) KeyValueFile {
	p := KeyValueFile{
		kvDelimiter:  "=",
		skipComments: true,
	}
	for _, opt := range opts {
		opt(&p)
	}
	p.file = NewFile(path, p.fileOpts...)
	return p
}

// Available reports whether the file exists.
func (p KeyValueFile) Available() bool {
	return p.file.Available()
}

// Fetch reads and splits the file into a key-value map.
func (p KeyValueFile) Fetch(ctx context.Context) (map[string]string, error) {
	content, err := p.file.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	result := make(map[string]string, 16)
	for line := range strings.Lines(content) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if p.skipComments && strings.HasPrefix(line, "#") {
			continue
		}

		kv := strings.SplitN(line, p.kvDelimiter, 2)
		if len(kv) != 2 {
			slog.Debug("skipping line without delimiter",
				"path", p.file.path,
				"line", line,
			)
			continue
		}

		key := strings.TrimSpace(kv[0])
		value := strings.TrimSpace(kv[1])
		if p.vTrimChars != "" {
			value = strings.Trim(value, p.vTrimChars)
		}

		result[key] = value
	}

	return result, nil
}
