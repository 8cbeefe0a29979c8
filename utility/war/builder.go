// Copyright (c) 2026 algonents
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package war

import (
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// NewBuilder creates a new Builder. Do not fill the Index in the
// header, WriteTo computes it.
func NewBuilder(header Header) (*Builder, error) {
	temp, err := os.MkdirTemp("", "warBuilder")
	if err != nil {
		return nil, err
	}
	builder := &Builder{
		tempDir: temp,
		header:  header,
	}
	// A backstop for builders that never get closed.
	runtime.SetFinalizer(builder, func(b *Builder) {
		os.RemoveAll(b.tempDir)
	})
	return builder, nil
}

type tempFile struct {

	// Name is the actual name of the file
	Name string

	// TempName is the scratch name given by the Builder
	TempName string

	// Size before compression
	Size int64

	Compressed int64
}

// Builder is the high level builder for the archive format. Archives
// are versioned and cannot be appended to, this Builder is the way to
// create one. Every Add compresses into a scratch file, WriteTo
// bundles the scratch files together behind the header. Add is safe
// to use concurrently in different goroutines.
type Builder struct {
	io.WriterTo

	tempDir string
	header  Header

	mutex   sync.Mutex
	counter int64
	files   []tempFile
	closed  bool
}

// Add compresses data into the builder under the given name. Will
// block until lz4 finishes compression.
func (b *Builder) Add(name string, data []byte) error {
	b.mutex.Lock()
	if b.closed {
		b.mutex.Unlock()
		return ErrBuilderClosed
	}
	b.counter++
	tempName := strconv.FormatInt(b.counter, 10)
	b.mutex.Unlock()

	f, err := os.Create(filepath.Join(b.tempDir, tempName))
	if err != nil {
		return err
	}
	defer f.Close()

	writer := lz4.NewWriter(f)
	if _, err := writer.Write(data); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}
	info, err := f.Stat()
	if err != nil {
		return err
	}

	b.mutex.Lock()
	defer b.mutex.Unlock()
	if b.closed {
		return ErrBuilderClosed
	}
	b.files = append(b.files, tempFile{
		Name:       name,
		TempName:   tempName,
		Size:       int64(len(data)),
		Compressed: info.Size(),
	})
	return nil
}

// WriteTo bundles and writes all of the files added to the Builder
// into an archive that is ready to use. The builder keeps its
// contents until Close, so WriteTo can run more than once.
func (b *Builder) WriteTo(w io.Writer) (int64, error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	if b.closed {
		return 0, ErrBuilderClosed
	}

	header := b.header
	var offset int64
	for _, v := range b.files {
		header.Index = append(header.Index, IndexEntry{
			Name:           v.Name,
			Offset:         offset,
			Size:           v.Size,
			CompressedSize: v.Compressed,
		})
		offset += v.Compressed
	}

	rawHeader, err := gobEncode(header)
	if err != nil {
		return 0, err
	}
	sizeBytes := make([]byte, headerSizeLength)
	binary.LittleEndian.PutUint64(sizeBytes, uint64(len(rawHeader)))

	counting := &countingWriter{writer: w}
	if _, err := counting.Write(magic[:]); err != nil {
		return counting.written, err
	}
	if _, err := counting.Write(sizeBytes); err != nil {
		return counting.written, err
	}
	if _, err := counting.Write(rawHeader); err != nil {
		return counting.written, err
	}

	for _, v := range b.files {
		f, err := os.Open(filepath.Join(b.tempDir, v.TempName))
		if err != nil {
			return counting.written, err
		}
		if _, err := io.Copy(counting, f); err != nil {
			f.Close()
			return counting.written, err
		}
		f.Close()
	}
	return counting.written, nil
}

// Close removes the builder's scratch space. The builder cannot be
// used afterwards.
func (b *Builder) Close() error {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	runtime.SetFinalizer(b, nil)
	return os.RemoveAll(b.tempDir)
}

type countingWriter struct {
	writer  io.Writer
	written int64
}

// Write implements interface
func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.writer.Write(p)
	c.written += int64(n)
	return n, err
}
