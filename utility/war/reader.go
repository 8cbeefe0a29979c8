// Copyright (c) 2026 algonents
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package war

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"

	"github.com/pierrec/lz4/v4"
)

// Open reads the index of the archive in r. It will also check that
// the file actually is a war archive and return ErrFileFormat when it
// is not. The reader stays with the archive, files decompress from it
// on demand.
func Open(r io.ReaderAt) (*Archive, error) {
	var magicBytes [magicLength]byte
	if err := readFull(r, magicBytes[:], 0); err != nil {
		return nil, err
	}
	if magicBytes != magic {
		return nil, ErrFileFormat
	}

	sizeBytes := make([]byte, headerSizeLength)
	if err := readFull(r, sizeBytes, magicLength); err != nil {
		return nil, err
	}
	headerSize := int64(binary.LittleEndian.Uint64(sizeBytes))
	if headerSize <= 0 || headerSize > maxHeaderSize {
		return nil, ErrFileFormat
	}

	headerBytes := make([]byte, headerSize)
	if err := readFull(r, headerBytes, headerOffset); err != nil {
		return nil, err
	}
	var header Header
	if err := gobDecode(&header, headerBytes); err != nil {
		return nil, ErrFileFormat
	}

	index := make(map[string]IndexEntry, len(header.Index))
	for _, entry := range header.Index {
		index[entry.Name] = entry
	}
	return &Archive{
		reader:    r,
		header:    header,
		index:     index,
		dataStart: headerOffset + headerSize,
	}, nil
}

// Archive provides concurrent io for a war file, and can provide an
// io.Reader for each file separately to perform actions on.
type Archive struct {
	reader    io.ReaderAt
	header    Header
	index     map[string]IndexEntry
	dataStart int64
}

// Header returns the archive metadata with the complete index.
func (a *Archive) Header() Header {
	return a.header
}

// Stat returns the index entry stored under a name.
func (a *Archive) Stat(name string) (IndexEntry, error) {
	entry, ok := a.index[name]
	if !ok {
		return IndexEntry{}, ErrNotFound
	}
	return entry, nil
}

// ReadAll returns the entire contents of a file with a given name.
func (a *Archive) ReadAll(name string) ([]byte, error) {
	entry, ok := a.index[name]
	if !ok {
		return nil, ErrNotFound
	}

	compressed := make([]byte, entry.CompressedSize)
	if err := readFull(a.reader, compressed, a.dataStart+entry.Offset); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(lz4.NewReader(bytes.NewReader(compressed)))
	if err != nil {
		return nil, errors.New("lz4 decompress: " + err.Error())
	}
	if int64(len(data)) != entry.Size {
		return nil, ErrFileFormat
	}
	return data, nil
}

// Open returns a Reader for a file in the Archive.
func (a *Archive) Open(name string) (*Reader, error) {
	entry, ok := a.index[name]
	if !ok {
		return nil, ErrNotFound
	}
	section := io.NewSectionReader(a.reader, a.dataStart+entry.Offset, entry.CompressedSize)
	return &Reader{
		reader: lz4.NewReader(section),
		entry:  entry,
	}, nil
}

// Reader streams one decompressed file out of an Archive.
type Reader struct {
	reader io.Reader
	entry  IndexEntry
}

// Read implements interface
func (r *Reader) Read(p []byte) (int, error) {
	return r.reader.Read(p)
}

// Name returns the name the file was archived under.
func (r *Reader) Name() string {
	return r.entry.Name
}

// Size returns the size of the file once decompressed.
func (r *Reader) Size() int64 {
	return r.entry.Size
}
