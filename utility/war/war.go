// Copyright (c) 2026 algonents
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package war is an api for an lz4 backed asset archive format. The
// format is built to be memory mapped: the index sits in a header at
// the front, so (unlike tar) every file's place is known before any
// data is read. The archive itself is not compressed, every file is
// compressed individually and decompresses straight from its place in
// the archive. That trades some space for getting assets from disk to
// a usable state as fast as possible. Archives can be read from
// concurrently.
package war

import (
	"bytes"
	"encoding/gob"
	"errors"
	"io"
)

// package errors
var (
	ErrFileFormat    = errors.New("corrupted or not a war archive")
	ErrNotFound      = errors.New("file not found in archive")
	ErrBuilderClosed = errors.New("archive builder already closed")
)

const (
	magicLength      = 4
	headerSizeLength = 8
	headerOffset     = magicLength + headerSizeLength

	// Caps the allocation a corrupted header length could demand.
	maxHeaderSize = 64 << 20
)

var magic = [magicLength]byte{'W', 'A', 'R', '\x00'}

// IndexEntry locates one file in the archive. The offset is relative
// to the start of the data section.
type IndexEntry struct {
	Name           string
	Offset         int64
	Size           int64
	CompressedSize int64
}

// Header is the archive metadata, gob encoded behind the magic.
type Header struct {
	Author      string
	DateCreated int64
	Version     int64
	Index       []IndexEntry
}

func gobEncode(data interface{}) ([]byte, error) {
	var encoded bytes.Buffer
	enc := gob.NewEncoder(&encoded)
	if err := enc.Encode(data); err != nil {
		return nil, err
	}
	return encoded.Bytes(), nil
}

func gobDecode(obj interface{}, bts []byte) error {
	dec := gob.NewDecoder(bytes.NewBuffer(bts))
	if err := dec.Decode(obj); err != nil {
		return err
	}
	return nil
}

// readFull reads exactly len(p) bytes from off, mapping short reads
// to ErrFileFormat.
func readFull(r io.ReaderAt, p []byte, off int64) error {
	n, err := r.ReadAt(p, off)
	if n == len(p) {
		return nil
	}
	if err == nil || err == io.EOF {
		return ErrFileFormat
	}
	return err
}
