// Copyright (c) 2026 algonents
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package war_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/exp/mmap"

	"github.com/algonents/wilhelm-renderer/utility/war"
)

var (
	testString1 = "idunvovkjnreovmegihjbrqlkmfrjnb"
	testString2 = "idunvovkjnreovmsdvwrvnervnreegihjbrqlkmfrjnb"
)

func buildArchive(t *testing.T, files map[string][]byte) []byte {
	t.Helper()
	builder, err := war.NewBuilder(war.Header{
		Author:      "algonents",
		DateCreated: time.Now().Unix(),
		Version:     1,
	})
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}
	defer builder.Close()

	for name, data := range files {
		if err := builder.Add(name, data); err != nil {
			t.Fatalf("Add(%s): %v", name, err)
		}
	}

	buf := bytes.NewBuffer([]byte{})
	written, err := builder.WriteTo(buf)
	if err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if written != int64(buf.Len()) {
		t.Errorf("WriteTo reported %d bytes, buffer holds %d", written, buf.Len())
	}
	return buf.Bytes()
}

func TestCreateAndReadAll(t *testing.T) {
	archive := buildArchive(t, map[string][]byte{
		"test":  []byte(testString1),
		"test2": []byte(testString2),
	})
	t.Logf("archive is %d bytes", len(archive))

	ar, err := war.Open(bytes.NewReader(archive))
	if err != nil {
		t.Fatal(err)
	}

	if header := ar.Header(); header.Author != "algonents" || header.Version != 1 {
		t.Errorf("header round trip lost metadata: %+v", header)
	}
	if len(ar.Header().Index) != 2 {
		t.Errorf("index holds %d entries", len(ar.Header().Index))
	}

	f, err := ar.ReadAll("test")
	if err != nil {
		t.Fatal(err)
	}
	if string(f) != testString1 {
		t.Error("test string does not match up")
	}
	f, err = ar.ReadAll("test2")
	if err != nil {
		t.Fatal(err)
	}
	if string(f) != testString2 {
		t.Error("test string does not match up")
	}
}

func TestCreateAndRead(t *testing.T) {
	archive := buildArchive(t, map[string][]byte{"test": []byte(testString1)})

	ar, err := war.Open(bytes.NewReader(archive))
	if err != nil {
		t.Fatal(err)
	}
	f, err := ar.Open("test")
	if err != nil {
		t.Fatal(err)
	}
	if f.Name() != "test" || f.Size() != int64(len(testString1)) {
		t.Errorf("entry says %s at %d bytes", f.Name(), f.Size())
	}

	result, err := io.ReadAll(f)
	if err != nil {
		t.Fatal(err)
	}
	if string(result) != testString1 {
		t.Error("test string does not match up")
	}
}

func TestCompression(t *testing.T) {
	data := bytes.Repeat([]byte("wilhelm"), 16*1024)
	archive := buildArchive(t, map[string][]byte{"blob": data})

	ar, err := war.Open(bytes.NewReader(archive))
	if err != nil {
		t.Fatal(err)
	}
	entry, err := ar.Stat("blob")
	if err != nil {
		t.Fatal(err)
	}
	if entry.CompressedSize >= entry.Size {
		t.Errorf("repetitive data did not shrink: %d compressed, %d raw", entry.CompressedSize, entry.Size)
	}
	t.Logf("%d bytes stored as %d", entry.Size, entry.CompressedSize)

	result, err := ar.ReadAll("blob")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(result, data) {
		t.Error("decompressed data does not match up")
	}
}

func TestOpenRejectsGarbage(t *testing.T) {
	valid := buildArchive(t, map[string][]byte{"test": []byte(testString1)})

	tampered := make([]byte, len(valid))
	copy(tampered, valid)
	for idx := 4; idx < 12; idx++ {
		tampered[idx] = 0xFF
	}

	cases := []struct {
		name  string
		input []byte
	}{
		{"empty", []byte{}},
		{"short", []byte("WA")},
		{"wrong magic", append([]byte("KAR\x00"), valid[4:]...)},
		{"truncated header", valid[:20]},
		{"absurd header size", tampered},
	}
	for _, tc := range cases {
		if _, err := war.Open(bytes.NewReader(tc.input)); err != war.ErrFileFormat {
			t.Errorf("%s: err = %v, want ErrFileFormat", tc.name, err)
		}
	}
}

func TestNotFound(t *testing.T) {
	archive := buildArchive(t, map[string][]byte{"test": []byte(testString1)})
	ar, err := war.Open(bytes.NewReader(archive))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ar.ReadAll("missing"); err != war.ErrNotFound {
		t.Errorf("ReadAll: err = %v, want ErrNotFound", err)
	}
	if _, err := ar.Open("missing"); err != war.ErrNotFound {
		t.Errorf("Open: err = %v, want ErrNotFound", err)
	}
	if _, err := ar.Stat("missing"); err != war.ErrNotFound {
		t.Errorf("Stat: err = %v, want ErrNotFound", err)
	}
}

func TestEmptyArchive(t *testing.T) {
	archive := buildArchive(t, nil)
	ar, err := war.Open(bytes.NewReader(archive))
	if err != nil {
		t.Fatal(err)
	}
	if len(ar.Header().Index) != 0 {
		t.Errorf("empty archive has %d index entries", len(ar.Header().Index))
	}
	if _, err := ar.ReadAll("anything"); err != war.ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestBuilderClose(t *testing.T) {
	builder, err := war.NewBuilder(war.Header{Author: "algonents"})
	if err != nil {
		t.Fatal(err)
	}
	if err := builder.Close(); err != nil {
		t.Fatal(err)
	}
	if err := builder.Close(); err != nil {
		t.Errorf("second close: %v", err)
	}
	if err := builder.Add("test", []byte(testString1)); err != war.ErrBuilderClosed {
		t.Errorf("Add after close: err = %v", err)
	}
	if _, err := builder.WriteTo(bytes.NewBuffer(nil)); err != war.ErrBuilderClosed {
		t.Errorf("WriteTo after close: err = %v", err)
	}
}

func TestOpenmmap(t *testing.T) {
	archive := buildArchive(t, map[string][]byte{
		"test":  []byte(testString1),
		"test2": []byte(testString2),
	})
	path := filepath.Join(t.TempDir(), "opentest.war")
	if err := os.WriteFile(path, archive, 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := mmap.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	ar, err := war.Open(r)
	if err != nil {
		t.Fatal(err)
	}
	f, err := ar.ReadAll("test2")
	if err != nil {
		t.Fatal(err)
	}
	if string(f) != testString2 {
		t.Error("test string does not match up")
	}
}
