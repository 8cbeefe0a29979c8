// Copyright (c) 2026 algonents
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"time"

	"golang.org/x/exp/mmap"

	"github.com/algonents/wilhelm-renderer/utility/war"
)

func init() {
	if u, err := user.Current(); err == nil {
		currentUserName = u.Username
	} else {
		currentUserName = "unknown"
	}
}

var (
	currentUserName string
	author          = flag.String("author", "", "Set the author of the archive when compressing (defaults to the current user)")
	version         = flag.Int64("version", 1, "Archive version number to create it with")
	extract         = flag.String("e", "", "Extract the file given")
	compress        = flag.String("c", "", "Compress the given file/folder")
	list            = flag.Bool("l", false, "List the contents of the archive")
	archiveFile     = flag.String("f", "out.war", "Archive file to create or read")
	silent          = flag.Bool("s", false, "Silent")
)

func main() {
	flag.Parse()

	var operations int
	for _, requested := range []bool{*compress != "", *extract != "", *list} {
		if requested {
			operations++
		}
	}
	if operations > 1 {
		panic(errors.New("only one operation at a time"))
	}

	switch {
	case *compress != "":
		if err := compressFiles(); err != nil {
			panic(err)
		}
	case *extract != "":
		if err := extractFile(); err != nil {
			panic(err)
		}
	case *list:
		if err := listFiles(); err != nil {
			panic(err)
		}
	default:
		flag.PrintDefaults()
	}
}

func compressFiles() error {
	if _, err := os.Stat(*archiveFile); err == nil {
		return errors.New("destination file exists, will not overwrite")
	}

	root := filepath.Clean(*compress)
	info, err := os.Stat(root)
	if err != nil {
		return err
	}

	// Archive names stay relative to the compressed folder.
	type inputFile struct {
		name string
		path string
	}

	var files []inputFile
	if info.IsDir() {
		walkErr := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return nil
			}
			name, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			files = append(files, inputFile{name: filepath.ToSlash(name), path: path})
			return nil
		})
		if walkErr != nil {
			return walkErr
		}
	} else {
		files = append(files, inputFile{name: filepath.Base(root), path: root})
	}

	archiveAuthor := *author
	if archiveAuthor == "" {
		archiveAuthor = currentUserName
	}

	builder, err := war.NewBuilder(war.Header{
		Author:      archiveAuthor,
		DateCreated: time.Now().Unix(),
		Version:     *version,
	})
	if err != nil {
		return err
	}
	defer builder.Close()

	for _, file := range files {
		data, err := os.ReadFile(file.path)
		if err != nil {
			return err
		}
		if err := builder.Add(file.name, data); err != nil {
			return err
		}
		if !*silent {
			fmt.Printf("added %s (%d bytes)\n", file.name, len(data))
		}
	}

	dst, err := os.Create(*archiveFile)
	if err != nil {
		return err
	}
	defer dst.Close()

	written, err := builder.WriteTo(dst)
	if err != nil {
		return err
	}
	if !*silent {
		fmt.Printf("wrote %s (%d bytes, %d files)\n", *archiveFile, written, len(files))
	}
	return nil
}

func extractFile() error {
	reader, err := mmap.Open(*archiveFile)
	if err != nil {
		return err
	}
	defer reader.Close()

	archive, err := war.Open(reader)
	if err != nil {
		return err
	}

	data, err := archive.ReadAll(*extract)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Base(*extract), data, 0o644)
}

func listFiles() error {
	reader, err := mmap.Open(*archiveFile)
	if err != nil {
		return err
	}
	defer reader.Close()

	archive, err := war.Open(reader)
	if err != nil {
		return err
	}

	header := archive.Header()
	fmt.Printf("%s: version %d, author %s, created %s\n",
		*archiveFile, header.Version, header.Author,
		time.Unix(header.DateCreated, 0).Format(time.RFC1123))
	for _, entry := range header.Index {
		fmt.Printf("%10d %10d  %s\n", entry.Size, entry.CompressedSize, entry.Name)
	}
	return nil
}
