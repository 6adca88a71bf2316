// gitstate snapshots a directory tree into a version 2 index file, the way a
// "write the index from scratch" plumbing command would.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/gitstate-io/gitstate/githash"
	"github.com/gitstate-io/gitstate/index"
	"github.com/gitstate-io/gitstate/index/extension"
	"github.com/gitstate-io/gitstate/metrics"
	"github.com/gitstate-io/gitstate/util/disk"
	"github.com/gitstate-io/gitstate/util/ioutil"
	"github.com/gitstate-io/gitstate/util/log"
)

var (
	rootDir      = flag.String("root", ".", "The directory tree to snapshot.")
	outFile      = flag.String("out", "", "Where to write the index file. Defaults to <root>/.git/index.")
	hashName     = flag.String("hash", "sha1", "Hash kind backing object IDs and checksums. One of {'sha1', 'sha256'}.")
	noExtensions = flag.Bool("no_extensions", false, "If true, write the smallest possible index with no extension blocks.")
)

func main() {
	flag.Parse()
	if err := log.Configure(); err != nil {
		fmt.Fprintf(os.Stderr, "Error configuring logging: %s", err)
		os.Exit(1)
	}
	if err := run(context.Background()); err != nil {
		log.Fatalf("%s", err)
	}
}

func run(ctx context.Context) error {
	kind, err := githash.KindFromString(*hashName)
	if err != nil {
		return err
	}
	out := *outFile
	if out == "" {
		out = filepath.Join(*rootDir, ".git", "index")
	}

	if usage, err := disk.GetDirUsage(*rootDir); err == nil && usage.AvailBytes < 1<<20 {
		log.Warningf("Less than 1MB available under %q; the index write may fail.", *rootDir)
	}

	state, err := snapshot(*rootDir, kind)
	if err != nil {
		return err
	}

	policy := extension.All()
	if *noExtensions {
		policy = extension.None()
	}
	opts := index.Options{
		Hash:       kind,
		Version:    index.Version2,
		Extensions: policy,
	}

	w, err := disk.FileWriter(ctx, out)
	if err != nil {
		return err
	}
	defer w.Close()

	// The writer itself leaves the whole-file trailing checksum to us: tee
	// the serialized bytes through the hash and append the digest the reader
	// expects at the very end.
	trailer := kind.New()
	counter := &ioutil.Counter{}
	if err := state.WriteTo(io.MultiWriter(w, trailer, counter), opts); err != nil {
		return err
	}
	if _, err := w.Write(trailer.Sum(nil)); err != nil {
		return err
	}
	if err := w.Commit(); err != nil {
		return err
	}

	metrics.IndexWriteCount.WithLabelValues(kind.String()).Inc()
	metrics.IndexWrittenEntries.Add(float64(len(state.Entries)))
	metrics.IndexWrittenBytes.Add(float64(counter.Count() + int64(kind.Size())))
	log.Infof("Wrote %d entries (%d bytes) to %s", len(state.Entries), counter.Count(), out)
	return nil
}

// snapshot walks root and builds a sorted entry list with content hashes.
func snapshot(root string, kind githash.Kind) (*index.State, error) {
	var entries []index.Entry
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		mode := entryMode(info.Mode())
		id, err := hashObject(kind, path, info)
		if err != nil {
			return err
		}
		entries = append(entries, index.Entry{
			Path: filepath.ToSlash(relPath),
			Mode: mode,
			ID:   id,
			Stat: fileStat(info),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	// The on-disk format requires entries sorted by path, conflicting paths
	// by stage.
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Path != entries[j].Path {
			return entries[i].Path < entries[j].Path
		}
		return entries[i].Stage < entries[j].Stage
	})
	return &index.State{Entries: entries}, nil
}

func entryMode(m fs.FileMode) index.Mode {
	switch {
	case m&fs.ModeSymlink != 0:
		return index.ModeSymlink
	case m&0111 != 0:
		return index.ModeExecutable
	default:
		return index.ModeFile
	}
}

// hashObject computes the blob object ID of a file or symlink: the hash of
// "blob <size>\0" followed by the content (the link target, for symlinks).
func hashObject(kind githash.Kind, path string, info fs.FileInfo) (githash.ObjectID, error) {
	h := kind.New()
	if info.Mode()&fs.ModeSymlink != 0 {
		target, err := os.Readlink(path)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(h, "blob %d\x00", len(target))
		io.WriteString(h, target)
		return h.Sum(nil), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	fmt.Fprintf(h, "blob %d\x00", info.Size())
	if _, err := io.Copy(h, f); err != nil {
		return nil, err
	}
	return h.Sum(nil), nil
}
