package index

import (
	"crypto/sha512"
	"encoding/hex"
	"path/filepath"
	"sort"
	"strings"
)

// DuplicateDirOptions configures the directory-duplicate pipeline, mirroring
// DuplicateFileOptions one level up: Allowed gates which directories are
// even considered, and the match flags additionally require sibling
// directories in a DirStats bucket to agree on their children's names,
// created times, or modified times before those children's content gets
// hashed.
type DuplicateDirOptions struct {
	Allowed       Allowlist
	MatchName     bool
	MatchCreated  bool
	MatchModified bool
}

// DuplicateDirectories groups the directories of root into sets whose
// entire contents are identical, determined by a three-stage process
// mirroring DuplicateFiles. Stage 1 buckets allowlist-admitted directories
// with non-zero total file size by DirStats (file count, file size, dir
// count), then narrows each bucket of two or more to directories that also
// agree with a sibling on whichever of name, created time, and modified
// time opts enables; files under any directory admitted that way are
// queued for hashing. Stage 2 computes (and caches on root, marking it
// dirty) the checksum of each queued file that doesn't already have one,
// reading content via reader from sourceRoot. Stage 3 re-keys every
// allowlist-admitted, non-zero-size directory by (DirStats, sorted
// child-checksum signature) and reports the buckets of two or more; a
// directory with any file still lacking a checksum is left out of stage 3.
func DuplicateDirectories(root *RootIndex, reader FileReader, sourceRoot string, opts DuplicateDirOptions) ([][]string, error) {
	var candidates []string
	statsByPath := make(map[string]DirStats)
	for _, d := range root.dirs {
		if !opts.Allowed.IsAllowed(d.Meta.Path) {
			continue
		}
		stats, err := root.dirStats(d.Meta.Path)
		if err != nil {
			return nil, err
		}
		if stats.FileSize == 0 {
			continue
		}
		candidates = append(candidates, d.Meta.Path)
		statsByPath[d.Meta.Path] = stats
	}

	buckets := make(map[DirStats][]string)
	for _, path := range candidates {
		buckets[statsByPath[path]] = append(buckets[statsByPath[path]], path)
	}

	admitted := make(map[string]bool)
	for _, paths := range buckets {
		if len(paths) < 2 {
			continue
		}
		for _, path := range admittedDirsByAttributes(root, paths, opts) {
			admitted[path] = true
		}
	}

	var scratch []byte
	for path := range admitted {
		sub, err := root.SubIndex(path)
		if err != nil {
			return nil, err
		}
		for i := range sub.Files {
			if sub.Files[i].Checksum != "" {
				continue
			}
			full := filepath.Join(sourceRoot, filepath.FromSlash(sub.Files[i].Meta.Path))
			sum, err := computeChecksum(reader, full, &scratch)
			if err != nil {
				return nil, err
			}
			sub.Files[i].Checksum = sum
			root.dirty = true
		}
	}

	type signatureKey struct {
		stats     DirStats
		signature string
	}
	bySignature := make(map[signatureKey][]string)
	for _, path := range candidates {
		signature, err := dirContentSignature(root, path)
		if err != nil {
			return nil, err
		}
		if signature == "" {
			continue
		}
		key := signatureKey{statsByPath[path], signature}
		bySignature[key] = append(bySignature[key], path)
	}

	var groups [][]string
	for _, group := range bySignature {
		if len(group) < 2 {
			continue
		}
		sorted := append([]string(nil), group...)
		sort.Strings(sorted)
		groups = append(groups, sorted)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i][0] < groups[j][0] })
	return groups, nil
}

// admittedDirsByAttributes narrows paths (all directories sharing the same
// DirStats bucket) to those whose child attribute signature, for each
// attribute opts enables, is shared by at least one other directory in the
// bucket. With no attribute flags set, the whole bucket is admitted.
func admittedDirsByAttributes(root *RootIndex, paths []string, opts DuplicateDirOptions) []string {
	if !opts.MatchName && !opts.MatchCreated && !opts.MatchModified {
		return append([]string(nil), paths...)
	}

	nameSig := make(map[string]string, len(paths))
	createdSig := make(map[string]string, len(paths))
	modifiedSig := make(map[string]string, len(paths))
	nameCounts := make(map[string]int)
	createdCounts := make(map[string]int)
	modifiedCounts := make(map[string]int)

	for _, path := range paths {
		sub, err := root.SubIndex(path)
		if err != nil {
			continue
		}
		if opts.MatchName {
			sig := childAttributeSignature(sub.Files, func(f File) string { return f.Meta.Name() })
			nameSig[path] = sig
			nameCounts[sig]++
		}
		if opts.MatchCreated {
			sig := childAttributeSignature(sub.Files, func(f File) string { return f.Meta.CreatedTime.UTC().String() })
			createdSig[path] = sig
			createdCounts[sig]++
		}
		if opts.MatchModified {
			sig := childAttributeSignature(sub.Files, func(f File) string { return f.Meta.ModifiedTime.UTC().String() })
			modifiedSig[path] = sig
			modifiedCounts[sig]++
		}
	}

	var admitted []string
	for _, path := range paths {
		if opts.MatchName && nameCounts[nameSig[path]] < 2 {
			continue
		}
		if opts.MatchCreated && createdCounts[createdSig[path]] < 2 {
			continue
		}
		if opts.MatchModified && modifiedCounts[modifiedSig[path]] < 2 {
			continue
		}
		admitted = append(admitted, path)
	}
	return admitted
}

// childAttributeSignature summarizes files (every file in a directory's
// subtree) as a sorted, joined string of one attribute per file, so two
// directories can be compared for "same attribute multiset" without
// hashing file content.
func childAttributeSignature(files []File, attr func(File) string) string {
	values := make([]string, len(files))
	for i, f := range files {
		values[i] = attr(f)
	}
	sort.Strings(values)
	return strings.Join(values, "\x1f")
}

// dirContentSignature returns a digest over the sorted list of checksums of
// every file in dir's subtree, independent of file names or paths, so two
// directories holding byte-identical files under different names still
// collide. If any file's checksum is empty (not yet computed), it returns
// an empty signature, since the directory's contents can't yet be proven
// equal to anything.
func dirContentSignature(root *RootIndex, dir string) (string, error) {
	sub, err := root.SubIndex(dir)
	if err != nil {
		return "", err
	}

	checksums := make([]string, len(sub.Files))
	for i, f := range sub.Files {
		if f.Checksum == "" {
			return "", nil
		}
		checksums[i] = f.Checksum
	}
	sort.Strings(checksums)

	hasher := sha512.New()
	for _, checksum := range checksums {
		hasher.Write([]byte(checksum))
		hasher.Write([]byte{'\n'})
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}
