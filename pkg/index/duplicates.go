package index

import (
	"path/filepath"
	"sort"
)

// DuplicateFileOptions configures the two-phase file-duplicate pipeline:
// stage 1 narrows candidates by cheap attributes, stage 2 confirms by
// content checksum.
type DuplicateFileOptions struct {
	// Allowed filters which files are even considered; a file denied by
	// Allowed never enters a bucket and is never hashed.
	Allowed Allowlist
	// MatchName, if true, additionally requires candidates in a size
	// bucket to share their file name with at least one sibling before
	// being admitted to checksum confirmation.
	MatchName bool
	// MatchCreated is the same restriction, applied to created time.
	MatchCreated bool
	// MatchModified is the same restriction, applied to modified time.
	MatchModified bool
}

// fileBucketKey groups files that could possibly be duplicates purely by
// cheap-to-read attributes, before any checksum is computed. Two files
// with different sizes can never be identical, so bucketing by size alone
// is enough to rule out the vast majority of non-duplicate pairs for free.
type fileBucketKey struct {
	Size uint64
}

// DuplicateFiles groups the files under dir (the whole index if dir is
// empty) into sets that share identical content. Stage 1 buckets
// allowlist-admitted files by size, then narrows each bucket of two or
// more to the files that also agree with at least one sibling on
// whichever of name, created time, and modified time opts enables. Stage 2
// computes (and caches on root, marking it dirty) the checksum of every
// file stage 1 admitted that doesn't already have one, reading content via
// reader from sourceRoot, then groups every allowlist-admitted file under
// dir that has a checksum by (checksum, size). A bucket of exactly one file
// never reaches stage 2, so files that provably can't collide are never
// hashed.
func DuplicateFiles(root *RootIndex, dir string, reader FileReader, sourceRoot string, opts DuplicateFileOptions) ([][]File, error) {
	sub, err := root.SubIndex(dir)
	if err != nil {
		return nil, err
	}

	sizeBuckets := make(map[fileBucketKey][]int)
	for i := range sub.Files {
		if !opts.Allowed.IsAllowed(sub.Files[i].Meta.Path) {
			continue
		}
		key := fileBucketKey{Size: sub.Files[i].Size}
		sizeBuckets[key] = append(sizeBuckets[key], i)
	}

	var admitted []int
	for _, positions := range sizeBuckets {
		if len(positions) < 2 {
			continue
		}
		admitted = append(admitted, admittedFilesByAttributes(sub.Files, positions, opts)...)
	}

	var scratch []byte
	for _, i := range admitted {
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

	type contentKey struct {
		Checksum string
		Size     uint64
	}
	byContent := make(map[contentKey][]File)
	for _, f := range sub.Files {
		if f.Checksum == "" || !opts.Allowed.IsAllowed(f.Meta.Path) {
			continue
		}
		key := contentKey{f.Checksum, f.Size}
		byContent[key] = append(byContent[key], f)
	}

	var groups [][]File
	for _, group := range byContent {
		if len(group) < 2 {
			continue
		}
		sort.Slice(group, func(i, j int) bool { return group[i].Meta.Path < group[j].Meta.Path })
		groups = append(groups, group)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i][0].Meta.Path < groups[j][0].Meta.Path })
	return groups, nil
}

// admittedFilesByAttributes narrows positions (indices into files, all
// sharing the same size) to those that agree with at least one other
// candidate in the bucket on every attribute opts enables. With no
// attribute flags set, every position in a same-size bucket is admitted,
// since size alone is the only filter requested.
func admittedFilesByAttributes(files []File, positions []int, opts DuplicateFileOptions) []int {
	if !opts.MatchName && !opts.MatchCreated && !opts.MatchModified {
		return append([]int(nil), positions...)
	}

	nameCounts := make(map[string]int)
	createdCounts := make(map[int64]int)
	modifiedCounts := make(map[int64]int)
	for _, i := range positions {
		f := files[i]
		if opts.MatchName {
			nameCounts[f.Meta.Name()]++
		}
		if opts.MatchCreated {
			createdCounts[f.Meta.CreatedTime.UnixNano()]++
		}
		if opts.MatchModified {
			modifiedCounts[f.Meta.ModifiedTime.UnixNano()]++
		}
	}

	var admitted []int
	for _, i := range positions {
		f := files[i]
		if opts.MatchName && nameCounts[f.Meta.Name()] < 2 {
			continue
		}
		if opts.MatchCreated && createdCounts[f.Meta.CreatedTime.UnixNano()] < 2 {
			continue
		}
		if opts.MatchModified && modifiedCounts[f.Meta.ModifiedTime.UnixNano()] < 2 {
			continue
		}
		admitted = append(admitted, i)
	}
	return admitted
}
