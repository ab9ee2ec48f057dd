package index

// ChangeKind classifies a single difference between two indexes.
type ChangeKind int

const (
	// Added means the path exists in the new index but not the old one.
	Added ChangeKind = iota
	// Removed means the path existed in the old index but not the new one.
	Removed
	// Changed means the path exists in both indexes but its content
	// checksum differs.
	Changed
	// Moved means a file's checksum appears at a different path in the
	// new index than it did in the old one.
	Moved
)

// String returns a human-readable name for k.
func (k ChangeKind) String() string {
	switch k {
	case Added:
		return "added"
	case Removed:
		return "removed"
	case Changed:
		return "changed"
	case Moved:
		return "moved"
	default:
		return "unknown"
	}
}

// Change describes a single file-level difference produced by Diff.
type Change struct {
	Kind ChangeKind
	// Path is the file's path in the index it currently belongs to: the
	// new index for Added and Changed, the old index for Removed, and the
	// new path for Moved.
	Path string
	// OldPath is only set for Moved, naming the file's path in the old
	// index.
	OldPath string
}

// MatchFlags controls which file attributes let Diff treat two same-path
// files as unchanged without comparing content checksums: with all three
// false, only equal checksums prove two same-path files are unchanged.
type MatchFlags struct {
	// Name treats any pair of files compared at the same path as
	// unchanged without further comparison (the path match already
	// establishes the name matches).
	Name bool
	// Created treats equal created times as sufficient evidence of no
	// change.
	Created bool
	// Modified treats equal modified times as sufficient evidence of no
	// change.
	Modified bool
}

// Diff compares old and updated and returns every Added, Removed, Changed,
// and Moved file between them, in path order for Added/Removed/Changed and
// new-path order for Moved.
//
// Content comparison happens by checksum. Wherever a same-path pair can't
// be short-circuited by match and their sizes agree, Diff computes
// whichever checksum is still empty on demand, reading from oldRoot via
// oldReader for old's files and from newRoot via newReader for updated's,
// and marks the owning index dirty. Diff never computes a checksum for a
// file that exists on only one side, so a move is only detected between
// files whose checksums were already populated before the call.
func Diff(old, updated *RootIndex, match MatchFlags, oldReader FileReader, oldRoot string, newReader FileReader, newRoot string) ([]Change, error) {
	var changes []Change
	removedByContent := make(map[contentKey][]string)
	var oldScratch, newScratch []byte

	recordRemoved := func(f File) {
		if f.Checksum == "" {
			return
		}
		key := contentKey{f.Checksum, f.Size}
		removedByContent[key] = append(removedByContent[key], f.Meta.Path)
	}

	i, j := 0, 0
	for i < len(old.files) && j < len(updated.files) {
		oldPath := old.files[i].Meta.Path
		newPath := updated.files[j].Meta.Path
		switch {
		case oldPath < newPath:
			recordRemoved(old.files[i])
			changes = append(changes, Change{Kind: Removed, Path: oldPath})
			i++
		case oldPath > newPath:
			changes = append(changes, Change{Kind: Added, Path: newPath})
			j++
		default:
			changed, err := diffSamePathFiles(old, i, updated, j, match, oldReader, oldRoot, &oldScratch, newReader, newRoot, &newScratch)
			if err != nil {
				return nil, err
			}
			if changed {
				changes = append(changes, Change{Kind: Changed, Path: newPath})
			}
			i++
			j++
		}
	}
	for ; i < len(old.files); i++ {
		recordRemoved(old.files[i])
		changes = append(changes, Change{Kind: Removed, Path: old.files[i].Meta.Path})
	}
	for ; j < len(updated.files); j++ {
		changes = append(changes, Change{Kind: Added, Path: updated.files[j].Meta.Path})
	}

	return resolveMoves(changes, removedByContent, updated.files), nil
}

// contentKey identifies a file's content for move detection: checksum alone
// isn't enough, since an empty checksum means "not yet computed" rather than
// "empty file", so pairing it with size keeps two differently-sized,
// not-yet-hashed files from ever being treated as the same content.
type contentKey struct {
	Checksum string
	Size     uint64
}

// diffSamePathFiles decides whether the file at old.files[i] and
// updated.files[j], known to share a path, differ in content. A size
// mismatch is conclusive on its own. Otherwise, whichever match flag is
// set and agrees short-circuits the comparison without touching checksums;
// failing that, both checksums are computed (if not already present) and
// compared.
func diffSamePathFiles(old *RootIndex, i int, updated *RootIndex, j int, match MatchFlags, oldReader FileReader, oldRoot string, oldScratch *[]byte, newReader FileReader, newRoot string, newScratch *[]byte) (bool, error) {
	if old.files[i].Size != updated.files[j].Size {
		return true, nil
	}
	if match.Name {
		return false, nil
	}
	if match.Created && old.files[i].Meta.CreatedTime.Equal(updated.files[j].Meta.CreatedTime) {
		return false, nil
	}
	if match.Modified && old.files[i].Meta.ModifiedTime.Equal(updated.files[j].Meta.ModifiedTime) {
		return false, nil
	}

	oldSum, err := old.ensureFileChecksum(i, oldReader, oldRoot, oldScratch)
	if err != nil {
		return false, err
	}
	newSum, err := updated.ensureFileChecksum(j, newReader, newRoot, newScratch)
	if err != nil {
		return false, err
	}
	return oldSum != newSum, nil
}

// resolveMoves rewrites Added/Removed pairs that share (checksum, size) into
// a single Moved change, consuming each candidate old path at most once so
// that duplicate content doesn't fan one removal out into many moves. An
// added file with an empty checksum can never be re-identified as a move,
// since an empty checksum only means "not yet computed", not "known to
// match"; it is always reported as a plain Added.
func resolveMoves(changes []Change, removedByContent map[contentKey][]string, newFiles []File) []Change {
	newByPath := make(map[string]File, len(newFiles))
	for _, f := range newFiles {
		newByPath[f.Meta.Path] = f
	}

	consumed := make(map[string]bool)
	result := make([]Change, 0, len(changes))
	for _, c := range changes {
		if c.Kind != Added {
			result = append(result, c)
			continue
		}
		file := newByPath[c.Path]
		if file.Checksum == "" {
			result = append(result, c)
			continue
		}
		candidates := removedByContent[contentKey{file.Checksum, file.Size}]
		var oldPath string
		found := false
		for _, candidate := range candidates {
			if !consumed[candidate] {
				oldPath = candidate
				consumed[candidate] = true
				found = true
				break
			}
		}
		if found {
			result = append(result, Change{Kind: Moved, Path: c.Path, OldPath: oldPath})
		} else {
			result = append(result, c)
		}
	}

	// A Removed change can precede the Added change that later consumes its
	// path, so drop consumed removals only once every move is known.
	kept := result[:0]
	for _, c := range result {
		if c.Kind == Removed && consumed[c.Path] {
			continue
		}
		kept = append(kept, c)
	}
	return kept
}
