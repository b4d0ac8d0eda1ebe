package gitsemver

import (
	"fmt"
)

// State is the version picture derived from a tag list and a configuration.
// It is never persisted.
type State struct {
	// Records holds every tag in input order, candidates or not.
	Records []TagRecord
	// TagsByVersion maps each version core to the single tag chosen for it.
	TagsByVersion map[SemanticVersion]string
	// Current is the highest version found, or the initial offset.
	Current SemanticVersion
	// CurrentTag is the tag for Current, or prefix+initial+suffix when
	// FromInitial is set.
	CurrentTag string
	// FromInitial is true when no tag carried a version core.
	FromInitial bool
	// Next holds the bump candidates for every level.
	Next map[Level]SemanticVersion
}

// Resolve scans tag names for version cores and selects the current
// version. When several tags carry the same core, the lexicographically
// smallest name wins, so the result does not depend on the order in which
// the repository lists its tags. With no candidate tags the configured
// initial offset becomes the current version; an unparseable offset yields
// ErrInvalidInitialVersion.
func Resolve(tags []string, cfg Configuration) (State, error) {
	st := State{
		Records:       make([]TagRecord, 0, len(tags)),
		TagsByVersion: make(map[SemanticVersion]string),
	}

	for _, name := range tags {
		rec := ParseTag(name)
		st.Records = append(st.Records, rec)
		if !rec.OK {
			continue
		}
		if prev, ok := st.TagsByVersion[rec.Version]; ok && prev <= name {
			continue
		}
		st.TagsByVersion[rec.Version] = name
	}

	if len(st.TagsByVersion) > 0 {
		first := true
		for v := range st.TagsByVersion {
			if first || v.Compare(st.Current) > 0 {
				st.Current = v
				first = false
			}
		}
		st.CurrentTag = st.TagsByVersion[st.Current]
	} else {
		v, err := ParseVersion(cfg.Initial)
		if err != nil {
			return State{}, err
		}
		st.Current = v
		st.CurrentTag = cfg.Prefix + cfg.Initial + cfg.Suffix
		st.FromInitial = true
	}

	st.Next = make(map[Level]SemanticVersion, len(Levels))
	for _, l := range Levels {
		next, err := st.Current.Bump(l)
		if err != nil {
			return State{}, fmt.Errorf("computing %s candidate: %w", l, err)
		}
		st.Next[l] = next
	}
	return st, nil
}
