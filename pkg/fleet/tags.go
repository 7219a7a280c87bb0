package fleet

import (
	"encoding/json"
	"sort"
	"strings"
)

// TagSet is a normalized set of free-text tags (skills, certifications,
// drone capabilities). Tags are keyed by their lower-cased, whitespace-
// trimmed form so that comparisons are case-insensitive everywhere, while
// the first-seen original spelling is kept for display.
type TagSet struct {
	tags map[string]string // normalized form -> original form
}

// NewTagSet builds a TagSet from individual tags. Empty tags are dropped.
func NewTagSet(tags ...string) TagSet {
	s := TagSet{tags: make(map[string]string, len(tags))}
	for _, t := range tags {
		s.add(t)
	}
	return s
}

// ParseTags builds a TagSet from a comma-separated cell value, the format
// used by the roster and mission sheets ("Mapping, Thermal, LiDAR").
func ParseTags(raw string) TagSet {
	return NewTagSet(strings.Split(raw, ",")...)
}

func (s *TagSet) add(tag string) {
	trimmed := strings.TrimSpace(tag)
	if trimmed == "" {
		return
	}
	key := strings.ToLower(trimmed)
	if s.tags == nil {
		s.tags = make(map[string]string, 1)
	}
	if _, exists := s.tags[key]; !exists {
		s.tags[key] = trimmed
	}
}

// Len returns the number of distinct tags in the set.
func (s TagSet) Len() int {
	return len(s.tags)
}

// Contains reports whether the set holds the tag, compared after
// normalization.
func (s TagSet) Contains(tag string) bool {
	_, ok := s.tags[strings.ToLower(strings.TrimSpace(tag))]
	return ok
}

// ContainsAll reports whether the set is a superset of required.
func (s TagSet) ContainsAll(required TagSet) bool {
	for key := range required.tags {
		if _, ok := s.tags[key]; !ok {
			return false
		}
	}
	return true
}

// Missing returns the tags in required that the set does not hold, in their
// original spelling, sorted for stable output.
func (s TagSet) Missing(required TagSet) []string {
	var missing []string
	for key, original := range required.tags {
		if _, ok := s.tags[key]; !ok {
			missing = append(missing, original)
		}
	}
	sort.Strings(missing)
	return missing
}

// Matched returns how many of the required tags the set holds.
func (s TagSet) Matched(required TagSet) int {
	matched := 0
	for key := range required.tags {
		if _, ok := s.tags[key]; ok {
			matched++
		}
	}
	return matched
}

// List returns the tags in their original spelling, sorted.
func (s TagSet) List() []string {
	out := make([]string, 0, len(s.tags))
	for _, original := range s.tags {
		out = append(out, original)
	}
	sort.Strings(out)
	return out
}

// String renders the set as a comma-separated list, the same shape it is
// parsed from.
func (s TagSet) String() string {
	return strings.Join(s.List(), ", ")
}

// MarshalJSON encodes the set as a sorted JSON array of original spellings.
func (s TagSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.List())
}

// UnmarshalJSON decodes either a JSON array of tags or a single
// comma-separated string.
func (s *TagSet) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*s = NewTagSet(list...)
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = ParseTags(raw)
	return nil
}
