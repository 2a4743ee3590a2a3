package datastructure

import (
	"sort"
	"strings"

	"github.com/samber/lo"
)

// TagsIndex deduplicates way tag sets. Ids are stable for the lifetime of the index.
type TagsIndex struct {
	tags   []map[string]string
	lookup map[string]uint32
}

func NewTagsIndex() *TagsIndex {
	return &TagsIndex{
		tags:   make([]map[string]string, 0),
		lookup: make(map[string]uint32),
	}
}

func sortedKeys(tags map[string]string) []string {
	keys := lo.Keys(tags)
	sort.Strings(keys)
	return keys
}

func tagsKey(tags map[string]string) string {
	keys := sortedKeys(tags)

	var sb strings.Builder
	for _, k := range keys {
		sb.WriteString(k)
		sb.WriteByte(0)
		sb.WriteString(tags[k])
		sb.WriteByte(0)
	}
	return sb.String()
}

// Add returns the id of tags, registering a copy when the set was not seen before.
func (t *TagsIndex) Add(tags map[string]string) uint32 {
	key := tagsKey(tags)
	if id, ok := t.lookup[key]; ok {
		return id
	}
	id := uint32(len(t.tags))
	t.tags = append(t.tags, lo.Assign(tags))
	t.lookup[key] = id
	return id
}

// Get returns the tag set for id. The map is shared and must not be modified.
func (t *TagsIndex) Get(id uint32) (map[string]string, bool) {
	if int(id) >= len(t.tags) {
		return nil, false
	}
	return t.tags[id], true
}

func (t *TagsIndex) Count() int {
	return len(t.tags)
}
