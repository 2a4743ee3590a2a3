package routing

import (
	da "github.com/lintang-b-s/roadrouter/pkg/datastructure"
)

// TagsSource resolves the tags id stored on an arc.
type TagsSource interface {
	Get(id uint32) (map[string]string, bool)
}

// Graph is what the search walks: the main road graph.
type Graph interface {
	da.Graph
}
