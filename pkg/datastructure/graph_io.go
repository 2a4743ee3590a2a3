package datastructure

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/roadrouter/pkg"
	"github.com/lintang-b-s/roadrouter/pkg/util"
)

// Snapshot layout, bzip2 compressed text:
//
//	<numVertices> <numArcs> <numTags>
//	<profile> <profile> ...
//	<lat> <lon> <deleted>            x numVertices
//	<n> "k" "v" "k" "v" ...          x numTags
//	<from> <to> <weight> <tagsId> <forward>   x numArcs

func (g *DynamicGraph) WriteGraph(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	bz, err := bzip2.NewWriter(f, &bzip2.WriterConfig{})
	if err != nil {
		return err
	}
	defer bz.Close()

	return g.writeTo(bz)
}

func (g *DynamicGraph) writeTo(out io.Writer) error {
	w := bufio.NewWriter(out)

	fmt.Fprintf(w, "%d %d %d\n", len(g.vertices), g.numArcs, g.tags.Count())

	profiles := make([]string, 0, len(g.profiles))
	for _, p := range g.Profiles() {
		profiles = append(profiles, string(p))
	}
	fmt.Fprintf(w, "%s\n", strings.Join(profiles, " "))

	for _, v := range g.vertices {
		latF := strconv.FormatFloat(float64(v.lat), 'f', -1, 32)
		lonF := strconv.FormatFloat(float64(v.lon), 'f', -1, 32)
		fmt.Fprintf(w, "%s %s %t\n", latF, lonF, v.deleted)
	}

	for id := 0; id < g.tags.Count(); id++ {
		tags, _ := g.tags.Get(uint32(id))
		keys := sortedKeys(tags)
		fmt.Fprintf(w, "%d", len(keys))
		for _, k := range keys {
			fmt.Fprintf(w, " %s %s", strconv.Quote(k), strconv.Quote(tags[k]))
		}
		fmt.Fprintf(w, "\n")
	}

	for from, arcs := range g.arcs {
		for _, arc := range arcs {
			weightF := strconv.FormatFloat(arc.Data.Weight, 'f', -1, 64)
			fmt.Fprintf(w, "%d %d %s %d %t\n", from, arc.Neighbour, weightF, arc.Data.TagsID, arc.Data.Forward)
		}
	}

	return w.Flush()
}

func ReadGraph(filename string) (*DynamicGraph, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	bz, err := bzip2.NewReader(f, nil)
	if err != nil {
		return nil, err
	}

	return readFrom(bz)
}

func readFrom(in io.Reader) (*DynamicGraph, error) {
	br := bufio.NewReader(in)

	line, err := util.ReadLine(br)
	if err != nil {
		return nil, err
	}
	tokens := fields(line)
	if len(tokens) != 3 {
		return nil, fmt.Errorf("graph header: expected 3 fields, got %d", len(tokens))
	}
	counts := make([]int, 3)
	for i, tok := range tokens {
		counts[i], err = strconv.Atoi(tok)
		if err != nil {
			return nil, fmt.Errorf("graph header: %w", err)
		}
	}
	numVertices, numArcs, numTags := counts[0], counts[1], counts[2]

	line, err = util.ReadLine(br)
	if err != nil {
		return nil, err
	}
	profiles := make([]pkg.Profile, 0)
	for _, tok := range fields(line) {
		p, ok := pkg.ParseProfile(tok)
		if !ok {
			return nil, fmt.Errorf("unknown profile %q", tok)
		}
		profiles = append(profiles, p)
	}

	g := NewDynamicGraph(profiles...)
	g.vertices = make([]Vertex, 0, numVertices)
	g.arcs = make([][]Arc, 0, numVertices)

	for i := 0; i < numVertices; i++ {
		line, err := util.ReadLine(br)
		if err != nil {
			return nil, err
		}
		v, err := parseVertex(line)
		if err != nil {
			return nil, fmt.Errorf("vertex %d: %w", i, err)
		}
		g.vertices = append(g.vertices, v)
		g.arcs = append(g.arcs, make([]Arc, 0, 2))
	}

	for i := 0; i < numTags; i++ {
		line, err := util.ReadLine(br)
		if err != nil {
			return nil, err
		}
		tags, err := parseTags(line)
		if err != nil {
			return nil, fmt.Errorf("tags %d: %w", i, err)
		}
		if id := g.tags.Add(tags); int(id) != i {
			return nil, fmt.Errorf("tags %d: duplicate tag set", i)
		}
	}

	for i := 0; i < numArcs; i++ {
		line, err := util.ReadLine(br)
		if err != nil {
			return nil, err
		}
		from, arc, err := parseArc(line)
		if err != nil {
			return nil, fmt.Errorf("arc %d: %w", i, err)
		}
		if err := g.AddArc(from, arc.Neighbour, arc.Data, AlwaysReplace); err != nil {
			return nil, err
		}
	}

	return g, nil
}

func fields(s string) []string {
	return strings.Fields(s)
}

func ParseIndex(s string) (Index, error) {
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return Index(i), nil
}

func parseVertex(line string) (Vertex, error) {
	tokens := fields(line)
	if len(tokens) != 3 {
		return Vertex{}, fmt.Errorf("expected 3 fields, got %d", len(tokens))
	}
	lat, err := strconv.ParseFloat(tokens[0], 32)
	if err != nil {
		return Vertex{}, err
	}
	lon, err := strconv.ParseFloat(tokens[1], 32)
	if err != nil {
		return Vertex{}, err
	}
	deleted, err := strconv.ParseBool(tokens[2])
	if err != nil {
		return Vertex{}, err
	}
	v := NewVertex(lat, lon)
	v.deleted = deleted
	return v, nil
}

func parseTags(line string) (map[string]string, error) {
	countStr, rest, _ := strings.Cut(line, " ")
	n, err := strconv.Atoi(countStr)
	if err != nil {
		return nil, err
	}

	tags := make(map[string]string, n)
	for i := 0; i < n; i++ {
		var k, v string
		if k, rest, err = nextQuoted(rest); err != nil {
			return nil, err
		}
		if v, rest, err = nextQuoted(rest); err != nil {
			return nil, err
		}
		tags[k] = v
	}
	return tags, nil
}

func nextQuoted(s string) (string, string, error) {
	s = strings.TrimLeft(s, " ")
	quoted, err := strconv.QuotedPrefix(s)
	if err != nil {
		return "", "", err
	}
	value, err := strconv.Unquote(quoted)
	if err != nil {
		return "", "", err
	}
	return value, s[len(quoted):], nil
}

func parseArc(line string) (Index, Arc, error) {
	tokens := fields(line)
	if len(tokens) != 5 {
		return 0, Arc{}, fmt.Errorf("expected 5 fields, got %d", len(tokens))
	}
	from, err := ParseIndex(tokens[0])
	if err != nil {
		return 0, Arc{}, err
	}
	to, err := ParseIndex(tokens[1])
	if err != nil {
		return 0, Arc{}, err
	}
	weight, err := strconv.ParseFloat(tokens[2], 64)
	if err != nil {
		return 0, Arc{}, err
	}
	tagsID, err := strconv.ParseUint(tokens[3], 10, 32)
	if err != nil {
		return 0, Arc{}, err
	}
	forward, err := strconv.ParseBool(tokens[4])
	if err != nil {
		return 0, Arc{}, err
	}
	return from, Arc{Neighbour: to, Data: NewEdgeData(weight, uint32(tagsID), forward)}, nil
}
