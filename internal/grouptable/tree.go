// Package grouptable turns a flat list of rows into an N-level group tree and
// tracks per-group expansion and tri-state selection over it.
//
// The package never owns the selection: callers pass the current selection
// in and receive one change callback per affected row.
package grouptable

import (
	"fmt"
	"net/url"
	"strings"
)

// Uncategorized is the bucket label for rows whose group field is missing or blank.
const Uncategorized = "uncategorized"

// KeyMode selects how expansion keys are derived for group nodes.
type KeyMode int

const (
	// KeyByPath keys a node by its full path from the root, so siblings with
	// the same label under different parents expand independently.
	KeyByPath KeyMode = iota
	// KeyByLabelLevel keys a node by "<label>-<level>". Same-label nodes on the
	// same level share expansion state.
	KeyByLabelLevel
)

func ParseKeyMode(raw string) (KeyMode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "path":
		return KeyByPath, nil
	case "label", "label-level":
		return KeyByLabelLevel, nil
	default:
		return KeyByPath, fmt.Errorf("unknown key mode %q", raw)
	}
}

type Row struct {
	ID     int64
	Fields map[string]string
}

func (r Row) Value(field string) string {
	return r.Fields[field]
}

type Node struct {
	Label string
	Level int
	Key   string
	Path  []string
	// Count is the number of rows that fell into this bucket.
	Count    int
	Children []*Node
	// Rows is only populated on the last grouping level.
	Rows       []Row
	TotalItems int
}

func (n *Node) IsLeafGroup() bool {
	return len(n.Children) == 0
}

// Leaves returns every row under the node, depth first.
func (n *Node) Leaves() []Row {
	if n.IsLeafGroup() {
		return n.Rows
	}
	result := make([]Row, 0, n.TotalItems)
	for _, child := range n.Children {
		result = append(result, child.Leaves()...)
	}
	return result
}

type Tree struct {
	GroupBy []string
	Mode    KeyMode
	Groups  []*Node
	Rows    []Row
}

// Build partitions rows by groupBy, outermost field first. Buckets keep the
// order in which their label first appears in rows.
func Build(rows []Row, groupBy []string, mode KeyMode) *Tree {
	tree := &Tree{
		GroupBy: groupBy,
		Mode:    mode,
		Rows:    rows,
	}
	if len(groupBy) == 0 {
		return tree
	}
	tree.Groups = buildLevel(rows, groupBy, 0, nil, mode)
	return tree
}

func buildLevel(rows []Row, groupBy []string, level int, parent []string, mode KeyMode) []*Node {
	field := groupBy[level]
	buckets := make(map[string][]Row)
	order := make([]string, 0)
	for _, row := range rows {
		label := strings.TrimSpace(row.Value(field))
		if label == "" {
			label = Uncategorized
		}
		if _, ok := buckets[label]; !ok {
			order = append(order, label)
		}
		buckets[label] = append(buckets[label], row)
	}

	nodes := make([]*Node, 0, len(order))
	for _, label := range order {
		bucket := buckets[label]
		path := make([]string, len(parent)+1)
		copy(path, parent)
		path[len(parent)] = label

		node := &Node{
			Label: label,
			Level: level,
			Key:   KeyFor(mode, path, level),
			Path:  path,
			Count: len(bucket),
		}
		if level+1 < len(groupBy) {
			node.Children = buildLevel(bucket, groupBy, level+1, path, mode)
			for _, child := range node.Children {
				node.TotalItems += child.TotalItems
			}
		} else {
			node.Rows = bucket
			node.TotalItems = len(bucket)
		}
		nodes = append(nodes, node)
	}
	return nodes
}

// KeyFor returns the expansion key of the node at path on the given level.
func KeyFor(mode KeyMode, path []string, level int) string {
	if len(path) == 0 {
		return ""
	}
	if mode == KeyByLabelLevel {
		return fmt.Sprintf("%s-%d", path[len(path)-1], level)
	}
	escaped := make([]string, len(path))
	for i, segment := range path {
		escaped[i] = url.PathEscape(segment)
	}
	return strings.Join(escaped, "/")
}

// Find walks the tree along path and returns the matching node, or nil.
func (t *Tree) Find(path []string) *Node {
	if len(path) == 0 {
		return nil
	}
	nodes := t.Groups
	var found *Node
	for _, label := range path {
		found = nil
		for _, node := range nodes {
			if node.Label == label {
				found = node
				break
			}
		}
		if found == nil {
			return nil
		}
		nodes = found.Children
	}
	return found
}

// Walk visits every node depth first, parents before children.
func (t *Tree) Walk(fn func(*Node)) {
	var visit func([]*Node)
	visit = func(nodes []*Node) {
		for _, node := range nodes {
			fn(node)
			visit(node.Children)
		}
	}
	visit(t.Groups)
}
