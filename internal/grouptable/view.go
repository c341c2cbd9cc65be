package grouptable

// NodeView is the serialisable form of a node with its selection and
// expansion state resolved.
type NodeView struct {
	Label      string     `json:"label"`
	Level      int        `json:"level"`
	Key        string     `json:"key"`
	Path       []string   `json:"path"`
	Count      int        `json:"count"`
	TotalItems int        `json:"total_items"`
	State      CheckState `json:"state"`
	Expanded   bool       `json:"expanded"`
	Children   []NodeView `json:"children,omitempty"`
	RowIDs     []int64    `json:"row_ids,omitempty"`
}

type TreeView struct {
	GroupBy []string   `json:"group_by"`
	State   CheckState `json:"state"`
	Total   int        `json:"total"`
	Groups  []NodeView `json:"groups"`
}

func (t *Tree) View(sel Selection, exp *Expansion) TreeView {
	if exp == nil {
		exp = NewExpansion()
	}
	return TreeView{
		GroupBy: t.GroupBy,
		State:   State(t.Rows, sel),
		Total:   len(t.Rows),
		Groups:  viewNodes(t.Groups, sel, exp),
	}
}

func viewNodes(nodes []*Node, sel Selection, exp *Expansion) []NodeView {
	views := make([]NodeView, 0, len(nodes))
	for _, node := range nodes {
		view := NodeView{
			Label:      node.Label,
			Level:      node.Level,
			Key:        node.Key,
			Path:       node.Path,
			Count:      node.Count,
			TotalItems: node.TotalItems,
			State:      GroupState(node, sel),
			Expanded:   exp.IsExpanded(node),
		}
		if node.IsLeafGroup() {
			view.RowIDs = make([]int64, 0, len(node.Rows))
			for _, row := range node.Rows {
				view.RowIDs = append(view.RowIDs, row.ID)
			}
		} else {
			view.Children = viewNodes(node.Children, sel, exp)
		}
		views = append(views, view)
	}
	return views
}
