package grouptable

import "fmt"

type CheckState int

const (
	Unchecked CheckState = iota
	Indeterminate
	Checked
)

func (s CheckState) String() string {
	switch s {
	case Checked:
		return "checked"
	case Indeterminate:
		return "indeterminate"
	default:
		return "unchecked"
	}
}

func (s CheckState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *CheckState) UnmarshalText(text []byte) error {
	switch string(text) {
	case "checked":
		*s = Checked
	case "indeterminate":
		*s = Indeterminate
	case "unchecked":
		*s = Unchecked
	default:
		return fmt.Errorf("unknown check state %q", text)
	}
	return nil
}

// Selection is a read-only view of the caller-owned selected row ids.
type Selection map[int64]struct{}

func NewSelection(ids ...int64) Selection {
	sel := make(Selection, len(ids))
	for _, id := range ids {
		sel[id] = struct{}{}
	}
	return sel
}

func (s Selection) Has(id int64) bool {
	_, ok := s[id]
	return ok
}

// ChangeFunc receives one call per row whose selection should change.
type ChangeFunc func(id int64, selected bool)

// State reports whether all, some or none of rows are selected.
func State(rows []Row, sel Selection) CheckState {
	if len(rows) == 0 {
		return Unchecked
	}
	selected := 0
	for _, row := range rows {
		if sel.Has(row.ID) {
			selected++
		}
	}
	switch {
	case selected == 0:
		return Unchecked
	case selected == len(rows):
		return Checked
	default:
		return Indeterminate
	}
}

func GroupState(node *Node, sel Selection) CheckState {
	return State(node.Leaves(), sel)
}

// ToggleGroup applies checked to every row under node.
func ToggleGroup(node *Node, checked bool, onChange ChangeFunc) {
	ToggleAll(node.Leaves(), checked, onChange)
}

// ToggleAll applies checked to every row, as the header checkbox does.
func ToggleAll(rows []Row, checked bool, onChange ChangeFunc) {
	for _, row := range rows {
		onChange(row.ID, checked)
	}
}

// ToggleRow flips the membership of a single row.
func ToggleRow(id int64, sel Selection, onChange ChangeFunc) {
	onChange(id, !sel.Has(id))
}
