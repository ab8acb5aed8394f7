package rewrite

import (
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// Edit replaces the bytes [Start, End) of the original source with Text.
// Start == End is an insertion.
type Edit struct {
	Start uint32
	End   uint32
	Text  string
}

// Renderer renders ranges of the original source
type Renderer interface {
	Text(start, end uint32) string
	NodeText(n *sitter.Node) string
}

// EditPlan collects non-overlapping edits against an immutable source.
//
// Edits are planned innermost first. Text renders a range with the edits
// it encloses applied, and Replace folds the edits inside its range into
// the new edit, so the plan only ever holds disjoint top-level edits. Apply
// splices them into the source once, from the bottom up.
type EditPlan struct {
	src   []byte
	edits []Edit
}

// NewEditPlan creates an empty plan over src
func NewEditPlan(src []byte) *EditPlan {
	return &EditPlan{src: src}
}

// Len returns the number of top-level edits
func (p *EditPlan) Len() int {
	return len(p.edits)
}

// Edits returns the planned edits ordered by position
func (p *EditPlan) Edits() []Edit {
	out := make([]Edit, len(p.edits))
	copy(out, p.edits)
	return out
}

// Text renders [start, end) with the enclosed edits applied
func (p *EditPlan) Text(start, end uint32) string {
	var b strings.Builder
	at := start
	for _, e := range p.edits {
		if !encloses(start, end, e) {
			continue
		}
		b.Write(p.src[at:e.Start])
		b.WriteString(e.Text)
		at = e.End
	}
	b.Write(p.src[at:end])
	return b.String()
}

// NodeText renders n with the enclosed edits applied
func (p *EditPlan) NodeText(n *sitter.Node) string {
	return p.Text(n.StartByte(), n.EndByte())
}

// Replace plans replacing [start, end) by text. Edits enclosed by the range
// are dropped: text is expected to be rendered through Text.
func (p *EditPlan) Replace(start, end uint32, text string) {
	kept := p.edits[:0:0]
	for _, e := range p.edits {
		if start != end && encloses(start, end, e) {
			continue
		}
		kept = append(kept, e)
	}
	p.edits = append(kept, Edit{Start: start, End: end, Text: text})
	// an insertion sorts before a replacement starting at the same offset
	sort.SliceStable(p.edits, func(i, j int) bool {
		if p.edits[i].Start != p.edits[j].Start {
			return p.edits[i].Start < p.edits[j].Start
		}
		return p.edits[i].End < p.edits[j].End
	})
}

func encloses(start, end uint32, e Edit) bool {
	return start <= e.Start && e.End <= end
}

// ReplaceNode plans replacing n by text
func (p *EditPlan) ReplaceNode(n *sitter.Node, text string) {
	p.Replace(n.StartByte(), n.EndByte(), text)
}

// Insert plans inserting text at offset
func (p *EditPlan) Insert(at uint32, text string) {
	p.Replace(at, at, text)
}

// Snapshot returns a copy of the planned edits for Restore
func (p *EditPlan) Snapshot() []Edit {
	return p.Edits()
}

// Restore resets the plan to a Snapshot
func (p *EditPlan) Restore(edits []Edit) {
	p.edits = edits
}

// Apply returns the source with every planned edit applied
func (p *EditPlan) Apply() []byte {
	out := make([]byte, len(p.src))
	copy(out, p.src)
	for i := len(p.edits) - 1; i >= 0; i-- {
		e := p.edits[i]
		tail := append([]byte(e.Text), out[e.End:]...)
		out = append(out[:e.Start], tail...)
	}
	return out
}
