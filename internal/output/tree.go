package output

import (
	"fmt"
	"strings"

	"github.com/marcus/overlay/pkg/overlay/action"
	"github.com/marcus/overlay/pkg/overlay/animation"
	"github.com/marcus/overlay/pkg/overlay/layout"
)

// TreeNode represents a node in a tree structure for rendering
type TreeNode struct {
	Label    string
	Detail   string
	Children []TreeNode
}

// TreeRenderOptions configures tree rendering behavior
type TreeRenderOptions struct {
	MaxDepth   int  // 0 = unlimited
	ShowDetail bool // Whether to append Detail after the label
}

// RenderTree renders a tree starting from a single root node, root
// label first.
func RenderTree(root TreeNode, opts TreeRenderOptions) string {
	lines := []string{nodeText(root, opts)}
	lines = append(lines, renderTreeNodes(root.Children, opts, 0, "")...)
	return strings.Join(lines, "\n")
}

// RenderTreeLines renders multiple root nodes and returns individual lines
func RenderTreeLines(roots []TreeNode, opts TreeRenderOptions) []string {
	return renderTreeNodes(roots, opts, 0, "")
}

func nodeText(n TreeNode, opts TreeRenderOptions) string {
	if opts.ShowDetail && n.Detail != "" {
		return n.Label + "  " + n.Detail
	}
	return n.Label
}

// renderTreeNodes recursively renders tree nodes
func renderTreeNodes(nodes []TreeNode, opts TreeRenderOptions, depth int, prefix string) []string {
	if opts.MaxDepth > 0 && depth >= opts.MaxDepth {
		return nil
	}

	var lines []string

	for i, node := range nodes {
		isLast := i == len(nodes)-1

		connector := "\u251c\u2500\u2500 " // ├──
		if isLast {
			connector = "\u2514\u2500\u2500 " // └──
		}
		lines = append(lines, prefix+connector+nodeText(node, opts))

		childPrefix := prefix
		if isLast {
			childPrefix += "    "
		} else {
			childPrefix += "\u2502   " // │
		}
		lines = append(lines, renderTreeNodes(node.Children, opts, depth+1, childPrefix)...)
	}

	return lines
}

// LayoutTree describes one layout pass: the block size at the root, one
// child per action in display order.
func LayoutTree(actions []*action.Action, res layout.Result) TreeNode {
	root := TreeNode{
		Label:  "actions",
		Detail: fmt.Sprintf("width=%g height=%g", res.Width, res.Height),
	}
	for i, r := range res.Frames {
		label := fmt.Sprintf("#%d", i)
		if i < len(actions) {
			label = fmt.Sprintf("#%d %s %q", i, actions[i].Category(), actions[i].Title())
		}
		root.Children = append(root.Children, TreeNode{Label: label, Detail: r.String()})
	}
	return root
}

// TimelineTree samples tl at steps+1 evenly spaced points.
func TimelineTree(name string, tl animation.Timeline, steps int) TreeNode {
	steps = max(steps, 1)
	root := TreeNode{Label: name, Detail: fmt.Sprintf("duration=%s", tl.Duration)}
	for i := 0; i <= steps; i++ {
		p := float64(i) / float64(steps)
		f := tl.Sample(p)
		root.Children = append(root.Children, TreeNode{
			Label:  fmt.Sprintf("p=%.2f", p),
			Detail: fmt.Sprintf("rect=%s opacity=%.2f scale=%.3f", f.Rect, f.Opacity, f.Scale),
		})
	}
	return root
}
