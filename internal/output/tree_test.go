package output

import (
	"strings"
	"testing"
	"time"

	"github.com/marcus/overlay/internal/geom"
	"github.com/marcus/overlay/pkg/overlay/action"
	"github.com/marcus/overlay/pkg/overlay/animation"
	"github.com/marcus/overlay/pkg/overlay/layout"
)

func TestRenderTreeLines_Empty(t *testing.T) {
	lines := RenderTreeLines(nil, TreeRenderOptions{})
	if len(lines) != 0 {
		t.Errorf("expected empty lines, got %d", len(lines))
	}
}

func TestRenderTreeLines_MultipleNodes(t *testing.T) {
	nodes := []TreeNode{
		{Label: "first", Detail: "(0,0 10x1)"},
		{Label: "second", Detail: "(0,1 10x1)"},
	}
	lines := RenderTreeLines(nodes, TreeRenderOptions{ShowDetail: true})

	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0] != "├── first  (0,0 10x1)" {
		t.Errorf("first line = %q", lines[0])
	}
	if lines[1] != "└── second  (0,1 10x1)" {
		t.Errorf("last line = %q", lines[1])
	}
}

func TestRenderTreeLines_WithChildren(t *testing.T) {
	nodes := []TreeNode{
		{Label: "parent", Children: []TreeNode{{Label: "a"}, {Label: "b"}}},
		{Label: "sibling"},
	}
	lines := RenderTreeLines(nodes, TreeRenderOptions{})

	want := []string{
		"├── parent",
		"│   ├── a",
		"│   └── b",
		"└── sibling",
	}
	if strings.Join(lines, "\n") != strings.Join(want, "\n") {
		t.Errorf("tree =\n%s\nwant\n%s", strings.Join(lines, "\n"), strings.Join(want, "\n"))
	}
}

func TestRenderTreeLines_MaxDepth(t *testing.T) {
	nodes := []TreeNode{
		{Label: "level0", Children: []TreeNode{
			{Label: "level1", Children: []TreeNode{{Label: "level2"}}},
		}},
	}

	lines := RenderTreeLines(nodes, TreeRenderOptions{MaxDepth: 1})
	if len(lines) != 1 {
		t.Errorf("expected 1 line with MaxDepth=1, got %d: %v", len(lines), lines)
	}
}

func TestRenderTree_DetailHidden(t *testing.T) {
	root := TreeNode{Label: "root", Detail: "hidden", Children: []TreeNode{{Label: "child", Detail: "hidden"}}}

	result := RenderTree(root, TreeRenderOptions{})
	if strings.Contains(result, "hidden") {
		t.Errorf("detail shown with ShowDetail=false: %s", result)
	}
	if !strings.HasPrefix(result, "root\n") {
		t.Errorf("expected root label first, got: %s", result)
	}
}

func TestLayoutTree(t *testing.T) {
	actions := action.Sort([]*action.Action{
		action.New("Cancel", action.Neutral),
		action.New("OK", action.Positive),
	})
	res := layout.New(layout.DefaultMetrics()).Layout(actions, 300)

	root := LayoutTree(actions, res)
	if root.Detail != "width=300 height=176" {
		t.Errorf("root detail = %q", root.Detail)
	}
	if len(root.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(root.Children))
	}
	if root.Children[0].Label != `#0 positive "OK"` {
		t.Errorf("first child label = %q", root.Children[0].Label)
	}
	if root.Children[1].Detail != geom.R(16, 104, 268, 40).String() {
		t.Errorf("second child detail = %q", root.Children[1].Detail)
	}
}

func TestTimelineTree(t *testing.T) {
	tl := animation.Timeline{
		Duration: 100 * time.Millisecond,
		Easing:   animation.Linear,
		From:     animation.Frame{Rect: geom.R(0, 100, 10, 10), Opacity: 0, Scale: 1},
		To:       animation.Frame{Rect: geom.R(0, 0, 10, 10), Opacity: 1, Scale: 1},
	}

	root := TimelineTree("entrance", tl, 2)
	if len(root.Children) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(root.Children))
	}
	mid := root.Children[1]
	if mid.Label != "p=0.50" || !strings.Contains(mid.Detail, "opacity=0.50") || !strings.Contains(mid.Detail, "(0,50 10x10)") {
		t.Errorf("midpoint sample = %+v", mid)
	}
	if root.Detail != "duration=100ms" {
		t.Errorf("root detail = %q", root.Detail)
	}
}
