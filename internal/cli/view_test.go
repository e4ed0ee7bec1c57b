package cli

import (
	"bytes"
	"context"
	"encoding/base64"
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/quiverview/pkg/codec"
	"github.com/matzehuels/quiverview/pkg/config"
	"github.com/matzehuels/quiverview/pkg/errors"
	"github.com/matzehuels/quiverview/pkg/geom"
	"github.com/matzehuels/quiverview/pkg/layout"
	"github.com/matzehuels/quiverview/pkg/pick"
	"github.com/matzehuels/quiverview/pkg/quiver"
)

// keepLayout leaves every node where it is.
type keepLayout struct{}

func (keepLayout) Name() string { return "keep" }

func (keepLayout) Layout(_ context.Context, q *quiver.Quiver) (layout.Positions, error) {
	return q.Positions(), nil
}

// fakeClock advances by step on every call.
type fakeClock struct {
	now  time.Time
	step time.Duration
}

func (c *fakeClock) Now() time.Time {
	c.now = c.now.Add(c.step)
	return c.now
}

// testViewer returns an 80×24 viewer showing a → b with a at cell (20,10)
// and b at cell (60,10).
func testViewer(t *testing.T) (*viewer, *bytes.Buffer) {
	t.Helper()
	q := quiver.New()
	q.AddNode("a")
	q.AddNode("b")
	q.AddEdge("a", "b", "")

	var clip bytes.Buffer
	m := newViewer(context.Background(), q, keepLayout{}, config.DefaultView(),
		log.NewWithOptions(io.Discard, log.Options{}), &clip)
	m.Init()
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	canvas := m.screen.canvas
	q.SetPosition("a", canvas.CellToWorld(20, 10))
	q.SetPosition("b", canvas.CellToWorld(60, 10))
	m.ctl.Redraw()
	return m, &clip
}

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}
}

func motion(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion}
}

func release(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestViewerResize(t *testing.T) {
	m, _ := testViewer(t)
	cols, rows := m.screen.canvas.Size()
	if cols != 80 || rows != 24-chromeRows {
		t.Errorf("canvas size = %dx%d, want 80x%d", cols, rows, 24-chromeRows)
	}
	if m.screen.scene == nil || len(m.screen.scene.Vertices) != 2 {
		t.Fatal("expected a drawn scene with 2 vertices")
	}
	if lines := strings.Count(m.View(), "\n"); lines != rows+chromeRows-1 {
		t.Errorf("View() has %d line breaks, want %d", lines, rows+chromeRows-1)
	}
}

func TestViewerDragNode(t *testing.T) {
	m, _ := testViewer(t)
	q := m.ctl.Model()
	b, _ := q.Node("b")
	bpos := b.Pos

	m.Update(press(20, 10))
	if m.ctl.State() != pick.MouseDown {
		t.Fatalf("state = %v, want mouse-down", m.ctl.State())
	}
	if got := m.ctl.Target(); got.Node != "a" {
		t.Fatalf("target = %+v, want node a", got)
	}

	m.Update(motion(30, 12))
	a, _ := q.Node("a")
	if want := m.screen.canvas.CellToWorld(30, 12); a.Pos != want {
		t.Errorf("a moved to %v, want %v", a.Pos, want)
	}
	if b.Pos != bpos {
		t.Errorf("b moved to %v, want %v", b.Pos, bpos)
	}
	if !strings.Contains(m.View(), "dragging node a") {
		t.Error("status line should show the drag target")
	}

	m.Update(release(30, 12))
	if m.ctl.State() != pick.Idle {
		t.Errorf("state after release = %v, want idle", m.ctl.State())
	}
}

func TestViewerPressOnEmptySpace(t *testing.T) {
	m, _ := testViewer(t)
	q := m.ctl.Model()
	before := q.Positions()

	m.Update(press(40, 2))
	if !m.ctl.Target().IsZero() {
		t.Fatalf("target = %+v, want none", m.ctl.Target())
	}
	m.Update(motion(45, 3))
	m.Update(release(45, 3))

	for id, p := range q.Positions() {
		if p != before[id] {
			t.Errorf("node %s moved from %v to %v", id, before[id], p)
		}
	}
}

func TestViewerDoubleClick(t *testing.T) {
	tests := []struct {
		name    string
		step    time.Duration
		x2, y2  int
		wantNew bool
	}{
		{"fast same cell", 100 * time.Millisecond, 40, 18, true},
		{"slow", time.Second, 40, 18, false},
		{"other cell", 100 * time.Millisecond, 41, 18, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := testViewer(t)
			m.now = (&fakeClock{now: time.Unix(0, 0), step: tt.step}).Now

			m.Update(press(40, 18))
			m.Update(release(40, 18))
			m.Update(press(tt.x2, tt.y2))

			q := m.ctl.Model()
			n, ok := q.Node("3")
			if ok != tt.wantNew {
				t.Fatalf("node 3 exists = %v, want %v", ok, tt.wantNew)
			}
			if !tt.wantNew {
				if m.ctl.State() != pick.MouseDown {
					t.Errorf("state = %v, want mouse-down", m.ctl.State())
				}
				return
			}
			if want := m.screen.canvas.CellToWorld(40, 18); n.Pos != want {
				t.Errorf("node 3 at %v, want %v", n.Pos, want)
			}
			if m.ctl.State() != pick.Idle {
				t.Errorf("state = %v, want idle", m.ctl.State())
			}
			if !strings.Contains(m.status, "added node 3") {
				t.Errorf("status = %q", m.status)
			}
		})
	}
}

func TestViewerIgnoresOtherButtons(t *testing.T) {
	m, _ := testViewer(t)
	m.Update(tea.MouseMsg{X: 20, Y: 10, Button: tea.MouseButtonRight, Action: tea.MouseActionPress})
	if m.ctl.State() != pick.Idle {
		t.Errorf("state = %v, want idle", m.ctl.State())
	}
	m.Update(press(200, 200))
	if m.ctl.State() != pick.Idle {
		t.Errorf("press outside the canvas: state = %v, want idle", m.ctl.State())
	}
}

func TestViewerPaste(t *testing.T) {
	m, _ := testViewer(t)
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Paste: true,
		Runes: []rune(`>>> Q
Quiver(["x", "y", "z"], [["x", "y", "f"], ["z", "z", ""]])`)})

	q := m.ctl.Model()
	if got := q.NodeIDs(); strings.Join(got, ",") != "x,y,z" {
		t.Fatalf("nodes = %v, want [x y z]", got)
	}
	if m.screen.notice != nil {
		t.Errorf("notice = %v, want none", m.screen.notice)
	}
	if !strings.Contains(m.status, "pasted 3 nodes") {
		t.Errorf("status = %q", m.status)
	}
}

func TestViewerPasteFailure(t *testing.T) {
	m, _ := testViewer(t)
	before := m.ctl.Model()

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Paste: true, Runes: []rune("not a quiver")})

	if m.ctl.Model() != before {
		t.Error("failed paste replaced the model")
	}
	if !errors.IsParse(m.screen.notice) {
		t.Fatalf("notice = %v, want parse error", m.screen.notice)
	}
	if !strings.Contains(m.View(), string(errors.ErrCodeParse)) {
		t.Error("View() should show the parse error")
	}

	// The next redraw clears the notice.
	m.ctl.Redraw()
	if m.screen.notice != nil {
		t.Errorf("notice after redraw = %v", m.screen.notice)
	}
}

func TestViewerCtrlV(t *testing.T) {
	m, _ := testViewer(t)
	before := m.ctl.Model()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlV})
	if cmd != nil {
		t.Error("ctrl+v should not return a command")
	}
	if m.ctl.Model() != before {
		t.Error("ctrl+v replaced the model")
	}
	if m.status != pasteHint {
		t.Errorf("status = %q, want the paste hint", m.status)
	}
}

func TestViewHelpExplainsPaste(t *testing.T) {
	long := testCLI(t).viewCommand().Long
	for _, want := range []string{"bracketed paste", "ctrl+v"} {
		if !strings.Contains(long, want) {
			t.Errorf("view help missing %q", want)
		}
	}
}

func TestViewerCopy(t *testing.T) {
	m, clip := testViewer(t)
	_, cmd := m.Update(runes("y"))
	if cmd == nil {
		t.Fatal("y should return a command")
	}
	msg := cmd()
	copied, ok := msg.(copiedMsg)
	if !ok || copied.err != nil {
		t.Fatalf("cmd() = %#v", msg)
	}

	want := base64.StdEncoding.EncodeToString([]byte(codec.Serialize(m.ctl.Model())))
	if !strings.Contains(clip.String(), want) {
		t.Errorf("clipboard sequence %q does not carry %q", clip.String(), want)
	}
	if !strings.HasPrefix(clip.String(), "\x1b]52;") {
		t.Errorf("clipboard output %q is not an OSC 52 sequence", clip.String())
	}

	m.Update(msg)
	if m.status != "copied to clipboard" {
		t.Errorf("status = %q", m.status)
	}
}

func TestViewerRelayout(t *testing.T) {
	m, _ := testViewer(t)
	m.Update(runes("r"))
	if m.status != "layout recomputed" {
		t.Errorf("status = %q", m.status)
	}
}

func TestViewerQuit(t *testing.T) {
	for _, key := range []tea.KeyMsg{runes("q"), {Type: tea.KeyCtrlC}, {Type: tea.KeyEsc}} {
		t.Run(key.String(), func(t *testing.T) {
			m, _ := testViewer(t)
			_, cmd := m.Update(key)
			if cmd == nil {
				t.Fatal("expected quit command")
			}
			if _, ok := cmd().(tea.QuitMsg); !ok {
				t.Errorf("cmd() is not tea.QuitMsg")
			}
		})
	}
}

func TestScreenNotify(t *testing.T) {
	m, _ := testViewer(t)
	m.screen.Notify(errors.New(errors.ErrCodeLayout, "graphviz exploded"))
	view := m.View()
	for _, want := range []string{"LAYOUT_FAILED", "graphviz exploded"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}

	m.screen.Notify(io.ErrUnexpectedEOF)
	if !strings.Contains(m.View(), "ERROR") {
		t.Error("uncoded errors should still be shown")
	}
}

func TestViewerStatusWarnings(t *testing.T) {
	m, _ := testViewer(t)
	q := m.ctl.Model()
	q.SetPosition("b", geom.Vec{})
	q.SetPosition("a", geom.Vec{})
	m.ctl.Redraw()
	if !strings.Contains(m.View(), "1 degenerate arrow") {
		t.Errorf("status should count degenerate arrows, got %q", m.statusLine())
	}
}
