package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/aymanbagabas/go-osc52/v2"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/quiverview/pkg/codec"
	"github.com/matzehuels/quiverview/pkg/config"
	"github.com/matzehuels/quiverview/pkg/errors"
	"github.com/matzehuels/quiverview/pkg/layout"
	"github.com/matzehuels/quiverview/pkg/pick"
	"github.com/matzehuels/quiverview/pkg/quiver"
	"github.com/matzehuels/quiverview/pkg/render/term"
	"github.com/matzehuels/quiverview/pkg/route"
)

const (
	// doubleClickWindow is the longest gap between two presses on the same
	// cell that still counts as a double click.
	doubleClickWindow = 400 * time.Millisecond

	// chromeRows are the terminal rows below the canvas (status and help).
	chromeRows = 2

	pasteHint = "paste with your terminal's paste shortcut (bracketed paste)"
)

// viewCommand creates the view command, the interactive viewer and editor.
func (c *CLI) viewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "view [file]",
		Short: "Open a quiver in the interactive viewer",
		Long: `Open a quiver in the terminal viewer. Without a file a small sample quiver
is shown.

  drag a node          move it
  drag a loop          turn and stretch it
  double click         add a node
  paste                replace the quiver with Quiver( ... ) text from the clipboard
  y                    copy the quiver to the clipboard
  r                    recompute the layout
  q                    quit

Pasting goes through the terminal's own paste shortcut (bracketed paste,
e.g. ctrl+shift+v or cmd+v). A terminal does not hand the clipboard to
programs, so ctrl+v inside the viewer only shows a reminder.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			provider, err := newProvider(cfg)
			if err != nil {
				return err
			}

			q := sampleQuiver(cfg.View)
			if len(args) == 1 {
				if q, err = readQuiver(args[0], cfg.View); err != nil {
					return err
				}
			}
			if err := c.layoutQuiver(cmd.Context(), q, cfg); err != nil {
				return err
			}
			return c.runViewer(cmd.Context(), q, provider, cfg)
		},
	}
}

func (c *CLI) runViewer(ctx context.Context, q *quiver.Quiver, provider layout.Provider, cfg config.Config) error {
	restore, err := redirectLogs(c.Logger, c.logFile)
	if err != nil {
		return err
	}
	defer restore()

	m := newViewer(ctx, q, provider, cfg.View, c.Logger, os.Stderr)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return errors.Wrap(errors.ErrCodeInternal, err, "viewer")
	}
	return nil
}

// =============================================================================
// screen - pick.View backed by the braille canvas
// =============================================================================

// screen receives scenes and notifications from the controller. The
// bubbletea model is copied on every update, so the controller talks to this
// shared value instead.
type screen struct {
	canvas *term.Canvas
	scene  *route.Scene
	notice error
}

func (s *screen) Draw(sc *route.Scene) {
	s.scene = sc
	s.notice = nil
	s.canvas.Draw(sc)
}

func (s *screen) Notify(err error) { s.notice = err }

// =============================================================================
// viewer - bubbletea model
// =============================================================================

type copiedMsg struct{ err error }

type viewer struct {
	ctx    context.Context
	ctl    *pick.Controller
	screen *screen
	styles term.Styles
	logger *log.Logger

	clipboard io.Writer
	now       func() time.Time

	width, height int
	status        string

	lastPress        time.Time
	lastCol, lastRow int
}

func newViewer(ctx context.Context, q *quiver.Quiver, provider layout.Provider, cfg config.View, logger *log.Logger, clipboard io.Writer) *viewer {
	s := &screen{canvas: term.New(80, 24-chromeRows, cfg)}
	router := route.New(cfg)
	router.Logger = logger
	return &viewer{
		ctx:       ctx,
		ctl:       pick.New(q, router, provider, s, pick.WithLogger(logger)),
		screen:    s,
		styles:    term.DefaultStyles(),
		logger:    logger,
		clipboard: clipboard,
		now:       time.Now,
	}
}

func (m *viewer) Init() tea.Cmd {
	m.ctl.Redraw()
	return nil
}

func (m *viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.screen.canvas.Resize(msg.Width, max(msg.Height-chromeRows, 1))
		m.ctl.Redraw()

	case tea.MouseMsg:
		m.mouse(msg)

	case tea.KeyMsg:
		if msg.Paste {
			m.status = ""
			if err := m.ctl.Paste(m.ctx, string(msg.Runes)); err == nil && m.ctl.State() == pick.Idle {
				m.status = "pasted " + statsLine(m.ctl.Model().NodeCount(), m.ctl.Model().EdgeCount(), countLoops(m.ctl.Model()))
			}
			return m, nil
		}
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "y":
			return m, m.copyCmd()
		case "r":
			if err := m.ctl.Relayout(m.ctx); err == nil {
				m.status = "layout recomputed"
			}
		case "ctrl+v":
			m.status = pasteHint
		}

	case copiedMsg:
		if msg.err != nil {
			m.screen.Notify(msg.err)
		} else {
			m.status = "copied to clipboard"
		}
	}
	return m, nil
}

func (m *viewer) mouse(msg tea.MouseMsg) {
	cols, rows := m.screen.canvas.Size()
	inside := msg.X >= 0 && msg.Y >= 0 && msg.X < cols && msg.Y < rows
	at := m.screen.canvas.CellToWorld(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !inside {
			return
		}
		now := m.now()
		if m.ctl.State() == pick.Idle && msg.X == m.lastCol && msg.Y == m.lastRow &&
			!m.lastPress.IsZero() && now.Sub(m.lastPress) <= doubleClickWindow {
			m.lastPress = time.Time{}
			if id := m.ctl.PointerDownDouble(at); id != "" {
				m.status = "added node " + id
			}
			return
		}
		m.lastPress, m.lastCol, m.lastRow = now, msg.X, msg.Y
		m.ctl.PointerDown()
		if ref := m.screen.canvas.HitTest(msg.X, msg.Y); !ref.IsZero() {
			m.ctl.Pick(ref)
		}
	case tea.MouseActionMotion:
		m.ctl.PointerMove(at)
	case tea.MouseActionRelease:
		m.ctl.PointerUp()
	}
}

// copyCmd writes the serialized quiver to the terminal clipboard with OSC 52.
func (m *viewer) copyCmd() tea.Cmd {
	text := codec.Serialize(m.ctl.Model())
	w := m.clipboard
	return func() tea.Msg {
		_, err := osc52.New(text).WriteTo(w)
		return copiedMsg{err: err}
	}
}

func (m *viewer) View() string {
	var b strings.Builder
	b.WriteString(m.screen.canvas.Render(m.styles))
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("drag move · double-click add · paste replace · y copy · r relayout · q quit"))
	return b.String()
}

func (m *viewer) statusLine() string {
	if err := m.screen.notice; err != nil {
		code := errors.GetCode(err)
		if code == "" {
			code = "ERROR"
		}
		return StyleError.Render(fmt.Sprintf("%s %s: %s", iconError, code, errors.UserMessage(err)))
	}
	q := m.ctl.Model()
	line := StyleNumber.Render(statsLine(q.NodeCount(), q.EdgeCount(), countLoops(q)))
	if t := m.ctl.Target(); !t.IsZero() {
		line += StyleDim.Render(fmt.Sprintf(" · dragging %s %s", t.Kind, t.Node))
	}
	if s := m.screen.scene; s != nil && len(s.Warnings) > 0 {
		line += " " + StyleWarning.Render(fmt.Sprintf("%s %s", iconWarning, plural(len(s.Warnings), "degenerate arrow")))
	}
	if m.status != "" {
		line += StyleDim.Render(" · " + m.status)
	}
	return line
}
