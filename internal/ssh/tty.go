// Package ssh adapts gliderlabs/ssh sessions to tcell screens.
package ssh

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
)

// ErrNoPTY is returned by NewScreen for sessions without a terminal.
var ErrNoPTY = errors.New("session has no PTY")

// DefaultTerm is used when the client's TERM is missing or not allowed.
const DefaultTerm = "xterm-256color"

// allowedTerms is the set of TERM values passed through to terminfo; anything
// else falls back to DefaultTerm.
var allowedTerms = map[string]bool{
	"xterm":                 true,
	"xterm-256color":        true,
	"screen":                true,
	"screen-256color":       true,
	"tmux":                  true,
	"tmux-256color":         true,
	"linux":                 true,
	"vt100":                 true,
	"vt220":                 true,
	"rxvt-unicode":          true,
	"rxvt-unicode-256color": true,
}

// Term returns the terminal type to use for a session environment.
func Term(environ []string) string {
	for _, env := range environ {
		if v, ok := strings.CutPrefix(env, "TERM="); ok && allowedTerms[v] {
			return v
		}
	}
	return DefaultTerm
}

// termMu serializes os.Setenv("TERM") around screen creation; tcell reads
// the terminal type from the process environment.
var termMu sync.Mutex

// NewScreen creates and initializes a tcell screen drawing into s.
func NewScreen(s gossh.Session) (tcell.Screen, error) {
	pty, winCh, ok := s.Pty()
	if !ok {
		return nil, ErrNoPTY
	}
	tty := NewSessionTty(s, pty.Window, winCh)

	termMu.Lock()
	prev, had := os.LookupEnv("TERM")
	_ = os.Setenv("TERM", Term(append([]string{"TERM=" + pty.Term}, s.Environ()...)))
	screen, err := tcell.NewTerminfoScreenFromTty(tty)
	if had {
		_ = os.Setenv("TERM", prev)
	} else {
		_ = os.Unsetenv("TERM")
	}
	termMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	return screen, nil
}

// channel is the part of an SSH session a SessionTty needs.
type channel interface {
	Read(b []byte) (int, error)
	Write(b []byte) (int, error)
	Close() error
}

// SessionTty implements tcell.Tty over an SSH channel. Each connected client
// gets its own SessionTty and tcell.Screen pair.
type SessionTty struct {
	ch    channel
	winCh <-chan gossh.Window

	mu     sync.Mutex
	window gossh.Window
	cb     func() // resize callback registered by tcell
	once   sync.Once
}

// NewSessionTty wraps ch as a tcell Tty. window is the initial size; winCh
// delivers later resizes and is drained for the lifetime of the session.
func NewSessionTty(ch channel, window gossh.Window, winCh <-chan gossh.Window) *SessionTty {
	return &SessionTty{ch: ch, window: window, winCh: winCh}
}

func (t *SessionTty) Read(b []byte) (int, error)  { return t.ch.Read(b) }
func (t *SessionTty) Write(b []byte) (int, error) { return t.ch.Write(b) }
func (t *SessionTty) Close() error                { return t.ch.Close() }

// Start, Stop and Drain are no-ops: the SSH server owns the channel.
func (t *SessionTty) Start() error { return nil }
func (t *SessionTty) Stop() error  { return nil }
func (t *SessionTty) Drain() error { return nil }

// WindowSize returns the current terminal dimensions.
func (t *SessionTty) WindowSize() (tcell.WindowSize, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return tcell.WindowSize{Width: t.window.Width, Height: t.window.Height}, nil
}

// NotifyResize registers cb to be called after every window change.
func (t *SessionTty) NotifyResize(cb func()) {
	t.mu.Lock()
	t.cb = cb
	t.mu.Unlock()

	t.once.Do(func() {
		if t.winCh == nil {
			return
		}
		go func() {
			for win := range t.winCh {
				t.mu.Lock()
				t.window = win
				cb := t.cb
				t.mu.Unlock()
				if cb != nil {
					cb()
				}
			}
		}()
	})
}
