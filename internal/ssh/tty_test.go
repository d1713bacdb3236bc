package ssh

import (
	"bytes"
	"testing"
	"time"

	gossh "github.com/gliderlabs/ssh"
)

func TestTerm(t *testing.T) {
	cases := []struct {
		name    string
		environ []string
		want    string
	}{
		{"xterm-256color", []string{"TERM=xterm-256color"}, "xterm-256color"},
		{"tmux", []string{"LANG=C", "TERM=tmux"}, "tmux"},
		{"linux", []string{"TERM=linux"}, "linux"},
		{"vt100", []string{"TERM=vt100"}, "vt100"},
		{"rxvt-unicode-256color", []string{"TERM=rxvt-unicode-256color"}, "rxvt-unicode-256color"},
		{"unknown term", []string{"TERM=evil-term"}, DefaultTerm},
		{"path traversal", []string{"TERM=../../../etc/passwd"}, DefaultTerm},
		{"empty string", []string{"TERM="}, DefaultTerm},
		{"xterm-kitty", []string{"TERM=xterm-kitty"}, DefaultTerm},
		{"no TERM", nil, DefaultTerm},
		{"first allowed wins", []string{"TERM=evil-term", "TERM=screen"}, "screen"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Term(tc.environ); got != tc.want {
				t.Errorf("Term(%q) = %q, want %q", tc.environ, got, tc.want)
			}
		})
	}
}

type fakeChannel struct {
	in     bytes.Buffer
	out    bytes.Buffer
	closed bool
}

func (c *fakeChannel) Read(b []byte) (int, error)  { return c.in.Read(b) }
func (c *fakeChannel) Write(b []byte) (int, error) { return c.out.Write(b) }
func (c *fakeChannel) Close() error                { c.closed = true; return nil }

func TestSessionTtyDelegates(t *testing.T) {
	ch := &fakeChannel{}
	ch.in.WriteString("k")
	tty := NewSessionTty(ch, gossh.Window{Width: 80, Height: 24}, nil)

	buf := make([]byte, 4)
	if n, err := tty.Read(buf); err != nil || string(buf[:n]) != "k" {
		t.Fatalf("Read = %q, %v", buf[:n], err)
	}
	if _, err := tty.Write([]byte("frame")); err != nil || ch.out.String() != "frame" {
		t.Fatalf("Write went to %q, %v", ch.out.String(), err)
	}
	if err := tty.Close(); err != nil || !ch.closed {
		t.Fatal("Close not forwarded")
	}
}

func TestSessionTtyResize(t *testing.T) {
	winCh := make(chan gossh.Window)
	tty := NewSessionTty(&fakeChannel{}, gossh.Window{Width: 80, Height: 24}, winCh)
	if ws, _ := tty.WindowSize(); ws.Width != 80 || ws.Height != 24 {
		t.Fatalf("initial size = %+v", ws)
	}

	resized := make(chan struct{}, 1)
	tty.NotifyResize(func() { resized <- struct{}{} })
	winCh <- gossh.Window{Width: 120, Height: 40}

	select {
	case <-resized:
	case <-time.After(2 * time.Second):
		t.Fatal("resize callback not called")
	}
	if ws, _ := tty.WindowSize(); ws.Width != 120 || ws.Height != 40 {
		t.Fatalf("size after resize = %+v", ws)
	}
	close(winCh)
}
