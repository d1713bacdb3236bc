// glome-server serves hypersphere scenes over SSH. Every connection gets its
// own copy of the scene to fly through. Build:
//
//	go build -o glome-server ./cmd/server
//
// Usage:
//
//	./glome-server [--port 2222] [--key server_host_key] [--scene world.json] [--ws :8080]
//
// Connect with:
//
//	ssh -t -p 2222 localhost
//
// With --ws set, per-frame debug values of every session are broadcast as
// JSON to websocket clients of /telemetry.
package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"glome/assets"
	"glome/internal/game"
	"glome/internal/scene"
	internalssh "glome/internal/ssh"
	"glome/internal/telemetry"

	gossh "github.com/gliderlabs/ssh"
	xssh "golang.org/x/crypto/ssh"
)

func main() {
	port := flag.Int("port", 2222, "SSH server port")
	keyFile := flag.String("key", "server_host_key", "Path to the PEM-encoded host key (auto-generated if absent)")
	scenePath := flag.String("scene", "", "Path to a scene JSON file (default: built-in scene)")
	wsAddr := flag.String("ws", "", "Serve websocket telemetry on this address, e.g. :8080")
	fps := flag.Int("fps", 30, "Frames per second per session")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	s, err := loadScene(*scenePath)
	if err != nil {
		log.Fatalf("load scene: %v", err)
	}
	signer, err := loadOrCreateHostKey(*keyFile)
	if err != nil {
		log.Fatalf("host key: %v", err)
	}

	srv := &server{scene: s, fps: *fps, logger: logger}
	if *wsAddr != "" {
		srv.hub = telemetry.NewHub(logger)
		mux := http.NewServeMux()
		mux.Handle("/telemetry", srv.hub)
		go func() {
			log.Printf("telemetry on ws://%s/telemetry", *wsAddr)
			if err := http.ListenAndServe(*wsAddr, mux); err != nil {
				log.Fatalf("telemetry: %v", err)
			}
		}()
	}

	sshSrv := &gossh.Server{
		Addr:    fmt.Sprintf(":%d", *port),
		Handler: srv.handleSession,
		// Accept PTY requests from any client.
		PtyCallback: func(_ gossh.Context, _ gossh.Pty) bool { return true },
		// Accept any authentication; add gossh.PublicKeyAuth for real auth.
		HostSigners: []gossh.Signer{signer},
	}

	log.Printf("glome SSH server listening on :%d", *port)
	log.Printf("Connect with:  ssh -t -p %d -o StrictHostKeyChecking=no localhost", *port)
	log.Fatal(sshSrv.ListenAndServe())
}

func loadScene(path string) (*scene.Scene, error) {
	if path == "" {
		return scene.LoadBytes(assets.DefaultScene)
	}
	return scene.LoadFile(path)
}

// ─── sessions ───────────────────────────────────────────────────────────────

type server struct {
	scene  *scene.Scene // read-only, shared by all sessions
	fps    int
	logger *slog.Logger
	hub    *telemetry.Hub // nil without --ws
}

// handleSession is the gliderlabs SSH handler for one connection.
// It blocks for the duration of the connection so the SSH session stays open.
func (srv *server) handleSession(s gossh.Session) {
	id := s.Context().SessionID()
	logger := srv.logger.With("session", shortID(id), "user", s.User(), "remote", s.RemoteAddr().String())

	screen, err := internalssh.NewScreen(s)
	if errors.Is(err, internalssh.ErrNoPTY) {
		fmt.Fprintln(s, "This viewer requires a PTY. Connect with: ssh -t -p 2222 <host>")
		return
	}
	if err != nil {
		fmt.Fprintf(s, "Terminal setup failed: %v\n", err)
		logger.Warn("terminal setup failed", "error", err)
		return
	}

	cfg := game.Config{Scene: srv.scene, FPS: srv.fps, Logger: logger}
	if srv.hub != nil {
		cfg.Publisher = sessionPublisher{hub: srv.hub, session: shortID(id)}
	}
	g, err := game.New(screen, cfg)
	if err != nil {
		screen.Fini()
		fmt.Fprintf(s, "Scene setup failed: %v\n", err)
		logger.Error("scene setup failed", "error", err)
		return
	}
	if err := g.Run(s.Context()); err != nil {
		logger.Warn("session ended with error", "error", err)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// sessionPublisher tags every snapshot with the session it came from.
type sessionPublisher struct {
	hub     *telemetry.Hub
	session string
}

type taggedFrame struct {
	Session string `json:"session"`
	Frame   any    `json:"frame"`
}

func (p sessionPublisher) Publish(v any) {
	p.hub.Publish(taggedFrame{Session: p.session, Frame: v})
}

// ─── host key ───────────────────────────────────────────────────────────────

// loadOrCreateHostKey loads a PEM private key from path, or generates and
// persists a new ed25519 key if the file is absent or unreadable.
func loadOrCreateHostKey(path string) (gossh.Signer, error) {
	if data, err := os.ReadFile(path); err == nil {
		if signer, err := xssh.ParsePrivateKey(data); err == nil {
			log.Printf("Loaded host key from %s", path)
			return signer, nil
		}
	}

	log.Printf("Generating new ed25519 host key → %s", path)
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate host key: %w", err)
	}
	signer, err := xssh.NewSignerFromKey(key)
	if err != nil {
		return nil, fmt.Errorf("create signer: %w", err)
	}
	// Persist for next run (non-fatal if it fails).
	if pemBlock, err := xssh.MarshalPrivateKey(key, "glome server"); err == nil {
		if err := os.WriteFile(path, pem.EncodeToMemory(pemBlock), 0o600); err != nil {
			log.Printf("Could not save host key: %v", err)
		}
	}
	return signer, nil
}
