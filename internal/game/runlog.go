package game

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// SessionLog records statistics for one viewing session.
type SessionLog struct {
	Timestamp time.Time     `json:"timestamp"`
	Duration  time.Duration `json:"duration_ns"`
	Radius    float64       `json:"hypersphere_radius"`
	Objects   int           `json:"objects"`
	Frames    uint64        `json:"frames"`
	Travelled float64       `json:"travelled_metres"`
	Start     [4]float64    `json:"start_coord"`
	End       [4]float64    `json:"end_coord"`
}

// saveSessionLog appends the session as a single JSON line to sessions.jsonl.
// Errors are logged but never stop the viewer.
func saveSessionLog(sl SessionLog, logger *slog.Logger) {
	dir, err := sessionLogDir()
	if err != nil {
		logger.Warn("session log: cannot determine data dir", "error", err)
		return
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Warn("session log: cannot create data dir", "error", err)
		return
	}
	f, err := os.OpenFile(filepath.Join(dir, "sessions.jsonl"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		logger.Warn("session log: cannot open file", "error", err)
		return
	}
	defer f.Close()
	data, err := json.Marshal(sl)
	if err != nil {
		logger.Warn("session log: cannot marshal JSON", "error", err)
		return
	}
	f.Write(append(data, '\n')) //nolint:errcheck
}

// sessionLogDir returns the directory where session logs are stored:
// $XDG_DATA_HOME/glome, defaulting to ~/.local/share/glome.
func sessionLogDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "glome"), nil
}
