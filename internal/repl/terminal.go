package repl

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/peterh/liner"
)

// Terminal is a line editor with a history file.
type Terminal struct {
	*liner.State
	historyFile string
	historySize int
}

// OpenTerminal puts the terminal in line-editing mode and loads the history
// file if it exists. Close restores the terminal and saves the history.
func OpenTerminal(historyFile string, historySize int) *Terminal {
	st := liner.NewLiner()
	st.SetCtrlCAborts(true)

	if f, err := os.Open(historyFile); err == nil {
		_, _ = st.ReadHistory(f)
		_ = f.Close()
	}
	return &Terminal{State: st, historyFile: historyFile, historySize: historySize}
}

// Close saves the history and restores the terminal.
func (t *Terminal) Close() error {
	saveErr := t.saveHistory()
	if err := t.State.Close(); err != nil {
		return err
	}
	return saveErr
}

// saveHistory writes the newest historySize entries, one per line.
func (t *Terminal) saveHistory() error {
	if t.historyFile == "" || t.historySize == 0 {
		return nil
	}
	var buf bytes.Buffer
	if _, err := t.WriteHistory(&buf); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	data := lastLines(buf.Bytes(), t.historySize)
	if err := os.WriteFile(t.historyFile, data, 0o600); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	return nil
}

// lastLines keeps the final n lines of data.
func lastLines(data []byte, n int) []byte {
	var lines []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	if len(lines) == 0 {
		return nil
	}
	return []byte(strings.Join(lines, "\n") + "\n")
}
