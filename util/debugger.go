// Package util holds helpers for running and debugging a cord socket.
package util

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
)

const (
	consoleWidth = 79
	indent       = "    "
	// truncated frames keep this many bytes
	truncateAt = 6 * (consoleWidth - len(indent))
)

// StderrDebugger prints frames and errors to the console, wrapped to the
// console width. The zero value writes to stderr.
type StderrDebugger struct {
	// Truncate cuts long frames, like GUILD_CREATE, to a few lines.
	Truncate bool
	// Token, when set, is masked out of everything printed.
	Token string
	// Out overrides stderr.
	Out io.Writer

	mu sync.Mutex
}

func (s *StderrDebugger) writeOut(prefix, str string) {
	if s.Token != "" {
		str = strings.ReplaceAll(str, s.Token, "[redacted]")
	}
	if s.Truncate && len(str) > truncateAt {
		str = str[:truncateAt] + "…"
	}

	out := s.Out
	if out == nil {
		out = os.Stderr
	}

	width := consoleWidth - len(indent)
	var b strings.Builder
	b.WriteString(prefix + " ")
	for len(str) > width {
		b.WriteString(str[:width] + "\n" + indent)
		str = str[width:]
	}
	b.WriteString(str + "\n")

	s.mu.Lock()
	io.WriteString(out, b.String())
	s.mu.Unlock()
}

// Incoming implements Debugger.Incoming
func (s *StderrDebugger) Incoming(b []byte) {
	s.writeOut(color.CyanString("<<<"), string(b))
}

// Outgoing implements Debugger.Outgoing
func (s *StderrDebugger) Outgoing(b []byte) {
	s.writeOut(color.GreenString(">>>"), string(b))
}

// Error implements Debugger.Error
func (s *StderrDebugger) Error(e error) {
	col := color.New(color.FgBlack, color.BgRed)
	s.writeOut(col.SprintfFunc()("ERR"), e.Error())
}
