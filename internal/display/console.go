package display

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/nicksukie/livesub/internal/core"
)

// ConsoleOverlay is the headless core.Overlay implementation: it prints the
// current translated body, status line, and info pill to a writer instead of
// driving an on-screen window, mirroring the teacher's terminal event-print
// loop in cmd/agent/main.go (carriage-return-clear then reprint). A real
// on-screen overlay is platform-bound UI and out of scope here, the same way
// internal/capture keeps the actual OCR/audio devices behind an interface.
type ConsoleOverlay struct {
	mu  sync.Mutex
	out io.Writer

	lastBody string
}

func NewConsoleOverlay(out io.Writer) *ConsoleOverlay {
	return &ConsoleOverlay{out: out}
}

func (c *ConsoleOverlay) UpdateText(body string, allowShow bool, partialLast bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if body == c.lastBody {
		return
	}
	c.lastBody = body
	if !allowShow || body == "" {
		return
	}
	marker := ""
	if partialLast {
		marker = " (partial)"
	}
	fmt.Fprintf(c.out, "\r\033[K%s%s\n", strings.ReplaceAll(body, "\n", " | "), marker)
}

func (c *ConsoleOverlay) SetStatusMessages(msgs []core.StatusMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(msgs) == 0 {
		return
	}
	parts := make([]string, len(msgs))
	for i, m := range msgs {
		parts[i] = m.Text
	}
	fmt.Fprintf(c.out, "\r\033[K[status] %s\n", strings.Join(parts, " | "))
}

func (c *ConsoleOverlay) SetInfoPillText(wordCounts map[string]int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(wordCounts) == 0 {
		return
	}
	parts := make([]string, 0, len(wordCounts))
	for provider, count := range wordCounts {
		parts = append(parts, fmt.Sprintf("%s=%d", provider, count))
	}
	fmt.Fprintf(c.out, "\r\033[K[providers] %s\n", strings.Join(parts, " "))
}

func (c *ConsoleOverlay) UpdatePlayPauseState(playing bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	state := "paused"
	if playing {
		state = "running"
	}
	fmt.Fprintf(c.out, "\r\033[K[state] %s\n", state)
}

func (c *ConsoleOverlay) SnapAwayFromOCR(region core.Region, gap int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, "\r\033[K[overlay] snapped away from region (%d,%d %dx%d), gap=%d\n", region.Left, region.Top, region.Width, region.Height, gap)
}

var _ core.Overlay = (*ConsoleOverlay)(nil)
