package display

import (
	"strings"
	"sync"
)

const (
	// Columns of the character display.
	Columns = 16
	// Rows of the character display.
	Rows = 2
)

// Display is a character display such as an HD44780 16x2 LCD.
type Display interface {
	Clear()
	SetCursor(col, row int)
	Print(text string)
}

// Text is an in-memory character display. It clips writes at the right edge
// like the LCD does for the visible window.
type Text struct {
	mu       sync.RWMutex
	cols     int
	rows     int
	cells    [][]rune
	col, row int
	onChange func()
}

var _ Display = (*Text)(nil)

// NewText creates a blank display of cols x rows.
func NewText(cols, rows int) *Text {
	if cols <= 0 {
		cols = Columns
	}
	if rows <= 0 {
		rows = Rows
	}
	t := &Text{cols: cols, rows: rows}
	t.cells = make([][]rune, rows)
	for r := range t.cells {
		t.cells[r] = make([]rune, cols)
	}
	t.blank()
	return t
}

// OnChange registers a function called after every Clear and Print.
func (t *Text) OnChange(fn func()) {
	t.mu.Lock()
	t.onChange = fn
	t.mu.Unlock()
}

func (t *Text) blank() {
	for r := range t.cells {
		for c := range t.cells[r] {
			t.cells[r][c] = ' '
		}
	}
	t.col, t.row = 0, 0
}

// Clear blanks the display and homes the cursor.
func (t *Text) Clear() {
	t.mu.Lock()
	t.blank()
	fn := t.onChange
	t.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// SetCursor moves the cursor. Out-of-range positions are clamped.
func (t *Text) SetCursor(col, row int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.col = min(max(col, 0), t.cols)
	t.row = min(max(row, 0), t.rows-1)
}

// Print writes text at the cursor and advances it.
func (t *Text) Print(text string) {
	t.mu.Lock()
	for _, r := range text {
		if t.col < t.cols {
			t.cells[t.row][t.col] = r
		}
		t.col++
	}
	fn := t.onChange
	t.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Line returns row r without trailing spaces.
func (t *Text) Line(r int) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if r < 0 || r >= t.rows {
		return ""
	}
	return strings.TrimRight(string(t.cells[r]), " ")
}

// Lines returns all rows padded to full width.
func (t *Text) Lines() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]string, t.rows)
	for r := range t.cells {
		out[r] = string(t.cells[r])
	}
	return out
}

// String renders the display inside a frame.
func (t *Text) String() string {
	var sb strings.Builder
	border := "+" + strings.Repeat("-", t.cols) + "+\n"
	sb.WriteString(border)
	for _, line := range t.Lines() {
		sb.WriteString("|")
		sb.WriteString(line)
		sb.WriteString("|\n")
	}
	sb.WriteString(border)
	return sb.String()
}
