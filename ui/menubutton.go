package ui

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// MenuButton is a styled button component with an optional hotkey.
type MenuButton struct {
	label    string
	hotkey   rune
	primary  bool
	focused  bool
	onSelect func()
}

// NewMenuButton creates a new menu button. A zero hotkey means none.
func NewMenuButton(label string, hotkey rune, primary bool, onSelect func()) *MenuButton {
	return &MenuButton{
		label:    label,
		hotkey:   unicode.ToLower(hotkey),
		primary:  primary,
		onSelect: onSelect,
	}
}

// SetFocused sets the focus state.
func (b *MenuButton) SetFocused(focused bool) {
	b.focused = focused
}

// Select runs the button action.
func (b *MenuButton) Select() {
	if b.onSelect != nil {
		b.onSelect()
	}
}

// HandleKey processes keyboard input. Enter fires a focused button, the
// hotkey fires it regardless of focus. Returns true if handled.
func (b *MenuButton) HandleKey(event *tcell.EventKey) bool {
	switch event.Key() {
	case tcell.KeyEnter:
		if !b.focused {
			return false
		}
		b.Select()
		return true
	case tcell.KeyRune:
		if b.hotkey != 0 && unicode.ToLower(event.Rune()) == b.hotkey {
			b.Select()
			return true
		}
	}
	return false
}

func (b *MenuButton) text() string {
	label := b.label
	if b.primary {
		label = "▶ " + label
	}
	return label
}

// Draw renders the button component at the given position.
// Returns the width used.
func (b *MenuButton) Draw(screen tcell.Screen, x, y int) int {
	label := b.text()
	width := b.Width()

	if b.focused {
		style := tcell.StyleDefault.
			Foreground(MenuColors.ButtonText).
			Background(MenuColors.ButtonFocus)
		for i := 0; i < width; i++ {
			screen.SetContent(x+i, y, ' ', nil, style)
		}
		col := x + 1
		for _, ch := range label {
			screen.SetContent(col, y, ch, nil, style)
			col++
		}
		return width
	}

	dimStyle := tcell.StyleDefault.
		Foreground(MenuColors.Hint).
		Background(MenuColors.CardBG)
	bracketStyle := tcell.StyleDefault.
		Foreground(MenuColors.Border).
		Background(MenuColors.CardBG)

	screen.SetContent(x, y, '[', nil, bracketStyle)
	col := x + 1
	for _, ch := range label {
		screen.SetContent(col, y, ch, nil, dimStyle)
		col++
	}
	screen.SetContent(col, y, ']', nil, bracketStyle)
	return width
}

// Width returns the button width.
func (b *MenuButton) Width() int {
	return len([]rune(b.text())) + 2 // 1 padding on each side (or brackets)
}
