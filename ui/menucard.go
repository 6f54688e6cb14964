package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// CardLine is one label/value row in a MenuCard body.
type CardLine struct {
	Label     string
	Value     string
	Highlight bool
}

// MenuCard is a styled card container with rounded borders, a title and a
// body of label/value rows.
type MenuCard struct {
	*tview.Box
	title   string
	lines   []CardLine
	focused bool
}

// NewMenuCard creates a new menu card with the given title.
func NewMenuCard(title string) *MenuCard {
	return &MenuCard{
		Box:   tview.NewBox(),
		title: title,
	}
}

// SetLines replaces the body rows.
func (c *MenuCard) SetLines(lines ...CardLine) {
	c.lines = lines
}

// Lines returns the body rows.
func (c *MenuCard) Lines() []CardLine {
	return c.lines
}

// Draw renders the menu card with rounded borders.
func (c *MenuCard) Draw(screen tcell.Screen) {
	c.Box.DrawForSubclass(screen, c)
	c.drawCard(screen)
}

// drawCard draws the frame, title and body. It returns the first free row
// below the body, or -1 when the card is too small to draw.
func (c *MenuCard) drawCard(screen tcell.Screen) int {
	x, y, width, height := c.GetInnerRect()
	if width < 10 || height < 5 {
		return -1
	}

	borderStyle := c.borderStyle()
	bgStyle := tcell.StyleDefault.Background(MenuColors.CardBG)

	for row := y; row < y+height; row++ {
		for col := x; col < x+width; col++ {
			screen.SetContent(col, row, ' ', nil, bgStyle)
		}
	}

	// Top border: ╭───╮
	screen.SetContent(x, y, '╭', nil, borderStyle)
	for col := x + 1; col < x+width-1; col++ {
		screen.SetContent(col, y, '─', nil, borderStyle)
	}
	screen.SetContent(x+width-1, y, '╮', nil, borderStyle)

	for row := y + 1; row < y+height-1; row++ {
		screen.SetContent(x, row, '│', nil, borderStyle)
		screen.SetContent(x+width-1, row, '│', nil, borderStyle)
	}

	// Bottom border: ╰───╯
	screen.SetContent(x, y+height-1, '╰', nil, borderStyle)
	for col := x + 1; col < x+width-1; col++ {
		screen.SetContent(col, y+height-1, '─', nil, borderStyle)
	}
	screen.SetContent(x+width-1, y+height-1, '╯', nil, borderStyle)

	next := y + 2
	if c.title != "" {
		titleStyle := tcell.StyleDefault.Foreground(MenuColors.Title).Background(MenuColors.CardBG).Bold(true)
		accentStyle := tcell.StyleDefault.Foreground(MenuColors.TitleAccent).Background(MenuColors.CardBG)

		// ■  TITLE, centered on the second inner row
		titleLen := len([]rune(c.title)) + 3
		titleX := x + (width-titleLen)/2
		titleY := y + 2
		screen.SetContent(titleX, titleY, '■', nil, accentStyle)
		col := titleX + 3
		for _, ch := range c.title {
			screen.SetContent(col, titleY, ch, nil, titleStyle)
			col++
		}

		c.DrawDivider(screen, y+4)
		next = y + 6
	}

	labelStyle := tcell.StyleDefault.Foreground(MenuColors.Label).Background(MenuColors.CardBG)
	valueStyle := tcell.StyleDefault.Foreground(MenuColors.Value).Background(MenuColors.CardBG).Bold(true)
	highlightStyle := tcell.StyleDefault.Foreground(MenuColors.Highlight).Background(MenuColors.CardBG).Bold(true)
	for _, line := range c.lines {
		if next >= y+height-1 {
			break
		}
		col := x + 3
		for _, ch := range line.Label {
			screen.SetContent(col, next, ch, nil, labelStyle)
			col++
		}
		style := valueStyle
		if line.Highlight {
			style = highlightStyle
		}
		value := []rune(line.Value)
		col = x + width - 3 - len(value)
		for _, ch := range value {
			screen.SetContent(col, next, ch, nil, style)
			col++
		}
		next++
	}
	return next
}

func (c *MenuCard) borderStyle() tcell.Style {
	borderColor := MenuColors.Border
	if c.focused {
		borderColor = MenuColors.BorderFocus
	}
	return tcell.StyleDefault.Foreground(borderColor).Background(MenuColors.CardBG)
}

// DrawDivider draws a horizontal divider at the given y position.
func (c *MenuCard) DrawDivider(screen tcell.Screen, divY int) {
	x, _, width, _ := c.GetInnerRect()
	borderStyle := c.borderStyle()

	screen.SetContent(x, divY, '├', nil, borderStyle)
	for col := x + 1; col < x+width-1; col++ {
		screen.SetContent(col, divY, '─', nil, borderStyle)
	}
	screen.SetContent(x+width-1, divY, '┤', nil, borderStyle)
}

// SetFocused sets the focus state of the card.
func (c *MenuCard) SetFocused(focused bool) {
	c.focused = focused
}
