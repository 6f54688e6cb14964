package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"blockudoku-term/config"
)

// ColorConfigUI provides a color configuration screen with live preview.
type ColorConfigUI struct {
	flex      *tview.Flex
	colorList *tview.List
	preview   *tview.Box
	cfg       *config.Config
	onDone    func(err error)

	selectedBoardColor  int
	selectedFilledColor int
	editingFilled       bool // true = editing block color, false = editing board color
}

type paletteEntry struct {
	code int
	name string
}

// Board colors, dark tones behind the grid
var boardColors = []paletteEntry{
	{232, "Black"},
	{234, "Charcoal"},
	{236, "Dark Gray"},
	{238, "Slate"},
	{240, "Gray"},
	{17, "Navy Blue"},
	{23, "Teal"},
	{22, "Dark Green"},
	{52, "Dark Maroon"},
	{54, "Purple"},
	{94, "Saddle Brown"},
	{230, "Light Cream"},
	{252, "Light Gray"},
}

// Block colors, bright tones that stand out from the board
var filledColors = []paletteEntry{
	{33, "Blue"},
	{39, "Sky Blue"},
	{45, "Cyan"},
	{48, "Mint"},
	{70, "Green"},
	{142, "Olive"},
	{172, "Brown"},
	{208, "Orange"},
	{220, "Yellow"},
	{203, "Coral"},
	{160, "Red"},
	{170, "Orchid"},
	{255, "White"},
}

// NewColorConfig creates a new color configuration screen. onDone receives
// the error from saving the config, if any.
func NewColorConfig(cfg *config.Config, onDone func(err error)) *ColorConfigUI {
	cc := &ColorConfigUI{
		cfg:                 cfg,
		onDone:              onDone,
		selectedBoardColor:  cfg.Theme.Colors.BoardColor,
		selectedFilledColor: cfg.Theme.Colors.FilledColor,
	}

	cc.colorList = tview.NewList()
	cc.colorList.SetBorder(true)
	cc.colorList.ShowSecondaryText(false)
	cc.populateColorList()

	cc.colorList.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		entries := cc.entries()
		if index >= 0 && index < len(entries) {
			if cc.editingFilled {
				cc.selectedFilledColor = entries[index].code
			} else {
				cc.selectedBoardColor = entries[index].code
			}
		}
	})

	cc.colorList.SetSelectedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		if index < 0 || index >= len(cc.entries()) {
			return
		}
		if !cc.editingFilled {
			// Board first, then the block color
			cc.editingFilled = true
			cc.populateColorList()
			return
		}
		cc.apply()
		cc.editingFilled = false
		cc.populateColorList()
		onDone(cc.cfg.Save())
	})

	cc.preview = tview.NewBox()
	cc.preview.SetBorder(true)
	cc.preview.SetTitle(" Board Preview ")
	cc.preview.SetDrawFunc(cc.drawPreview)

	// Layout: list on left, preview on right
	cc.flex = tview.NewFlex().
		AddItem(cc.colorList, 30, 0, true).
		AddItem(cc.preview, 0, 1, false)

	return cc
}

// apply copies the selection into the theme.
func (cc *ColorConfigUI) apply() {
	cc.cfg.Theme.Colors.BoardColor = cc.selectedBoardColor
	cc.cfg.Theme.Colors.BoardColorAlt = shade(cc.selectedBoardColor)
	cc.cfg.Theme.Colors.FilledColor = cc.selectedFilledColor
}

// shade picks the alternate box color for a board color. Grayscale ramp
// colors step two shades lighter, everything else is kept.
func shade(code int) int {
	if code >= 232 && code <= 253 {
		return code + 2
	}
	return code
}

func (cc *ColorConfigUI) entries() []paletteEntry {
	if cc.editingFilled {
		return filledColors
	}
	return boardColors
}

// populateColorList fills the list with appropriate colors based on editing mode.
func (cc *ColorConfigUI) populateColorList() {
	cc.colorList.Clear()

	current := cc.selectedBoardColor
	if cc.editingFilled {
		cc.colorList.SetTitle(" Select Block Color (Tab: board) ")
		current = cc.selectedFilledColor
	} else {
		cc.colorList.SetTitle(" Select Board Color (Tab: blocks) ")
	}
	for i, c := range cc.entries() {
		cc.colorList.AddItem(fmt.Sprintf("[#%06x]████[-] %s (%d)",
			tcell.PaletteColor(c.code).Hex(), c.name, c.code),
			"", rune('a'+i), nil)
	}
	for i, c := range cc.entries() {
		if c.code == current {
			cc.colorList.SetCurrentItem(i)
			break
		}
	}
}

// previewBlocks is a sample position for the preview board.
var previewBlocks = [][2]int{
	{0, 0}, {0, 1}, {1, 0},
	{2, 3}, {2, 4}, {2, 5}, {3, 4},
	{4, 1}, {5, 1}, {5, 2},
}

func (cc *ColorConfigUI) drawPreview(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	const size = 6
	if width < 20 || height < 10 {
		return x, y, width, height
	}

	boardColor := tcell.PaletteColor(cc.selectedBoardColor)
	altColor := tcell.PaletteColor(shade(cc.selectedBoardColor))
	filledColor := tcell.PaletteColor(cc.selectedFilledColor)
	labelColor := tcell.PaletteColor(cc.cfg.Theme.Colors.LabelColor)
	sym := cc.cfg.Theme.Symbols

	filled := make(map[[2]int]bool, len(previewBlocks))
	for _, p := range previewBlocks {
		filled[p] = true
	}

	startX := x + 2
	startY := y + 1
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			bg := boardColor
			if (row/3+col/3)%2 == 1 {
				bg = altColor
			}
			style := tcell.StyleDefault.Background(bg).Foreground(labelColor)
			r, second := sym.Empty, ' '
			if filled[[2]int{row, col}] {
				style = style.Foreground(filledColor)
				r, second = sym.Filled, sym.Filled
			}
			screen.SetContent(startX+col*2, startY+row, r, nil, style)
			screen.SetContent(startX+col*2+1, startY+row, second, nil, style)
		}
	}

	info := fmt.Sprintf("Board: %d  Blocks: %d", cc.selectedBoardColor, cc.selectedFilledColor)
	for i, ch := range info {
		if startX+i < x+width-1 {
			screen.SetContent(startX+i, startY+size+1, ch, nil, tcell.StyleDefault)
		}
	}

	return x, y, width, height
}

// Flex returns the flex container for this UI.
func (cc *ColorConfigUI) Flex() *tview.Flex {
	return cc.flex
}

// SetInputCapture sets the input capture for the color list.
func (cc *ColorConfigUI) SetInputCapture(capture func(event *tcell.EventKey) *tcell.EventKey) {
	cc.colorList.SetInputCapture(capture)
}

// ToggleMode switches between board color and block color editing.
func (cc *ColorConfigUI) ToggleMode() {
	cc.editingFilled = !cc.editingFilled
	cc.populateColorList()
}
