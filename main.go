// blockudoku-term is a terminal Blockudoku puzzle: place tray pieces on a
// 9x9 board and clear full rows, columns and 3x3 boxes.
package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"

	"github.com/adrg/xdg"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/urfave/cli/v3"

	"blockudoku-term/config"
	"blockudoku-term/engine"
	"blockudoku-term/engine/blocks"
	"blockudoku-term/logx"
	"blockudoku-term/shapes"
	"blockudoku-term/store"
	"blockudoku-term/ui"
)

// Version is set at build time via ldflags
var Version = "dev"

const logFile = "blockudoku-term/blockudoku.log"

var app *tview.Application
var rootPage *tview.Pages
var gameBoard *ui.BlockBoardUI
var gameFrame *tview.Flex
var gameHint *tview.TextView
var gameOver *ui.GameOverCard
var setupUI *ui.GameSetupUI
var cfg *config.Config
var logger logx.Logger
var bestStore engine.BestScoreStore

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "blockudoku: %v\n", err)
		os.Exit(1)
	}
}

func newCommand() *cli.Command {
	sf := &cli.Int64Flag{
		Name:  "seed",
		Usage: "seed for the piece generator (0 = random)",
	}
	lf := &cli.StringFlag{
		Name:    "level",
		Aliases: []string{"l"},
		Value:   "info",
		Usage:   "logger level (debug, info, warn, error)",
	}
	df := &cli.BoolFlag{
		Name:    "debug",
		Aliases: []string{"d"},
		Usage:   "development logger encoding",
	}
	cf := &cli.BoolFlag{
		Name:    "console",
		Aliases: []string{"c"},
		Usage:   "log to stdout (ignored while the game is on screen)",
	}
	ff := &cli.BoolFlag{
		Name:  "focus",
		Usage: "start in focus mode (board only)",
	}
	rf := &cli.BoolFlag{
		Name:  "reset",
		Usage: "forget the best score",
	}
	logff := []cli.Flag{lf, df, cf}
	playff := []cli.Flag{sf, lf, df, cf, ff}

	return &cli.Command{
		Name:    "blockudoku",
		Usage:   "Blockudoku in the terminal",
		Version: Version,
		Flags:   playff,
		Commands: []*cli.Command{
			{
				Name:  "play",
				Usage: "start a game right away",
				Flags: playff,
				Action: func(ctx context.Context, c *cli.Command) error {
					return runGame(c, true)
				},
			},
			{
				Name:  "shapes",
				Usage: "print every piece the game can deal",
				Action: func(ctx context.Context, c *cli.Command) error {
					return printShapes(c.Root().Writer)
				},
			},
			{
				Name:  "best",
				Usage: "print the best score",
				Flags: append([]cli.Flag{rf}, logff...),
				Action: func(ctx context.Context, c *cli.Command) error {
					return runBest(c)
				},
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return runGame(c, c.IsSet("seed") || c.Bool("focus"))
		},
	}
}

// getLogger builds the zap logger from the command flags. Console output is
// refused while tview owns the terminal.
func getLogger(w io.Writer, c *cli.Command, interactive bool) *logx.Logx {
	l := logx.NewLogx(
		logx.GetLoggerLevelByString(c.String("level")),
		c.Bool("debug"),
		c.Bool("console") && !interactive,
	)
	l.InitLogger(w)
	return l
}

func openLogFile() (*os.File, error) {
	path, err := xdg.StateFile(logFile)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve log path: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return file, nil
}

// openBestScore returns the on-disk best score store, or an in-memory one
// when the data directory is unusable.
func openBestScore(log logx.Logger) store.BestScore {
	fs, err := store.Open()
	if err != nil {
		log.Warnf("best score will not be saved: %v", err)
		return store.BestScore{KV: store.NewMemoryStore()}
	}
	log.Debugf("store at %s", fs.Path())
	return store.BestScore{KV: fs}
}

func printShapes(w io.Writer) error {
	catalog, err := shapes.NewCatalog(shapes.DefaultBaseShapes(), rand.New(rand.NewSource(1)))
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%d slots\n\n", catalog.Len())
	for i, s := range catalog.Shapes() {
		rows, cols := s.Size()
		fmt.Fprintf(w, "#%d  %d cells, %dx%d\n%s\n\n", i+1, len(s), rows, cols, s)
	}
	return nil
}

func runBest(c *cli.Command) error {
	file, err := openLogFile()
	if err != nil {
		return err
	}
	defer file.Close()
	log := getLogger(file, c, false)
	defer log.Sync()

	best := openBestScore(log)
	if c.Bool("reset") {
		if err := best.ResetBest(); err != nil {
			return fmt.Errorf("failed to reset best score: %w", err)
		}
		log.Info("best score reset")
		fmt.Fprintln(c.Root().Writer, "best score reset")
		return nil
	}
	score, err := best.LoadBest()
	if err != nil {
		return err
	}
	fmt.Fprintf(c.Root().Writer, "best score: %d\n", score)
	return nil
}

func runGame(c *cli.Command, quickStart bool) error {
	file, err := openLogFile()
	if err != nil {
		return err
	}
	defer file.Close()
	log := getLogger(file, c, true)
	defer log.Sync()
	logger = log

	cfg, err = config.InitConfig()
	if err != nil {
		return err
	}
	bestStore = openBestScore(log)

	baseCfg := cfg.GameConfig()
	if c.IsSet("seed") {
		baseCfg.Seed = c.Int64("seed")
	}
	best, err := bestStore.LoadBest()
	if err != nil {
		log.Warnf("failed to load best score: %v", err)
	}

	app = tview.NewApplication()
	rootPage = tview.NewPages()
	rootPage.SetBorder(true).SetTitle(" ■ blockudoku ")

	// Game view setup
	gameHint = tview.NewTextView()
	gameHint.SetBorder(true)
	gameHint.SetBorderPadding(0, 0, 1, 1)
	gameHint.SetTitle(" Status ")
	gameHint.SetTitleAlign(tview.AlignLeft)
	gameBoard = ui.NewBlockBoard(app, cfg, gameHint)
	gameFrame = ui.CreateGameLayout(gameBoard, gameHint)

	gameBoard.Box.SetInputCapture(handleBoardKey)

	gameOver = ui.NewGameOverCard(
		func() {
			rootPage.HidePage("gameover")
			gameBoard.Undo()
		},
		func() {
			rootPage.HidePage("gameover")
			gameBoard.Reset()
		},
		func() {
			rootPage.HidePage("gameover")
			gameBoard.Close()
			showSetup()
		},
	)
	gameBoard.OnGameOver(func(score int) {
		gameOver.SetScore(score, gameBoard.State.Best)
		rootPage.ShowPage("gameover")
	})

	// Game setup screen
	setupUI = ui.NewGameSetup(baseCfg, best,
		func(gameCfg engine.GameConfig) {
			startGame(gameCfg)
		},
		func() {
			app.Stop()
		},
		func() {
			rootPage.SwitchToPage("colors")
		},
	)

	// Color configuration screen
	colorConfig := ui.NewColorConfig(cfg, func(err error) {
		if err != nil {
			log.Warnf("failed to save config: %v", err)
		}
		gameBoard.SetConfig(cfg)
		showSetup()
	})
	colorConfig.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEsc || (event.Key() == tcell.KeyRune && event.Rune() == 'q') {
			showSetup()
			return nil
		}
		if event.Key() == tcell.KeyTab {
			colorConfig.ToggleMode()
			return nil
		}
		return event
	})

	rootPage.AddPage("setup", ui.CreateCenteredForm(setupUI.Form(), 60, 12), true, !quickStart)
	rootPage.AddPage("gameview", gameFrame, true, quickStart)
	rootPage.AddPage("colors", colorConfig.Flex(), true, false)
	rootPage.AddPage("gameover", ui.CreateCenteredForm(gameOver, 40, 12), true, false)

	if quickStart {
		if !startGame(baseCfg) {
			showSetup()
		} else if c.Bool("focus") {
			gameBoard.SetFocusMode(true)
			ui.BuildFocusLayout(gameFrame, gameBoard)
		}
	}

	log.Infof("blockudoku %s started", Version)
	if err := app.SetRoot(rootPage, true).Run(); err != nil {
		return err
	}
	gameBoard.Close()
	return nil
}

func handleBoardKey(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyUp:
		gameBoard.MoveSelection(-1, 0)
	case tcell.KeyDown:
		gameBoard.MoveSelection(1, 0)
	case tcell.KeyLeft:
		gameBoard.MoveSelection(0, -1)
	case tcell.KeyRight:
		gameBoard.MoveSelection(0, 1)
	case tcell.KeyTab:
		gameBoard.CyclePiece()
		return nil
	case tcell.KeyEnter:
		gameBoard.PlaceSelected()
	case tcell.KeyRune:
		switch event.Rune() {
		case 'h':
			gameBoard.MoveSelection(0, -1)
		case 'j':
			gameBoard.MoveSelection(1, 0)
		case 'k':
			gameBoard.MoveSelection(-1, 0)
		case 'l':
			gameBoard.MoveSelection(0, 1)
		case '1', '2', '3':
			gameBoard.SelectPiece(int(event.Rune() - '1'))
		case 'u':
			gameBoard.Undo()
		case 'r':
			gameBoard.Reset()
		case 'f':
			if gameBoard.ToggleFocusMode() {
				ui.BuildFocusLayout(gameFrame, gameBoard)
			} else {
				ui.RebuildNormalLayout(gameFrame, gameBoard, gameHint)
			}
		case 'q':
			gameBoard.Close()
			showSetup()
			return nil
		}
	}
	return event
}

// showSetup returns to the setup page with the best score reloaded, since a
// finished game may have raised it.
func showSetup() {
	best, err := bestStore.LoadBest()
	if err != nil {
		logger.Warnf("failed to load best score: %v", err)
	}
	if gameBoard != nil {
		best = max(best, gameBoard.State.Best)
	}
	setupUI.SetBest(best)
	rootPage.SwitchToPage("setup")
}

// startGame builds a session for gameCfg and shows the board. It returns
// false when the session could not be created.
func startGame(gameCfg engine.GameConfig) bool {
	session, err := blocks.NewSession(gameCfg,
		blocks.WithStore(bestStore),
		blocks.WithLogger(logger),
	)
	if err != nil {
		logger.Errorf("failed to start game: %v", err)
		modal := tview.NewModal().
			SetText(fmt.Sprintf("Failed to start game:\n%s", err.Error())).
			AddButtons([]string{"OK"}).
			SetDoneFunc(func(buttonIndex int, buttonLabel string) {
				rootPage.RemovePage("error")
			})
		rootPage.AddPage("error", modal, true, true)
		return false
	}
	logger.Infof("new game, seed %d", gameCfg.Seed)
	gameBoard.ConnectEngine(session, gameCfg.ClearDelay)
	rootPage.SwitchToPage("gameview")
	return true
}
