// Package main is the entry point for the jjdiff change selector.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dshills/jjdiff/internal/change"
	"github.com/dshills/jjdiff/internal/config"
	"github.com/dshills/jjdiff/internal/diff"
	"github.com/dshills/jjdiff/internal/editor"
	"github.com/dshills/jjdiff/internal/render"
	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

type options struct {
	oldRoot, newRoot string
	print            bool
	debug            bool
	logFile          string
	showVersion      bool
}

func parseFlags() options {
	var opts options
	flag.BoolVar(&opts.print, "print", false, "print the computed diff non-interactively and exit")
	flag.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	flag.StringVar(&opts.logFile, "log-file", "", "write logs to this file instead of stderr")
	flag.BoolVar(&opts.showVersion, "version", false, "print version information")
	flag.Parse()

	args := flag.Args()
	if len(args) >= 1 {
		opts.oldRoot = args[0]
	}
	if len(args) >= 2 {
		opts.newRoot = args[1]
	}
	return opts
}

func setupLogging(opts options) (*logrus.Logger, func(), error) {
	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)
	if opts.debug {
		log.SetLevel(logrus.DebugLevel)
	}

	cleanup := func() {}
	if opts.logFile != "" {
		f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, cleanup, fmt.Errorf("open log file: %w", err)
		}
		log.SetOutput(f)
		cleanup = func() { f.Close() }
	} else {
		log.SetOutput(os.Stderr)
	}
	return log, cleanup, nil
}

func run() int {
	opts := parseFlags()
	if opts.showVersion {
		fmt.Printf("jjdiff %s (%s, %s)\n", version, commit, date)
		return 0
	}
	if opts.oldRoot == "" || opts.newRoot == "" {
		fmt.Fprintln(os.Stderr, "usage: jjdiff [--print] [--debug] [--log-file path] OLD NEW")
		return 2
	}

	log, cleanup, err := setupLogging(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "jjdiff: %v\n", err)
		return 1
	}
	defer cleanup()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "jjdiff: %v\n", err)
		return 1
	}

	keymap, err := config.BuildKeymap(cfg.Keybindings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "jjdiff: %v\n", err)
		return 1
	}

	// Host handshake: delete the instructions file before diffing. A
	// missing file is not an error.
	instructionsPath := opts.newRoot + string(os.PathSeparator) + "JJ-INSTRUCTIONS"
	if err := os.Remove(instructionsPath); err != nil && !os.IsNotExist(err) {
		log.WithError(err).Warn("failed to remove JJ-INSTRUCTIONS")
	}

	deprioritize := config.Deprioritizer(cfg.Diff.Deprioritize)

	changes, err := diff.Diff(opts.oldRoot, opts.newRoot, deprioritize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "jjdiff: %v\n", err)
		return 1
	}

	if opts.print {
		printChanges(changes)
		return 0
	}

	log.WithField("changes", len(changes)).Debug("starting editor")
	ed := editor.New(changes)

	if !ed.Done() {
		if err := runEditor(ed, keymap, log); err != nil {
			fmt.Fprintf(os.Stderr, "jjdiff: %v\n", err)
			return 1
		}
	}

	refs, err := ed.Result()
	if err != nil {
		if err == editor.ErrCancelled {
			return 1
		}
		fmt.Fprintf(os.Stderr, "jjdiff: %v\n", err)
		return 1
	}

	// Split yields (OLD->SEL, SEL->NEW). NEW already holds the new tree's
	// content, so reverting SEL->NEW on it in place turns NEW into SEL:
	// exactly the selected changes, applied to OLD's starting point.
	_, selToNew := change.Split(changes, refs)
	revert := change.Reverse(selToNew, deprioritize)
	if err := change.Apply(opts.newRoot, revert); err != nil {
		fmt.Fprintf(os.Stderr, "jjdiff: apply: %v\n", err)
		return 1
	}

	return 0
}

func runEditor(ed *editor.Editor, keymap config.Keymap, log *logrus.Logger) error {
	backend, err := render.NewBackend()
	if err != nil {
		return err
	}
	defer backend.Close()

	shouldDraw := true
	for !ed.Done() {
		if shouldDraw {
			backend.Draw(render.Frame(ed, ed.IncludedSet()))
			shouldDraw = false
		}

		ev := backend.PollEvent()
		switch e := ev.(type) {
		case *tcell.EventResize:
			shouldDraw = true
		case *tcell.EventKey:
			cmd, ok := keymap.Lookup(render.KeyEventFrom(e))
			if !ok {
				log.WithField("key", e.Name()).Debug("unknown key, ignored")
				continue
			}
			dispatch(ed, cmd)
			shouldDraw = true
		}
	}
	return nil
}

func dispatch(ed *editor.Editor, cmd config.Command) {
	switch cmd {
	case config.CommandExit:
		ed.Exit()
	case config.CommandNextCursor:
		ed.NextCursor()
	case config.CommandPrevCursor:
		ed.PrevCursor()
	case config.CommandFirstCursor:
		ed.FirstCursor()
	case config.CommandLastCursor:
		ed.LastCursor()
	case config.CommandShrinkCursor:
		ed.ShrinkCursor()
	case config.CommandGrowCursor:
		ed.GrowCursor()
	case config.CommandSelectCursor:
		ed.SelectCursor()
	case config.CommandSelectAll:
		ed.SelectAll()
	case config.CommandConfirm:
		ed.Confirm()
	case config.CommandUndo:
		ed.Undo()
	case config.CommandRedo:
		ed.Redo()
	}
}

func printChanges(changes []change.Change) {
	// --print never opens the tcell screen; it only needs to know
	// whether stdout is a terminal worth coloring at all.
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		color.NoColor = true
	}

	added := color.New(color.FgGreen)
	deleted := color.New(color.FgRed)
	title := color.New(color.Bold)

	for _, c := range changes {
		title.Println(changeSummary(c))
		for _, l := range change.Lines(c) {
			switch l.Status() {
			case change.StatusAdded:
				added.Printf("+ %s\n", *l.New)
			case change.StatusDeleted:
				deleted.Printf("- %s\n", *l.Old)
			case change.StatusChanged:
				deleted.Printf("- %s\n", *l.Old)
				added.Printf("+ %s\n", *l.New)
			default:
				fmt.Printf("  %s\n", *l.Old)
			}
		}
	}
}

func changeSummary(c change.Change) string {
	switch t := c.(type) {
	case change.Rename:
		return fmt.Sprintf("%s -> %s", t.OldPath, t.NewPath)
	case change.ChangeMode:
		return fmt.Sprintf("%s (mode change)", t.Path)
	case change.AddFile:
		return fmt.Sprintf("%s (added)", t.Path)
	case change.ModifyFile:
		return t.Path
	case change.DeleteFile:
		return fmt.Sprintf("%s (deleted)", t.Path)
	case change.AddBinary:
		return fmt.Sprintf("%s (added, binary)", t.Path)
	case change.ModifyBinary:
		return fmt.Sprintf("%s (binary)", t.Path)
	case change.DeleteBinary:
		return fmt.Sprintf("%s (deleted, binary)", t.Path)
	case change.AddSymlink:
		return fmt.Sprintf("%s (added symlink -> %s)", t.Path, t.To)
	case change.ModifySymlink:
		return fmt.Sprintf("%s (symlink %s -> %s)", t.Path, t.OldTo, t.NewTo)
	case change.DeleteSymlink:
		return fmt.Sprintf("%s (deleted symlink)", t.Path)
	default:
		return ""
	}
}
