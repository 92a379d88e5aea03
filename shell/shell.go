package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/domino14/wordhound/automatic"
	"github.com/domino14/wordhound/config"
	"github.com/domino14/wordhound/lexicon"
	"github.com/domino14/wordhound/solver"
)

// How often the progress printer is willing to emit a line. The solver
// reports every subproblem; throttling is our job, not its.
const progressInterval = 500 * time.Millisecond

type ShellController struct {
	l   *readline.Instance
	cfg *config.Config

	words      []string
	hints      []lexicon.Hint
	candidates []string

	sol *solver.Solver
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func NewShellController(cfg *config.Config) *ShellController {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mwordhound>\033[0m ",
		HistoryFile:     "/tmp/readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}

	sol := &solver.Solver{}
	if err := sol.Init(); err != nil {
		panic(err)
	}
	if threads := cfg.GetInt("threads"); threads > 0 {
		sol.SetThreads(threads)
	}
	sol.SetMemoOptim(cfg.GetBool("memo"))
	sol.SetMemoFraction(cfg.GetFloat64("memo-fraction"))

	return &ShellController{l: l, cfg: cfg, sol: sol}
}

func (sc *ShellController) out() io.Writer {
	return sc.l.Stderr()
}

func (sc *ShellController) loadLexicon(path string) error {
	if path == "" {
		path = sc.cfg.GetString("dictionary-path")
	}
	words, err := lexicon.Load(sc.cfg, path)
	if err != nil {
		return err
	}
	sc.words = words
	sc.hints = nil
	sc.candidates = words
	showMessage(fmt.Sprintf("%d words loaded from %v", len(words), path), sc.out())
	return nil
}

func (sc *ShellController) applyHints(spec string) error {
	if sc.words == nil {
		return errors.New("please load a word list first with the `load` command")
	}
	hints, err := lexicon.ParseHints(spec)
	if err != nil {
		return err
	}
	candidates, err := lexicon.Filter(sc.words, hints)
	if err != nil {
		return err
	}
	sc.hints = hints
	sc.candidates = candidates
	for _, h := range hints {
		showMessage(h.Pattern.ColoredWord(h.Word), sc.out())
	}
	if len(candidates) == 0 {
		showMessage("no possibilities remain", sc.out())
		return nil
	}
	showMessage(fmt.Sprintf("%d possibilities remain", len(candidates)), sc.out())
	if len(candidates) <= 20 {
		showMessage(strings.Join(candidates, " "), sc.out())
	}
	return nil
}

// progressPrinter returns a rate-limited solver.ProgressFunc that renders
// the deepest current recursion path.
func (sc *ShellController) progressPrinter() solver.ProgressFunc {
	var mu sync.Mutex
	var lastEmit time.Time
	return func(ev solver.Event) {
		mu.Lock()
		defer mu.Unlock()
		now := time.Now()
		if now.Sub(lastEmit) < progressInterval {
			return
		}
		lastEmit = now

		var sb strings.Builder
		for i, fr := range ev.Path {
			if i > 0 {
				sb.WriteString(" > ")
			}
			fmt.Fprintf(&sb, "%d/%d %s", fr.GuessIndex+1, fr.Candidates, fr.Guess)
		}
		if ev.Kind == solver.EventDone {
			fmt.Fprintf(&sb, " => %s", ev.Best.String())
		}
		showMessage(sb.String(), sc.out())
	}
}

func (sc *ShellController) solve() error {
	if sc.words == nil {
		return errors.New("please load a word list first with the `load` command")
	}
	if len(sc.candidates) == 0 {
		return errors.New("no possibilities remain; check your hints")
	}
	sc.sol.SetProgressFn(sc.progressPrinter())
	defer sc.sol.SetProgressFn(nil)

	start := time.Now()
	ev, err := sc.sol.Solve(context.Background(), sc.candidates)
	if err != nil {
		return err
	}
	showMessage(fmt.Sprintf("best guess: %v", ev.Guess), sc.out())
	showMessage(fmt.Sprintf("expected additional guesses: %v (%v)",
		ev.Expected.RatString(), ev.Expected.FloatString(2)), sc.out())
	showMessage(fmt.Sprintf("%d nodes in %v", sc.sol.Nodes(), time.Since(start)), sc.out())
	return nil
}

func (sc *ShellController) autoplay() error {
	if sc.words == nil {
		return errors.New("please load a word list first with the `load` command")
	}
	summary, err := automatic.RunAll(context.Background(), sc.words,
		sc.sol.Threads(), sc.sol.MemoOptim())
	if err != nil {
		return err
	}
	return summary.Display(sc.l.Stdout())
}

func (sc *ShellController) set(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: set <option> <value>")
	}
	switch args[0] {
	case "threads":
		t, err := strconv.Atoi(args[1])
		if err != nil {
			return err
		}
		sc.sol.SetThreads(t)
		showMessage(fmt.Sprintf("threads set to %d", sc.sol.Threads()), sc.out())
	case "memo":
		switch args[1] {
		case "on":
			sc.sol.SetMemoOptim(true)
		case "off":
			sc.sol.SetMemoOptim(false)
		default:
			return errors.New("memo must be on or off")
		}
		showMessage(fmt.Sprintf("memo set to %v", sc.sol.MemoOptim()), sc.out())
	default:
		return fmt.Errorf("unknown option %v", args[0])
	}
	return nil
}

func (sc *ShellController) status() {
	hintStrs := make([]string, len(sc.hints))
	for i, h := range sc.hints {
		hintStrs[i] = h.String()
	}
	showMessage(fmt.Sprintf("words: %d", len(sc.words)), sc.out())
	showMessage(fmt.Sprintf("hints: %v", strings.Join(hintStrs, ",")), sc.out())
	showMessage(fmt.Sprintf("candidates: %d", len(sc.candidates)), sc.out())
	showMessage(fmt.Sprintf("threads: %d  memo: %v", sc.sol.Threads(), sc.sol.MemoOptim()), sc.out())
}

func (sc *ShellController) handle(line string) error {
	fields, err := shellquote.Split(line)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		return nil
	}
	cmd, args := fields[0], fields[1:]
	switch cmd {
	case "load":
		path := ""
		if len(args) > 0 {
			path = args[0]
		}
		return sc.loadLexicon(path)
	case "hints":
		if len(args) != 1 {
			return errors.New("usage: hints word:CODE[,word:CODE...] (G=exact Y=present R=absent)")
		}
		return sc.applyHints(args[0])
	case "solve":
		return sc.solve()
	case "autoplay":
		return sc.autoplay()
	case "set":
		return sc.set(args)
	case "status":
		sc.status()
		return nil
	case "help":
		usage(sc.out())
		return nil
	default:
		return fmt.Errorf("unknown command %v; try `help`", cmd)
	}
}

// Loop runs the interactive shell until exit or EOF.
func (sc *ShellController) Loop(sig chan os.Signal) {
readlineLoop:
	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		}
		line = strings.TrimSpace(line)
		switch {
		case line == "bye" || line == "exit":
			break readlineLoop
		case line == "":
		default:
			if err := sc.handle(line); err != nil {
				log.Err(err).Msg("command-error")
				showMessage("error: "+err.Error(), sc.out())
			}
		}
	}
	sig <- syscall.SIGINT
}

// Execute runs command lines non-interactively; semicolons separate
// commands, so e.g. `load; hints grant:GGYRR; solve` works as a one-shot.
func (sc *ShellController) Execute(sig chan os.Signal, line string) {
	for _, cmd := range strings.Split(line, ";") {
		cmd = strings.TrimSpace(cmd)
		if cmd == "" {
			continue
		}
		if err := sc.handle(cmd); err != nil {
			showMessage("error: "+err.Error(), sc.out())
			return
		}
	}
}

func (sc *ShellController) Cleanup() {
	sc.l.Close()
}
