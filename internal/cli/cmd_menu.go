package cli

import (
	"bufio"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"td/internal/task"

	"github.com/peterh/liner"
)

const menuHelp = `  menu                   Interactive menu (default with no command)`

// errInterrupted reports that the interactive session ended on a termination
// signal. The final save has already been attempted when it is returned.
var errInterrupted = errors.New("interrupted")

// promptResult carries one line read by the prompt goroutine.
type promptResult struct {
	line string
	err  error
}

// cmdMenu runs the interactive session: one load at startup (already done by
// openSession), a save after every successful mutation, and one final save
// attempt on quit or interruption. A failed save is reported and the session
// keeps going with its in-memory state intact.
//
// All list mutations and saves happen on this goroutine. A termination
// signal is delivered into the prompt loop, so the final save never runs
// concurrently with a mutation.
func cmdMenu(o *IO, sess *session, in io.Reader, sig <-chan os.Signal, args []string) error {
	if hasHelpFlag(args) {
		o.Println("Usage: td menu")
		o.Println()
		o.Println("Start the interactive menu. Running td with no command does the same.")

		return nil
	}

	p := newPrompter(o, in)
	defer p.Close()

	o.Println("td - task list")
	o.Println("commands: ls, add <title>, done <n>, rm <n>, clear, help, quit")

	interrupted := false

loop:
	for {
		// The blocking read runs off the main goroutine so a signal can
		// end the loop while the prompt is idle. The buffered channel lets
		// an abandoned read finish without anyone receiving it.
		resCh := make(chan promptResult, 1)

		go func() {
			line, err := p.Prompt("td> ")
			resCh <- promptResult{line: line, err: err}
		}()

		var res promptResult

		select {
		case <-sig:
			interrupted = true

			break loop
		case res = <-resCh:
		}

		if res.err != nil {
			if errors.Is(res.err, liner.ErrPromptAborted) || errors.Is(res.err, io.EOF) {
				break
			}

			return res.err
		}

		line := strings.TrimSpace(res.line)
		if line == "" {
			continue
		}

		p.AppendHistory(line)

		cmd, rest, _ := strings.Cut(line, " ")
		if !menuDispatch(o, sess, p, strings.ToLower(cmd), strings.TrimSpace(rest)) {
			break
		}
	}

	// Final persist on the way out. A failure is logged only; the exit
	// path does not change.
	if err := sess.persist(); err != nil {
		o.ErrPrintln("error saving tasks on exit:", err)
	}

	if interrupted {
		return errInterrupted
	}

	o.Println("bye")

	return nil
}

// menuDispatch executes one menu command. Returns false when the session
// should end.
func menuDispatch(o *IO, sess *session, p prompter, cmd, rest string) bool {
	switch cmd {
	case "quit", "exit", "q":
		return false

	case "help", "?":
		o.Println("commands:")
		o.Println("  ls             list tasks")
		o.Println("  add <title>    add a task")
		o.Println("  done <n>       mark task n as done")
		o.Println("  rm <n>         remove task n")
		o.Println("  clear          remove all tasks")
		o.Println("  quit           save and exit")

	case "ls", "view":
		menuLs(o, sess)

	case "add":
		menuAdd(o, sess, rest)

	case "done", "mark":
		menuMutateAt(o, sess, rest, sess.list.MarkDone, "done")

	case "rm", "remove":
		menuMutateAt(o, sess, rest, sess.list.RemoveAt, "removed")

	case "clear":
		menuClear(o, sess, p)

	default:
		o.Println("unknown command:", cmd, "(type 'help' for commands)")
	}

	return true
}

func menuLs(o *IO, sess *session) {
	tasks := sess.list.View()
	if len(tasks) == 0 {
		o.Println("no tasks")

		return
	}

	for i, t := range tasks {
		o.Println(formatTaskLine(i+1, t))
	}
}

func menuAdd(o *IO, sess *session, rest string) {
	t, truncated, err := sess.list.Add(rest)
	if err != nil {
		o.Println("error:", err)

		return
	}

	if truncated {
		o.Println("note: title was truncated")
	}

	menuPersist(o, sess)
	o.Printf("%d. %s\n", sess.list.Len(), t.Title)
}

func menuMutateAt(o *IO, sess *session, rest string, op func(int) (task.Task, error), verb string) {
	pos, err := parsePosition(strings.Fields(rest))
	if err != nil {
		o.Println("error:", err)

		return
	}

	t, err := op(pos)
	if err != nil {
		o.Println("error:", err)

		return
	}

	menuPersist(o, sess)
	o.Printf("%s: %s\n", verb, t.Title)
}

func menuClear(o *IO, sess *session, p prompter) {
	if sess.list.Len() == 0 {
		o.Println("no tasks")

		return
	}

	answer, err := p.Prompt("remove all tasks? (y/N): ")
	if err != nil {
		o.Println("clear cancelled")

		return
	}

	answer = strings.ToLower(strings.TrimSpace(answer))
	if answer != "y" && answer != "yes" {
		o.Println("clear cancelled")

		return
	}

	sess.list.Clear()
	menuPersist(o, sess)
	o.Println("all tasks cleared")
}

// menuPersist saves after a mutation. A failure is reported but never rolls
// back the in-memory change or ends the session.
func menuPersist(o *IO, sess *session) {
	if err := sess.persist(); err != nil {
		o.ErrPrintln("error saving tasks:", err)
	}
}

// prompter abstracts line input so the menu works both on a real terminal
// (liner, with history and completion) and on a plain reader in tests.
type prompter interface {
	Prompt(prompt string) (string, error)
	AppendHistory(line string)
	Close() error
}

func newPrompter(o *IO, in io.Reader) prompter {
	if in == os.Stdin && liner.TerminalSupported() {
		return newLinerPrompter()
	}

	if in == nil {
		in = strings.NewReader("")
	}

	return &readerPrompter{o: o, scanner: bufio.NewScanner(in)}
}

// readerPrompter reads lines from a plain reader, echoing prompts to stdout.
type readerPrompter struct {
	o       *IO
	scanner *bufio.Scanner
}

func (r *readerPrompter) Prompt(prompt string) (string, error) {
	r.o.Printf("%s", prompt)

	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", err
		}

		return "", io.EOF
	}

	return r.scanner.Text(), nil
}

func (r *readerPrompter) AppendHistory(string) {}

func (r *readerPrompter) Close() error { return nil }

// linerPrompter wraps liner for real terminal sessions.
type linerPrompter struct {
	state *liner.State
}

func newLinerPrompter() *linerPrompter {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	state.SetCompleter(menuCompleter)

	if f, err := os.Open(menuHistoryFile()); err == nil {
		_, _ = state.ReadHistory(f)
		f.Close()
	}

	return &linerPrompter{state: state}
}

func (l *linerPrompter) Prompt(prompt string) (string, error) {
	return l.state.Prompt(prompt)
}

func (l *linerPrompter) AppendHistory(line string) {
	l.state.AppendHistory(line)
}

func (l *linerPrompter) Close() error {
	if path := menuHistoryFile(); path != "" {
		if f, err := os.Create(path); err == nil {
			_, _ = l.state.WriteHistory(f)
			f.Close()
		}
	}

	return l.state.Close()
}

func menuHistoryFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".td_history")
}

// menuCompleter provides tab completion for menu commands.
func menuCompleter(line string) []string {
	commands := []string{
		"ls", "view", "add", "done", "mark",
		"rm", "remove", "clear", "help", "quit", "exit", "q",
	}

	var completions []string

	lower := strings.ToLower(line)
	for _, cmd := range commands {
		if strings.HasPrefix(cmd, lower) {
			completions = append(completions, cmd)
		}
	}

	return completions
}
