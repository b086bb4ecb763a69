package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"td/internal/fs"
	"td/internal/task"
)

const helpFlag = "--help"

// Run is the main entry point. Returns exit code.
func Run(in io.Reader, out io.Writer, errOut io.Writer, args []string, env map[string]string, sig <-chan os.Signal) int {
	// Parse global flags
	flags, err := parseGlobalFlags(args[1:])
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	cfg, err := task.LoadConfig(task.LoadConfigInput{
		WorkDirOverride:   flags.workDir,
		ConfigPath:        flags.configPath,
		TasksFileOverride: flags.tasksFile,
		Env:               env,
	})
	if err != nil {
		fprintln(errOut, "error:", err)
		printUsage(errOut)

		return 1
	}

	// No command means interactive mode
	cmd := "menu"
	cmdArgs := []string{}

	if len(flags.remaining) > 0 {
		cmd = flags.remaining[0]
		cmdArgs = flags.remaining[1:]
	}

	// Handle help flags
	if cmd == "-h" || cmd == helpFlag || cmd == "help" {
		printUsage(out)

		return 0
	}

	ioCtx := NewIO(out, errOut)
	fsys := fs.NewReal()

	sess, err := openSession(ioCtx, fsys, cfg)
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	// Dispatch to command
	var cmdErr error

	switch cmd {
	case "add":
		cmdErr = cmdAdd(ioCtx, sess, cmdArgs)
	case "ls":
		cmdErr = cmdLs(ioCtx, sess, cmdArgs)
	case "done":
		cmdErr = cmdDone(ioCtx, sess, cmdArgs)
	case "rm":
		cmdErr = cmdRm(ioCtx, sess, cmdArgs)
	case "clear":
		cmdErr = cmdClear(ioCtx, sess, in, cmdArgs)
	case "menu":
		cmdErr = cmdMenu(ioCtx, sess, in, sig, cmdArgs)
	case "print-config":
		cmdErr = cmdPrintConfig(ioCtx, cfg)
	default:
		fprintln(errOut, "error: unknown command:", cmd)
		printUsage(errOut)

		return 1
	}

	// The menu session ends with this sentinel after a termination signal;
	// the final save has already happened by then.
	if errors.Is(cmdErr, errInterrupted) {
		return 130
	}

	// Fatal error
	if cmdErr != nil {
		fprintln(errOut, "error:", cmdErr)

		return 1
	}

	// Finish handles warnings and exit code
	return ioCtx.Finish()
}

// session holds the state of one run: the filesystem, the resolved config,
// and the in-memory task list hydrated once at startup.
type session struct {
	fsys fs.FS
	cfg  task.Config
	list *task.List
}

// openSession hydrates the task list from storage. Load diagnostics become
// warnings; only catastrophic read failures surface as errors.
func openSession(o *IO, fsys fs.FS, cfg task.Config) (*session, error) {
	list, warnings, err := task.Load(fsys, cfg.TasksFileAbs)
	if err != nil {
		return nil, err
	}

	for _, w := range warnings {
		o.Warn(w)
	}

	return &session{fsys: fsys, cfg: cfg, list: list}, nil
}

// persist writes the current list back to storage. A failure leaves the
// in-memory list intact; callers report it without rolling anything back.
func (s *session) persist() error {
	return task.Save(s.fsys, s.list, s.cfg.TasksFileAbs)
}

type globalFlags struct {
	workDir    string
	configPath string
	tasksFile  string
	remaining  []string
}

func parseGlobalFlags(args []string) (globalFlags, error) {
	var flags globalFlags

	idx := 0
	for idx < len(args) {
		consumed, err := parseFlag(args, idx, &flags)
		if err != nil {
			return globalFlags{}, err
		}

		if consumed == 0 {
			// Not a flag, this is the command
			flags.remaining = args[idx:]

			break
		}

		idx += consumed
	}

	return flags, nil
}

// parseFlag tries to parse a flag at args[idx]. Returns number of args consumed (0 if not a flag).
func parseFlag(args []string, idx int, flags *globalFlags) (int, error) {
	arg := args[idx]

	// -C/--cwd flag (work directory)
	if (arg == "-C" || arg == "--cwd") && idx+1 < len(args) {
		flags.workDir = args[idx+1]

		return 2, nil
	}

	if after, ok := strings.CutPrefix(arg, "-C"); ok {
		flags.workDir = after

		return 1, nil
	}

	if after, ok := strings.CutPrefix(arg, "--cwd="); ok {
		flags.workDir = after

		return 1, nil
	}

	// -c/--config flag
	if arg == "-c" || arg == "--config" {
		if idx+1 >= len(args) {
			return 0, fmt.Errorf("%w: %s", task.ErrFlagRequiresArg, arg)
		}

		flags.configPath = args[idx+1]

		return 2, nil
	}

	if after, ok := strings.CutPrefix(arg, "--config="); ok {
		flags.configPath = after

		return 1, nil
	}

	// -f/--file flag (storage path override)
	if arg == "-f" || arg == "--file" {
		if idx+1 >= len(args) {
			return 0, fmt.Errorf("%w: %s", task.ErrFlagRequiresArg, arg)
		}

		flags.tasksFile = args[idx+1]

		return 2, nil
	}

	if after, ok := strings.CutPrefix(arg, "--file="); ok {
		flags.tasksFile = after

		return 1, nil
	}

	// -h/--help flags
	if arg == "-h" || arg == helpFlag {
		flags.remaining = []string{helpFlag}

		return len(args) - idx, nil
	}

	// Unknown flag
	if strings.HasPrefix(arg, "-") && arg != "-" {
		return 0, fmt.Errorf("%w: %s", task.ErrUnknownFlag, arg)
	}

	// Not a flag
	return 0, nil
}

func cmdPrintConfig(o *IO, cfg task.Config) error {
	formatted, err := task.FormatConfig(cfg)
	if err != nil {
		return err
	}

	o.Println(formatted)

	// Print sources
	o.Println("")
	o.Println("# Sources:")

	if cfg.Sources.Global != "" {
		o.Println("#   global:", cfg.Sources.Global)
	}

	if cfg.Sources.Project != "" {
		o.Println("#   project:", cfg.Sources.Project)
	}

	if cfg.Sources.Global == "" && cfg.Sources.Project == "" {
		o.Println("#   (using defaults only)")
	}

	return nil
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}

func hasHelpFlag(args []string) bool {
	for _, arg := range args {
		if arg == "-h" || arg == helpFlag {
			return true
		}
	}

	return false
}

func printUsage(writer io.Writer) {
	fprintln(writer, `td - single-user task list

Usage: td [options] [<command> [args]]

Running td without a command starts the interactive menu.

Options:
  -C, --cwd <dir>    Run as if started in <dir>
  -c, --config       Use specified config file
  -f, --file         Use specified tasks file

Commands:`)
	fprintln(writer, addHelp)
	fprintln(writer, lsHelp)
	fprintln(writer, doneHelp)
	fprintln(writer, rmHelp)
	fprintln(writer, clearHelp)
	fprintln(writer, menuHelp)
	fprintln(writer, `  print-config           Show resolved configuration`)
}
