package cli

import (
	"fmt"
	"strings"

	"td/internal/task"

	"github.com/mattn/go-runewidth"
	flag "github.com/spf13/pflag"
)

const lsHelp = `  ls [--done|--pending]  List tasks with their positions`

// maxTitleCols caps the display width of a title in a listing.
// The stored title is untouched; this is presentation only.
const maxTitleCols = 72

func cmdLs(o *IO, sess *session, args []string) error {
	flagSet := flag.NewFlagSet("ls", flag.ContinueOnError)
	flagSet.SetOutput(&strings.Builder{})
	flagSet.Usage = func() {
		o.Println("Usage: td ls [--done|--pending]")
		o.Println()
		o.Println("List tasks with their 1-based positions.")
	}

	doneOnly := flagSet.Bool("done", false, "Show only done tasks")
	pendingOnly := flagSet.Bool("pending", false, "Show only pending tasks")

	if hasHelpFlag(args) {
		flagSet.Usage()

		return nil
	}

	parseErr := flagSet.Parse(args)
	if parseErr != nil {
		return parseErr
	}

	tasks := sess.list.View()
	if len(tasks) == 0 {
		o.Println("no tasks")

		return nil
	}

	for i, t := range tasks {
		if *doneOnly && !t.Done {
			continue
		}

		if *pendingOnly && t.Done {
			continue
		}

		o.Println(formatTaskLine(i+1, t))
	}

	return nil
}

// formatTaskLine renders one listing line: position, done marker, title.
// Wide runes count by display width when the title is shortened.
func formatTaskLine(pos int, t task.Task) string {
	marker := " "
	if t.Done {
		marker = "x"
	}

	return fmt.Sprintf("%3d. [%s] %s", pos, marker, runewidth.Truncate(t.Title, maxTitleCols, "..."))
}
