package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"td/internal/task"

	flag "github.com/spf13/pflag"
)

var errPositionRequired = errors.New("task number is required")

const doneHelp = `  done <n>               Mark task n as done`

func cmdDone(o *IO, sess *session, args []string) error {
	flagSet := flag.NewFlagSet("done", flag.ContinueOnError)
	flagSet.SetOutput(&strings.Builder{})
	flagSet.Usage = func() {
		o.Println("Usage: td done <n>")
		o.Println()
		o.Println("Mark the task at position n as done. Already-done tasks stay done.")
	}

	if hasHelpFlag(args) {
		flagSet.Usage()

		return nil
	}

	parseErr := flagSet.Parse(args)
	if parseErr != nil {
		return parseErr
	}

	pos, err := parsePosition(flagSet.Args())
	if err != nil {
		return err
	}

	t, err := sess.list.MarkDone(pos)
	if err != nil {
		return err
	}

	persistErr := sess.persist()
	if persistErr != nil {
		return persistErr
	}

	o.Printf("done: %s\n", t.Title)

	return nil
}

// parsePosition converts the single positional argument into a 1-based task
// number. Non-numeric input is an invalid-input error, not a silent clamp;
// bounds are checked later by the list operation itself.
func parsePosition(args []string) (int, error) {
	if len(args) == 0 {
		return 0, errPositionRequired
	}

	pos, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", task.ErrIndexNotNumber, args[0])
	}

	return pos, nil
}
