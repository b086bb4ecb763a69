package cli

import (
	"strings"

	"td/internal/task"

	flag "github.com/spf13/pflag"
)

const addHelp = `  add <title>            Add a task, prints its position`

func cmdAdd(o *IO, sess *session, args []string) error {
	flagSet := flag.NewFlagSet("add", flag.ContinueOnError)
	flagSet.SetOutput(&strings.Builder{})
	flagSet.Usage = func() {
		o.Println("Usage: td add <title>")
		o.Println()
		o.Println("Add a new pending task. Prints its position on success.")
	}

	if hasHelpFlag(args) {
		flagSet.Usage()

		return nil
	}

	parseErr := flagSet.Parse(args)
	if parseErr != nil {
		return parseErr
	}

	// The title may arrive as several shell words.
	t, truncated, err := sess.list.Add(strings.Join(flagSet.Args(), " "))
	if err != nil {
		return err
	}

	if truncated {
		o.Warnf("title truncated to %d characters", task.MaxTitleLen)
	}

	persistErr := sess.persist()
	if persistErr != nil {
		return persistErr
	}

	o.Printf("%d. %s\n", sess.list.Len(), t.Title)

	return nil
}
