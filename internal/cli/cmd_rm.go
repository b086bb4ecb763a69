package cli

import (
	"strings"

	flag "github.com/spf13/pflag"
)

const rmHelp = `  rm <n>                 Remove task n`

func cmdRm(o *IO, sess *session, args []string) error {
	flagSet := flag.NewFlagSet("rm", flag.ContinueOnError)
	flagSet.SetOutput(&strings.Builder{})
	flagSet.Usage = func() {
		o.Println("Usage: td rm <n>")
		o.Println()
		o.Println("Remove the task at position n. Later tasks shift down by one.")
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

	t, err := sess.list.RemoveAt(pos)
	if err != nil {
		return err
	}

	persistErr := sess.persist()
	if persistErr != nil {
		return persistErr
	}

	o.Printf("removed: %s\n", t.Title)

	return nil
}
