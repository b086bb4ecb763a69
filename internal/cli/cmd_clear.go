package cli

import (
	"bufio"
	"io"
	"strings"

	flag "github.com/spf13/pflag"
)

const clearHelp = `  clear [--force]        Remove all tasks (asks for confirmation)`

func cmdClear(o *IO, sess *session, in io.Reader, args []string) error {
	flagSet := flag.NewFlagSet("clear", flag.ContinueOnError)
	flagSet.SetOutput(&strings.Builder{})
	flagSet.Usage = func() {
		o.Println("Usage: td clear [--force]")
		o.Println()
		o.Println("Remove all tasks. Asks for confirmation unless --force is given.")
	}

	force := flagSet.BoolP("force", "f", false, "Skip the confirmation prompt")

	if hasHelpFlag(args) {
		flagSet.Usage()

		return nil
	}

	parseErr := flagSet.Parse(args)
	if parseErr != nil {
		return parseErr
	}

	if sess.list.Len() == 0 {
		o.Println("no tasks")

		return nil
	}

	if !*force && !confirm(o, in, "remove all tasks? (y/N): ") {
		o.Println("clear cancelled")

		return nil
	}

	sess.list.Clear()

	persistErr := sess.persist()
	if persistErr != nil {
		return persistErr
	}

	o.Println("all tasks cleared")

	return nil
}

// confirm asks a yes/no question on the given reader. Anything other than
// "y"/"yes" (including EOF) counts as no.
func confirm(o *IO, in io.Reader, prompt string) bool {
	if in == nil {
		return false
	}

	o.Printf("%s", prompt)

	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		return false
	}

	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))

	return answer == "y" || answer == "yes"
}
