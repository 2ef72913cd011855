// Command relaxcg tags JSON sentences with a constraint grammar and checks
// grammar files.
//
//	$ relaxcg tag -grammar constr_gram.dat -in sentences.json -out tagged.json
//	$ relaxcg check -grammar constr_gram.dat
//	$ relaxcg match -pattern 'VMI*<comer>' -literal 'VMI3SP0<comer>'
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gonuts/commander"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

func allCommands() *commander.Command {
	return &commander.Command{
		UsageLine: os.Args[0] + " <command> [options]",
		Subcommands: []*commander.Command{
			tagCmd(),
			checkCmd(),
			matchCmd(),
		},
	}
}

func main() {
	if err := allCommands().Dispatch(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "**err**: %v\n", err)
		os.Exit(1)
	}
}

// verifyFlags fails when a required flag was left empty.
func verifyFlags(cmd *commander.Command, required ...string) error {
	for _, name := range required {
		f := cmd.Flag.Lookup(name)
		if f == nil || f.Value.String() == "" {
			cmd.Usage()
			return fmt.Errorf("required flag -%s not set", name)
		}
	}
	return nil
}
