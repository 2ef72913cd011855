package main

import (
	"fmt"
	"os"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"

	"github.com/cours-de-latin/relaxcg"
)

var (
	checkGrammar string
	listHeads    bool
)

// runCheck loads a grammar and reports what was skipped. It fails when the
// grammar has any warning so it can guard grammar edits.
func runCheck(cmd *commander.Command, args []string) error {
	if err := verifyFlags(cmd, "grammar"); err != nil {
		return err
	}
	g, err := relaxcg.LoadGrammar(checkGrammar, nil)
	if err != nil {
		return err
	}
	for _, w := range g.Warnings {
		fmt.Fprintf(os.Stdout, "%s: %s\n", w.Kind, w)
	}
	fmt.Fprintf(os.Stdout, "%d rules, %d sets, %d heads", g.NumRules(), g.NumSets(), len(g.Heads()))
	if g.SensesUsed {
		fmt.Fprint(os.Stdout, ", sense conditions used")
	}
	fmt.Fprintln(os.Stdout)
	if listHeads {
		for _, h := range g.Heads() {
			fmt.Fprintf(os.Stdout, "%s\t%d\n", h, len(g.RulesFor(h, nil)))
		}
	}
	if n := len(g.Warnings); n > 0 {
		return fmt.Errorf("%s: %d rules or sets skipped", checkGrammar, n)
	}
	return nil
}

func checkCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       runCheck,
		UsageLine: "check -grammar <grammar file>",
		Short:     "loads a constraint grammar and lists its errors",
		Long: `
loads a constraint grammar and lists its errors

	$ relaxcg check -grammar <grammar file> [-heads]
`,
		Flag: *flag.NewFlagSet("check", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&checkGrammar, "grammar", "", "constraint grammar file")
	cmd.Flag.BoolVar(&listHeads, "heads", false, "list every rule head with its number of rules")
	return cmd
}
