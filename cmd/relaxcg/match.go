package main

import (
	"fmt"
	"os"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"

	"github.com/cours-de-latin/relaxcg"
)

var (
	matchPattern string
	matchLiteral string
)

func runMatch(cmd *commander.Command, args []string) error {
	if err := verifyFlags(cmd, "pattern", "literal"); err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, relaxcg.MatchPattern(matchPattern, matchLiteral))
	return nil
}

func matchCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       runMatch,
		UsageLine: "match -pattern <pattern> -literal <literal>",
		Short:     "tells whether a rule pattern matches a literal",
		Long: `
tells whether a rule pattern matches a literal

	$ relaxcg match -pattern 'VMI*<comer>' -literal 'VMI3SP0<comer>'
	true
`,
		Flag: *flag.NewFlagSet("match", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&matchPattern, "pattern", "", "pattern, e.g. NC* or VMI*<comer>")
	cmd.Flag.StringVar(&matchLiteral, "literal", "", "literal, e.g. NCFS000 or VMI3SP0<comer>")
	return cmd
}
