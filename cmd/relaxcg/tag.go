package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"

	"github.com/cours-de-latin/relaxcg"
)

var (
	confFile    string
	grammarFile string
	inFile      string
	outFile     string
	numWorkers  int
	forceSelect bool
)

func tagConfig() (relaxcg.Config, error) {
	cfg := relaxcg.DefaultConfig()
	if confFile != "" {
		var err error
		if cfg, err = relaxcg.LoadConfig(confFile); err != nil {
			return cfg, err
		}
	}
	if grammarFile != "" {
		cfg.Grammar = grammarFile
	}
	cfg.ForceSelect = cfg.ForceSelect || forceSelect
	return cfg, nil
}

func runTag(cmd *commander.Command, args []string) error {
	cfg, err := tagConfig()
	if err != nil {
		return err
	}
	logger.Info("configuration",
		slog.String("grammar", cfg.Grammar),
		slog.Int("max_iterations", cfg.MaxIterations),
		slog.Float64("scale_factor", cfg.ScaleFactor),
		slog.Float64("epsilon", cfg.Epsilon),
		slog.Bool("force_select", cfg.ForceSelect),
		slog.Int("workers", numWorkers))

	tg, err := relaxcg.New(cfg, logger)
	if err != nil {
		return err
	}

	var in io.Reader = os.Stdin
	if inFile != "" && inFile != "-" {
		f, err := os.Open(inFile)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	sentences, err := relaxcg.ReadSentences(in)
	if err != nil {
		return err
	}
	logger.Info("read sentences", slog.Int("count", len(sentences)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := tg.AnnotateAll(ctx, sentences, numWorkers); err != nil {
		return err
	}

	if err := writeOutput(sentences); err != nil {
		return err
	}
	logger.Info("done", slog.Int("sentences", len(sentences)))
	return nil
}

// writeOutput writes the tagged sentences to outFile, or stdout for "-".
func writeOutput(sentences []relaxcg.Sentence) (err error) {
	f := os.Stdout
	if outFile != "" && outFile != "-" {
		if f, err = os.Create(outFile); err != nil {
			return err
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
	}
	w := bufio.NewWriter(f)
	if err := relaxcg.WriteSentences(w, sentences); err != nil {
		return err
	}
	return w.Flush()
}

func tagCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       runTag,
		UsageLine: "tag <options>",
		Short:     "disambiguates JSON sentences with a constraint grammar",
		Long: fmt.Sprintf(`
disambiguates JSON sentences with a constraint grammar

	$ %s tag [-conf <yaml>] [-grammar <grammar file>] [-in <sentences>] [-out <file>] [options]

Sentences are read as a stream of {"words":[...]} objects and written back
with the selected analyses only. Either -conf or -grammar is required.
`, os.Args[0]),
		Flag: *flag.NewFlagSet("tag", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&confFile, "conf", "", "YAML configuration file")
	cmd.Flag.StringVar(&grammarFile, "grammar", "", "constraint grammar file (overrides the configuration)")
	cmd.Flag.StringVar(&inFile, "in", "-", "input sentences, - for stdin")
	cmd.Flag.StringVar(&outFile, "out", "-", "output file, - for stdout")
	cmd.Flag.IntVar(&numWorkers, "workers", runtime.NumCPU(), "sentences tagged in parallel")
	cmd.Flag.BoolVar(&forceSelect, "force", false, "keep a single analysis per word")
	return cmd
}
