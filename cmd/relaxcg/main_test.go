package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cours-de-latin/relaxcg"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunTag(t *testing.T) {
	dir := t.TempDir()
	cmd := tagCmd() // binding the flags resets them to their defaults
	grammarFile = ""
	confFile = writeFile(t, dir, "relaxcg.yaml",
		"grammar: "+writeFile(t, dir, "constr_gram.dat", "CONSTRAINTS\n1.0 VMI* (0 VMI* or VMN*) (1 SP0) ;\n")+"\n")
	inFile = writeFile(t, dir, "in.json",
		`{"words":[{"form":"corre","analyses":[{"tag":"VMI3SP0","lemma":"correr","prob":0.6},{"tag":"NCFS000","lemma":"corre","prob":0.4}]},{"form":"a","analyses":[{"tag":"SP0","lemma":"a","prob":1}]}]}`)
	outFile = filepath.Join(dir, "out.json")
	numWorkers = 2

	if err := runTag(cmd, nil); err != nil {
		t.Fatal(err)
	}
	out, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(out), "NCFS000") || !strings.Contains(string(out), "VMI3SP0") {
		t.Errorf("tagged output = %s", out)
	}
}

func TestWriteOutputReportsFlushErrors(t *testing.T) {
	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("no /dev/full on this system")
	}
	sentences, err := relaxcg.ReadSentences(strings.NewReader(`{"words":[{"form":"a","analyses":[{"tag":"SP0","lemma":"a","prob":1}]}]}`))
	if err != nil {
		t.Fatal(err)
	}
	outFile = "/dev/full"
	defer func() { outFile = "-" }()
	if err := writeOutput(sentences); err == nil {
		t.Error("writeOutput to a full device succeeded")
	}
}

func TestTagConfig(t *testing.T) {
	confFile, grammarFile, forceSelect = "", "g.dat", true
	cfg, err := tagConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Grammar != "g.dat" || !cfg.ForceSelect || cfg.MaxIterations != 500 {
		t.Errorf("tagConfig = %+v", cfg)
	}
	forceSelect = false
}

func TestRunCheck(t *testing.T) {
	dir := t.TempDir()
	cmd := checkCmd()

	checkGrammar = writeFile(t, dir, "good.dat", "SETS\nDet = DA0FS0 ;\nCONSTRAINTS\n1.0 NC* (-1 {Det}) ;\n")
	if err := runCheck(cmd, nil); err != nil {
		t.Errorf("runCheck(good) = %v", err)
	}

	checkGrammar = writeFile(t, dir, "bad.dat", "CONSTRAINTS\n1.0 NC* (-1 {Det}) ;\n")
	if err := runCheck(cmd, nil); err == nil {
		t.Error("runCheck(bad) succeeded")
	}
}
