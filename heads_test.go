package relaxcg

import (
	"strings"
	"testing"
)

func TestCandidateHeads(t *testing.T) {
	w := NewWord("Corre")
	a := &Analysis{
		Tag:    "VMI3SP0",
		Lemma:  "correr",
		Senses: []Sense{{Name: "s1"}},
		User:   []string{"x"},
	}
	heads, err := candidateHeads(w, a, true)
	if err != nil {
		t.Fatal(err)
	}

	lead := []string{
		"VMI3SP0",
		"<correr>",
		"VMI3SP0<correr>",
		"VMI3SP0(Corre)",
		"[s1]",
		"VMI3SP0[s1]",
		"u.0=x",
		"V*", "V*<correr>", "V*(Corre)", "V*[s1]",
		"VM*", "VM*<correr>", "VM*(Corre)", "VM*[s1]",
		"VMI*", "VMI*<correr>", "VMI*(Corre)", "VMI*[s1]",
	}
	if len(heads) != 7+4*6 {
		t.Fatalf("got %d heads, want %d: %q", len(heads), 7+4*6, heads)
	}
	if got := strings.Join(heads[:len(lead)], " "); got != strings.Join(lead, " ") {
		t.Errorf("heads =\n%s\nwant\n%s", got, strings.Join(lead, " "))
	}
	if last := heads[len(heads)-4]; last != "VMI3SP*" {
		t.Errorf("longest prefix head = %q, want VMI3SP*", last)
	}
	for _, h := range heads {
		if h == "VMI3SP0*" {
			t.Error("full tag must not be turned into a wildcard head")
		}
	}
}

func TestCandidateHeadsSenses(t *testing.T) {
	w := NewWord("corre")
	a := &Analysis{Tag: "VMI", Lemma: "correr", Senses: []Sense{{Name: "s1"}, {Name: "s2"}}}

	if _, err := candidateHeads(w, a, true); !IsKind(err, KindPrecondition) {
		t.Errorf("candidateHeads with two senses error = %v, want %s", err, KindPrecondition)
	}

	heads, err := candidateHeads(w, a, false)
	if err != nil {
		t.Fatalf("candidateHeads without sense rules: %v", err)
	}
	for _, h := range heads {
		if strings.Contains(h, "[") {
			t.Errorf("unexpected sense head %q", h)
		}
	}
}

func TestCandidateRules(t *testing.T) {
	g := mustParse(t, `CONSTRAINTS
1.0 VMI* (1 SP0) ;
2.0 <correr> (1 SP0) ;
3.0 NC* (1 SP0) ;
4.0 VMI*<correr> (1 SP0) ;
5.0 VMI* (-1 DA*) ;
`)
	w := NewWord("corre")
	rules, err := g.candidateRules(w, &Analysis{Tag: "VMI3SP0", Lemma: "correr"})
	if err != nil {
		t.Fatal(err)
	}
	var weights []float64
	for _, r := range rules {
		weights = append(weights, r.Weight)
	}
	// head order first, file order within a head
	want := []float64{2, 1, 5, 4}
	if len(weights) != len(want) {
		t.Fatalf("rule weights = %v, want %v", weights, want)
	}
	for i := range want {
		if weights[i] != want[i] {
			t.Fatalf("rule weights = %v, want %v", weights, want)
		}
	}
}
