package relaxcg

// candidateHeads lists the literals under which rules relevant to analysis
// a of word w may be indexed. Wildcard heads are produced here for every
// proper prefix of the tag, so the grammar is only ever searched by exact
// lookup.
func candidateHeads(w *Word, a *Analysis, sensesUsed bool) ([]string, error) {
	tag := a.Tag
	lm := lemmaKey(a.Lemma)
	fm := formKey(w.Form)

	heads := []string{tag, lm, tag + lm, tag + fm}

	if sensesUsed && len(a.Senses) > 1 {
		return nil, newError(KindPrecondition, errManySenses, a.Tag, a.Lemma, w.Form, len(a.Senses))
	}
	sn := ""
	if len(a.Senses) == 1 {
		sn = senseKey(a.Senses[0].Name)
		heads = append(heads, sn, tag+sn)
	}

	for i, u := range a.User {
		heads = append(heads, userKey(i, u))
	}

	for i := 1; i < len(tag); i++ {
		pref := tag[:i] + "*"
		heads = append(heads, pref, pref+lm, pref+fm)
		if sn != "" {
			heads = append(heads, pref+sn)
		}
	}
	return heads, nil
}

// candidateRules collects the rules for every head of (w, a). A rule indexed
// under several of those heads is returned once per head.
func (g *Grammar) candidateRules(w *Word, a *Analysis) ([]*Rule, error) {
	heads, err := candidateHeads(w, a, g.SensesUsed)
	if err != nil {
		return nil, err
	}
	var rules []*Rule
	for _, h := range heads {
		rules = g.RulesFor(h, rules)
	}
	return rules, nil
}
