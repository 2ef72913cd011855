package relaxcg

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

type sentenceJSON struct {
	Words []*Word `json:"words"`
}

// MarshalJSON writes s as {"words":[...]}, listing only the selected
// analyses of each word.
func (s Sentence) MarshalJSON() ([]byte, error) {
	out := sentenceJSON{Words: make([]*Word, len(s))}
	for i, w := range s {
		out.Words[i] = &Word{Form: w.Form, Analyses: w.Selected()}
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads a {"words":[...]} object. Every analysis read is
// selected.
func (s *Sentence) UnmarshalJSON(data []byte) error {
	var in sentenceJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	for _, w := range in.Words {
		if w == nil {
			return errors.New("null word in sentence")
		}
		for _, a := range w.Analyses {
			if a == nil {
				return fmt.Errorf("null analysis of %q", w.Form)
			}
		}
		w.SelectAll()
	}
	*s = in.Words
	return nil
}

// ReadSentences decodes a stream of JSON sentences, one object after the
// other, until r is exhausted.
func ReadSentences(r io.Reader) ([]Sentence, error) {
	dec := json.NewDecoder(r)
	var out []Sentence
	for {
		var s Sentence
		err := dec.Decode(&s)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, &Error{Kind: KindIO, Message: "decode sentence", Cause: err}
		}
		out = append(out, s)
	}
}

// WriteSentences encodes each sentence on its own line.
func WriteSentences(w io.Writer, sentences []Sentence) error {
	enc := json.NewEncoder(w)
	for _, s := range sentences {
		if err := enc.Encode(s); err != nil {
			return &Error{Kind: KindIO, Message: "encode sentence", Cause: err}
		}
	}
	return nil
}
