package spellcheck

import (
	"bufio"
	"context"
	"io"
	"strings"
	"unicode"
)

// WordlistChecker flags every token not present in a fixed dictionary.
// Tokens are split on anything but letters, digits and apostrophes and
// compared case-insensitively. It stands in for the external engine in
// tests and in deployments without the engine binary.
type WordlistChecker struct {
	words map[string]struct{}
}

func NewWordlistChecker(words []string) *WordlistChecker {
	c := &WordlistChecker{words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			c.words[w] = struct{}{}
		}
	}
	return c
}

// LoadWordlist reads one word per line.
func LoadWordlist(r io.Reader) (*WordlistChecker, error) {
	var words []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		words = append(words, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return NewWordlistChecker(words), nil
}

func (c *WordlistChecker) Check(ctx context.Context, text string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tokens := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})

	out := make([]string, 0)
	seen := make(map[string]struct{})
	for _, tok := range tokens {
		tok = strings.Trim(tok, "'")
		if tok == "" {
			continue
		}
		if _, ok := c.words[strings.ToLower(tok)]; ok {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	return out, nil
}
