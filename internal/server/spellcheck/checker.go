// Package spellcheck adapts the external spell-check engine. The engine is
// a black box: given a text it returns the distinct misspelled tokens in
// first-occurrence order.
package spellcheck

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/dmitrijs2005/spellcheckd/internal/common"
)

// Checker returns the misspelled tokens of text.
type Checker interface {
	Check(ctx context.Context, text string) ([]string, error)
}

// ExecChecker runs `<Path> <textfile> <Wordlist>` and reads one misspelled
// token per stdout line.
type ExecChecker struct {
	Path     string
	Wordlist string
	Timeout  time.Duration
	TempDir  string
}

func NewExecChecker(path, wordlist string, timeout time.Duration) *ExecChecker {
	return &ExecChecker{Path: path, Wordlist: wordlist, Timeout: timeout}
}

// Check runs the engine. Timeouts, start failures and non-zero exits are
// reported as common.ErrCheckEngineFailure.
func (c *ExecChecker) Check(ctx context.Context, text string) ([]string, error) {
	f, err := os.CreateTemp(c.TempDir, "spellcheck-*.txt")
	if err != nil {
		return nil, fmt.Errorf("%w: temp file: %v", common.ErrCheckEngineFailure, err)
	}
	defer os.Remove(f.Name())

	if _, err := f.WriteString(text); err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: write input: %v", common.ErrCheckEngineFailure, err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("%w: close input: %v", common.ErrCheckEngineFailure, err)
	}

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.Path, f.Name(), c.Wordlist)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = time.Second

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrCheckEngineFailure, ctxErr)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("%w: exit code %d: %s", common.ErrCheckEngineFailure, exitErr.ExitCode(), strings.TrimSpace(stderr.String()))
		}
		return nil, fmt.Errorf("%w: %v", common.ErrCheckEngineFailure, err)
	}

	return ParseOutput(stdout.Bytes()), nil
}

// ParseOutput turns engine output into tokens: one per line, trimmed,
// blank lines dropped, repeats collapsed onto their first occurrence.
func ParseOutput(out []byte) []string {
	words := make([]string, 0)
	seen := make(map[string]struct{})

	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		w := strings.TrimSpace(sc.Text())
		if w == "" {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		words = append(words, w)
	}
	return words
}
