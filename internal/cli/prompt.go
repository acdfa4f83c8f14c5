package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fabricgen-labs/fabricgen/internal/ui"
)

// prompter reads answers line by line, re-asking until a non-blank answer
// arrives.
type prompter struct {
	r *bufio.Reader
	w io.Writer
	p *ui.Printer
}

func newPrompter(r io.Reader, w io.Writer) *prompter {
	return &prompter{r: bufio.NewReader(r), w: w, p: ui.New(w)}
}

// fill prompts for *dst when it is blank.
func (pr *prompter) fill(dst *string, label string) error {
	if strings.TrimSpace(*dst) != "" {
		*dst = strings.TrimSpace(*dst)
		return nil
	}
	answer, err := pr.ask(label)
	if err != nil {
		return err
	}
	*dst = answer
	return nil
}

func (pr *prompter) ask(label string) (string, error) {
	for {
		fmt.Fprint(pr.w, pr.p.Accent(label+": "))
		line, err := pr.r.ReadString('\n')
		if answer := strings.TrimSpace(line); answer != "" {
			return answer, nil
		}
		if err == io.EOF {
			fmt.Fprintln(pr.w)
			return "", fmt.Errorf("reading %s: %w", strings.ToLower(label), io.ErrUnexpectedEOF)
		}
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", strings.ToLower(label), err)
		}
	}
}
