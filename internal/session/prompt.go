package session

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Input errors.
var (
	ErrNotANumber    = errors.New("not a number")
	ErrTooManyValues = errors.New("too many values")
	ErrMissingValues = errors.New("input ended before all values were read")
)

// InputError reports malformed console input for a prompt.
type InputError struct {
	Prompt string
	Input  string // offending token or line, empty at end of input
	Err    error
}

func (e *InputError) Error() string {
	if e.Input == "" {
		return fmt.Sprintf("%q: %v", e.Prompt, e.Err)
	}
	return fmt.Sprintf("%q: %v: %q", e.Prompt, e.Err, e.Input)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// Prompter writes prompts and reads whitespace-separated numbers, line by line.
// Reads block until enough values arrive.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter reads from in and writes prompts to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Floats prints prompt and reads exactly n numbers. Values may span several
// lines; a line that brings the total above n is rejected.
func (p *Prompter) Floats(prompt string, n int) ([]float32, error) {
	fmt.Fprint(p.out, prompt)

	values := make([]float32, 0, n)
	for len(values) < n {
		line, err := p.readLine()
		if err != nil {
			return nil, p.endOfInput(prompt, err)
		}
		fields := strings.Fields(line)
		if len(values)+len(fields) > n {
			return nil, &InputError{Prompt: prompt, Input: strings.TrimSpace(line), Err: ErrTooManyValues}
		}
		for _, f := range fields {
			v, err := strconv.ParseFloat(f, 32)
			if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, &InputError{Prompt: prompt, Input: f, Err: ErrNotANumber}
			}
			values = append(values, float32(v))
		}
	}
	return values, nil
}

// Word prints prompt and returns the first word of the next line,
// or "" for an empty line.
func (p *Prompter) Word(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	line, err := p.readLine()
	if err != nil {
		return "", p.endOfInput(prompt, err)
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	return fields[0], nil
}

// NextCommand skips blank lines and '#' comments and returns the first
// character of the next line. It returns io.EOF when input is exhausted
// and any other read error as is.
func (p *Prompter) NextCommand() (rune, error) {
	for {
		line, err := p.readLine()
		if err != nil {
			return 0, err
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return []rune(line)[0], nil
	}
}

// endOfInput reports a prompt cut short by a failed read.
func (p *Prompter) endOfInput(prompt string, err error) error {
	if err == io.EOF {
		return &InputError{Prompt: prompt, Err: ErrMissingValues}
	}
	return errors.Wrapf(err, "reading %q", prompt)
}

// readLine returns the next line without its terminator. A final line
// without a newline is returned normally; io.EOF only when nothing is left.
func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
