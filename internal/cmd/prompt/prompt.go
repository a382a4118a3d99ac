// Package prompt asks the user to confirm an action on the terminal.
package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// Result is the user's answer to a confirmation prompt.
type Result int

const (
	// Declined means the user answered no or gave no answer.
	Declined Result = iota
	// Confirmed means the user answered yes.
	Confirmed
)

// Confirm writes question followed by "[y/N]" to w and reads one line from r.
// "y", "yes", "s" and "sim" confirm in any case; anything else, including
// EOF, declines.
func Confirm(r io.Reader, w io.Writer, question string) Result {
	fmt.Fprintf(w, "%s [y/N] ", question)
	res, ok := read(r)
	if !ok {
		fmt.Fprintln(w)
	}
	return res
}

// ConfirmContext is Confirm that declines as soon as ctx is done, so an
// interrupt while waiting for an answer does not block.
func ConfirmContext(ctx context.Context, r io.Reader, w io.Writer, question string) Result {
	fmt.Fprintf(w, "%s [y/N] ", question)

	type answer struct {
		res Result
		ok  bool
	}
	answers := make(chan answer, 1)
	go func() {
		res, ok := read(r)
		answers <- answer{res, ok}
	}()

	select {
	case a := <-answers:
		if !a.ok {
			fmt.Fprintln(w)
		}
		return a.res
	case <-ctx.Done():
		fmt.Fprintln(w)
		return Declined
	}
}

// read parses one answer line; ok is false when nothing could be read.
func read(r io.Reader) (Result, bool) {
	response, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && response == "" {
		return Declined, false
	}

	switch strings.ToLower(strings.TrimSpace(response)) {
	case "y", "yes", "s", "sim":
		return Confirmed, true
	default:
		return Declined, true
	}
}
