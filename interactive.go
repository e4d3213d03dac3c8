package sentimental

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Prompt is printed before every query.
const Prompt = "Enter a sentence to predict sentiment (or 'quit' to exit): "

const quitCommand = "quit"

// Predictor labels a single sentence.
type Predictor interface {
	PredictSentiment(sentence string) (Label, error)
}

// RunInteractive reads sentences from r and writes their predicted label to w
// until the user types quit (any case), r is exhausted or ctx is done. Lines
// have no length limit.
func RunInteractive(ctx context.Context, r io.Reader, w io.Writer, p Predictor) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines, readErr := readLines(ctx, r)
	for {
		if _, err := fmt.Fprint(w, Prompt); err != nil {
			return err
		}

		var line string
		select {
		case <-ctx.Done():
			return ctx.Err()
		case l, ok := <-lines:
			if !ok {
				return <-readErr
			}
			line = l
		}

		if strings.EqualFold(line, quitCommand) {
			return nil
		}

		label, err := p.PredictSentiment(line)
		if err != nil {
			return fmt.Errorf("predicting %q: %w", line, err)
		}
		if _, err := fmt.Fprintf(w, "Predicted sentiment: %s\n", label); err != nil {
			return err
		}
	}
}

// readLines feeds the lines of r, without their terminator, to the returned
// channel. The channel is closed once r is exhausted or ctx is done, after the
// reason has been sent on the error channel (nil at EOF).
func readLines(ctx context.Context, r io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)

	go func() {
		defer close(lines)
		br := bufio.NewReader(r)
		for {
			line, err := br.ReadString('\n')
			if err != nil && !errors.Is(err, io.EOF) {
				errc <- err
				return
			}
			// a final line without terminator still counts
			if line != "" || err == nil {
				select {
				case lines <- strings.TrimRight(line, "\r\n"):
				case <-ctx.Done():
					errc <- ctx.Err()
					return
				}
			}
			if err != nil {
				errc <- nil
				return
			}
		}
	}()

	return lines, errc
}
