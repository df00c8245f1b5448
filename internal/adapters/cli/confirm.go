package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/example/shipdesk/internal/ports/primary"
)

// PromptConfirm returns a ConfirmFunc that asks on out and reads the answer from in.
// Only y or yes confirms; end of input declines.
func PromptConfirm(in io.Reader, out io.Writer, resource string) primary.ConfirmFunc {
	reader := bufio.NewReader(in)
	return func(ctx context.Context, count int) (bool, error) {
		fmt.Fprintf(out, "Delete %d %s record(s)? This cannot be undone. [y/N]: ", count, resource)
		line, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true, nil
		}
		return false, nil
	}
}

// AlwaysConfirm approves without asking, for --yes.
func AlwaysConfirm(context.Context, int) (bool, error) {
	return true, nil
}
