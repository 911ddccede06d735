package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/terraincognita07/doze/internal/models"
)

var ErrClearAborted = errors.New("clear aborted")

type DataClearer interface {
	LoadAll(ctx context.Context) (models.EntryCollections, error)
	ClearAll(ctx context.Context) error
}

// RunClearDataCommand removes every stored entry. Without confirmed it asks
// for a literal "yes" on stdin first.
func RunClearDataCommand(ctx context.Context, entries DataClearer, confirmed bool, stdin io.Reader, stdout io.Writer) error {
	existing, err := entries.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load entries: %w", err)
	}
	if existing.Len() == 0 {
		fmt.Fprintln(stdout, "Nothing to clear.")
		return nil
	}

	if !confirmed {
		fmt.Fprintf(stdout, "Delete %d entries (%d caffeine, %d sleep, %d naps)? Type 'yes' to confirm: ",
			existing.Len(), len(existing.Caffeine), len(existing.Sleep), len(existing.Naps))
		answer, err := readLine(stdin)
		if err != nil {
			return fmt.Errorf("read confirmation: %w", err)
		}
		if !strings.EqualFold(answer, "yes") {
			return ErrClearAborted
		}
	}

	if err := entries.ClearAll(ctx); err != nil {
		return fmt.Errorf("clear entries: %w", err)
	}
	fmt.Fprintf(stdout, "Deleted %d entries.\n", existing.Len())
	return nil
}

func readLine(stdin io.Reader) (string, error) {
	if stdin == nil {
		return "", errors.New("stdin unavailable")
	}

	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
