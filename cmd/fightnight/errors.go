package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/and161185/fightnight/internal/errs"
	"github.com/and161185/fightnight/internal/view"
)

func fail(w io.Writer, err error) {
	switch {
	case errors.Is(err, errShown):
		return
	case errors.Is(err, errs.ErrSealed):
		fmt.Fprintln(w, "error: stored state cannot be opened: wrong or missing storage passphrase")
		return
	}
	fmt.Fprintln(w, "error:", err)
}

// lookupFailed reports a failed lookup: notFound for a missing entity,
// the catalog notice for anything else.
func lookupFailed(w io.Writer, err error, notFound string) error {
	if errors.Is(err, errs.ErrNotFound) {
		fmt.Fprintln(w, notFound)
	} else {
		fmt.Fprintln(w, view.CatalogDown)
	}
	return errShown
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errs.ErrValidation):
		return 2
	default:
		return 1
	}
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0o700)
}
