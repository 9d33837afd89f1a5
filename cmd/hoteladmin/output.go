package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"hotel_admin/internal/wizard"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// table prints rows under a header, tab-aligned.
func table(w io.Writer, header []string, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, h := range header {
		if i > 0 {
			fmt.Fprint(tw, "\t")
		}
		fmt.Fprint(tw, h)
	}
	fmt.Fprintln(tw)
	for _, r := range rows {
		for i, c := range r {
			if i > 0 {
				fmt.Fprint(tw, "\t")
			}
			fmt.Fprint(tw, c)
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

// describe turns validation and submission failures into operator text.
func describe(err error) error {
	var (
		verrs wizard.ValidationErrors
		serr  *wizard.SubmitError
	)
	switch {
	case errors.As(err, &verrs):
		keys := make([]string, 0, len(verrs))
		for k := range verrs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		msg := "validation failed:"
		for _, k := range keys {
			msg += fmt.Sprintf("\n  %s: %s", k, verrs[k])
		}
		return errors.New(msg)
	case errors.As(err, &serr):
		return fmt.Errorf("%s (%w)", serr.Message(), err)
	}
	return err
}
