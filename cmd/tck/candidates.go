package main

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/dkoosis/tck/pkg/candidates"
	"github.com/dkoosis/tck/pkg/tck"
)

func (a *app) candidatesCmd() *cobra.Command {
	var list string
	cmd := &cobra.Command{
		Use:   "candidates",
		Short: "List the candidate types of a list and whether they resolve",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := loadList(list)
			if err != nil {
				return usageError("%w", err)
			}
			res := tck.NewLoader(candidates.Default(), nil, tck.WithLoaderLogger(a.logger)).ResolveEntries(entries)

			width := 0
			for _, e := range entries {
				width = max(width, runewidth.StringWidth(e.Name))
			}
			failed := make(map[string]error, len(res.Failures))
			for _, f := range res.Failures {
				failed[f.Name] = f.Err
			}
			for _, e := range entries {
				status := "ok"
				if err, ok := failed[e.Name]; ok {
					status = "unresolved: " + err.Error()
				}
				line := runewidth.FillRight(e.Name, width) + "  " + status
				if e.Description != "" {
					line += "  (" + e.Description + ")"
				}
				fmt.Fprintln(a.stdout, strings.TrimRight(line, " "))
			}
			if len(res.Failures) > 0 {
				return &exitError{code: exitFailed, err: fmt.Errorf("%d of %d candidates unresolved", len(res.Failures), len(entries))}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&list, "list", "general", "Candidate list: general, serializable, or a file")
	return cmd
}
