package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sarchlab/pagesim/hooking"
	"github.com/sarchlab/pagesim/paging"
	"github.com/sarchlab/pagesim/recording"
)

type runOptions struct {
	frames     int
	policies   []string
	json       bool
	verbose    bool
	record     bool
	recordPath string
}

func newRunCmd(a *app) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run PAGE...",
		Short: "Simulate a page reference string.",
		Long: "`run --frames 3 1 2 3 4 1 2 5` replays the pages on 3 frames. " +
			"Pages can also be given as comma separated lists.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulation(cmd, a, opts, args)
		},
	}

	cmd.Flags().IntVarP(&opts.frames, "frames", "f", 3, "number of frames")
	cmd.Flags().StringSliceVarP(&opts.policies, "policy", "p", nil,
		"policies to run (fifo, lru, optimal), all by default")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the report as JSON")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false,
		"log every access")
	cmd.Flags().BoolVar(&opts.record, "record", false,
		"record every access into a SQLite database")
	cmd.Flags().StringVar(&opts.recordPath, "record-path", "",
		"name of the SQLite database, generated if empty")

	return cmd
}

func runSimulation(
	cmd *cobra.Command,
	a *app,
	opts *runOptions,
	args []string,
) error {
	reference, err := parseReference(args)
	if err != nil {
		return err
	}

	policies, err := parsePolicies(opts.policies)
	if err != nil {
		return err
	}

	var hooks []hooking.Hook

	if opts.verbose || a.cfg.Log.Verbose {
		logger := log.New(cmd.ErrOrStderr(), "", 0)
		hooks = append(hooks, paging.NewAccessLogger(logger))
	}

	var accessRecorder *recording.AccessRecorder

	if opts.record || a.cfg.Recording.Enabled {
		path := opts.recordPath
		if path == "" {
			path = a.cfg.Recording.Path
		}

		dataRecorder := recording.New(path)
		defer dataRecorder.Close()

		accessRecorder = recording.NewAccessRecorder(dataRecorder, "")
		hooks = append(hooks, accessRecorder)
	}

	report, err := simulate(policies, reference, opts.frames, hooks)
	if err != nil {
		return err
	}

	if accessRecorder != nil {
		accessRecorder.RecordComparison(report, reference, opts.frames)
	}

	if opts.json {
		return printJSON(cmd.OutOrStdout(), report)
	}

	return printTable(cmd.OutOrStdout(), policies, report)
}

func simulate(
	policies []paging.Policy,
	reference []int,
	frames int,
	hooks []hooking.Hook,
) (paging.Comparison, error) {
	if len(policies) == len(paging.AllPolicies()) {
		return paging.Compare(reference, frames, hooks...)
	}

	report := make(paging.Comparison, len(policies))

	for _, p := range policies {
		b := paging.MakeBuilder().WithPolicy(p)
		for _, h := range hooks {
			b = b.WithHook(h)
		}

		result, err := b.Build().Run(reference, frames)
		if err != nil {
			return nil, err
		}

		report[p] = result
	}

	return report, nil
}

// parseReference reads pages from arguments. Each argument is a page number
// or a comma separated list of page numbers.
func parseReference(args []string) ([]int, error) {
	reference := []int{}

	for _, arg := range args {
		for _, field := range strings.Split(arg, ",") {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}

			page, err := strconv.Atoi(field)
			if err != nil {
				return nil, fmt.Errorf("invalid page %q", field)
			}

			reference = append(reference, page)
		}
	}

	return reference, nil
}

func parsePolicies(names []string) ([]paging.Policy, error) {
	if len(names) == 0 {
		return paging.AllPolicies(), nil
	}

	selected := map[paging.Policy]bool{}

	for _, name := range names {
		p, err := paging.ParsePolicy(name)
		if err != nil {
			return nil, err
		}

		selected[p] = true
	}

	policies := []paging.Policy{}

	for _, p := range paging.AllPolicies() {
		if selected[p] {
			policies = append(policies, p)
		}
	}

	return policies, nil
}

func printJSON(w io.Writer, report paging.Comparison) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(report)
}

func printTable(
	w io.Writer,
	policies []paging.Policy,
	report paging.Comparison,
) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "POLICY\tFAULTS\tHITS\tFAULT RATE")

	for _, p := range policies {
		result := report[p]
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.2f%%\n",
			p, result.Faults, result.Hits, 100*result.FaultRate())
	}

	return tw.Flush()
}
