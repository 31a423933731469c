package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nihei9/tribble/grammar"
	spec "github.com/nihei9/tribble/spec/grammar"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var showFlags = struct {
	json *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "show",
		Short:   "Print the rules, states and conflicts of a grammar in a readable format",
		Example: `  tribble show grammar.tribble`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runShow,
	}
	showFlags.json = cmd.Flags().Bool("json", false, "print the report as JSON")
	rootCmd.AddCommand(cmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	var grmPath string
	if len(args) > 0 {
		grmPath = args[0]
	}

	t, err := buildTable(grmPath)
	if err != nil {
		return err
	}
	report := grammar.GenReport(grammarName(grmPath), t)

	if *showFlags.json {
		return writeReportJSON(os.Stdout, report)
	}
	writeReport(report)

	return nil
}

func writeReportJSON(w io.Writer, report *spec.Report) error {
	b, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%v\n", string(b))
	return nil
}

func writeReport(report *spec.Report) {
	ruleText := func(num int) string {
		if num < 0 || num >= len(report.Rules) {
			return "(accept)"
		}
		return report.Rules[num].Text
	}

	pterm.DefaultSection.Println("Rules")
	rules := pterm.TableData{
		{"#", "Rule", "Synthetic"},
	}
	for _, r := range report.Rules {
		synthetic := ""
		if r.Synthetic {
			synthetic = "yes"
		}
		rules = append(rules, []string{fmt.Sprint(r.Number), r.Text, synthetic})
	}
	pterm.DefaultTable.WithHasHeader().WithData(rules).Render()

	pterm.DefaultSection.Println("States")
	states := pterm.TableData{
		{"State", "Kernel", "Shift", "GoTo", "Reduce"},
	}
	for _, s := range report.States {
		var shift, goTo []string
		for _, tr := range s.Shift {
			shift = append(shift, fmt.Sprintf("%q → %v", tr.Symbol, tr.State))
		}
		for _, tr := range s.GoTo {
			goTo = append(goTo, fmt.Sprintf("%v → %v", tr.Symbol, tr.State))
		}
		reduce := ""
		if s.Reduce != nil {
			reduce = ruleText(*s.Reduce)
		}
		states = append(states, []string{
			fmt.Sprint(s.Number),
			strings.Join(s.Kernel, "; "),
			strings.Join(shift, ", "),
			strings.Join(goTo, ", "),
			reduce,
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(states).Render()

	if len(report.Conflicts) == 0 {
		pterm.Success.Println("no conflicts")
		return
	}
	pterm.DefaultSection.Println("Conflicts")
	conflicts := pterm.TableData{
		{"State", "Kind", "Rules", "Terminals"},
	}
	for _, c := range report.Conflicts {
		var rules []string
		for _, num := range c.Rules {
			rules = append(rules, ruleText(num))
		}
		conflicts = append(conflicts, []string{
			fmt.Sprint(c.State),
			c.Kind,
			strings.Join(rules, "; "),
			strings.Join(c.Terminals, ", "),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(conflicts).Render()
}
