package grammar

import (
	"fmt"

	"github.com/nihei9/tribble/compressor"
	spec "github.com/nihei9/tribble/spec/grammar"
)

// Export converts a parsing table into its portable form with compressed shift and goto tables.
func Export(name string, t *ParsingTable) (*spec.CompiledGrammar, error) {
	terms := t.Grammar.Terminals()
	nonTerms := t.Grammar.Names()

	fp, err := t.Fingerprint()
	if err != nil {
		return nil, err
	}

	shift, err := compressTransitions(t, terms, func(s *State) map[string]int { return s.Shift })
	if err != nil {
		return nil, fmt.Errorf("cannot compress the shift table: %w", err)
	}
	goTo, err := compressTransitions(t, nonTerms, func(s *State) map[string]int { return s.GoTo })
	if err != nil {
		return nil, fmt.Errorf("cannot compress the goto table: %w", err)
	}

	reduce := make([]int, len(t.States))
	for i, s := range t.States {
		reduce[i] = spec.StateNil
		if s.Reduce != nil {
			reduce[i] = s.Reduce.Num
		}
	}

	rules := make([]*spec.Reducer, len(t.Grammar.Rules))
	for i, r := range t.Grammar.Rules {
		red := &spec.Reducer{
			Name:   r.Name,
			Length: len(r.Children),
			Shape:  r.Shape.Kind.String(),
			Tag:    r.Shape.Tag,
			Root:   r.Shape.Root,
			List:   r.Shape.List,
		}
		for _, k := range r.Shape.Keys {
			red.Keys = append(red.Keys, &spec.Key{
				Name:  k.Name,
				Index: k.Index,
			})
		}
		rules[i] = red
	}

	return &spec.CompiledGrammar{
		Name:         name,
		StartSymbol:  t.Grammar.Start(),
		Fingerprint:  fp,
		InitialState: t.InitialState(),
		AcceptState:  t.AcceptState(),
		StateCount:   len(t.States),
		Terminals:    terms,
		NonTerminals: nonTerms,
		Shift:        shift,
		GoTo:         goTo,
		Reduce:       reduce,
		Rules:        rules,
	}, nil
}

func compressTransitions(t *ParsingTable, symbols []string, edges func(*State) map[string]int) (*compressor.Table, error) {
	col := map[string]int{}
	for i, sym := range symbols {
		col[sym] = i
	}
	colCount := len(symbols)
	if colCount == 0 {
		// A matrix needs at least one column.
		colCount = 1
	}
	entries := make([]int, len(t.States)*colCount)
	for i := range entries {
		entries[i] = spec.StateNil
	}
	for _, s := range t.States {
		for sym, next := range edges(s) {
			entries[s.Num*colCount+col[sym]] = next
		}
	}
	return compressor.Compress(entries, colCount, spec.StateNil)
}

// GenReport describes a parsing table for human readers.
func GenReport(name string, t *ParsingTable) *spec.Report {
	report := &spec.Report{
		Name: name,
	}
	for _, r := range t.Grammar.Rules {
		report.Rules = append(report.Rules, &spec.Rule{
			Number:    r.Num,
			Name:      r.Name,
			Text:      r.String(),
			Synthetic: r.Synthetic,
		})
	}
	for _, s := range t.States {
		st := &spec.State{
			Number: s.Num,
		}
		for _, item := range s.Kernel {
			st.Kernel = append(st.Kernel, item.String())
		}
		for _, item := range s.Items {
			st.Items = append(st.Items, item.String())
		}
		for _, e := range s.Edges {
			tr := &spec.Transition{
				Symbol:   e.Symbol.Name,
				Terminal: e.Symbol.IsTerminal(),
				State:    e.To.Num,
			}
			if e.Symbol.IsTerminal() {
				st.Shift = append(st.Shift, tr)
			} else {
				st.GoTo = append(st.GoTo, tr)
			}
		}
		if s.Reduce != nil {
			num := s.Reduce.Num
			st.Reduce = &num
		}
		report.States = append(report.States, st)
	}
	for _, c := range t.Conflicts {
		rc := &spec.Conflict{
			Kind:      string(c.Kind),
			State:     c.State,
			Terminals: c.Terminals,
		}
		for _, r := range c.Rules {
			rc.Rules = append(rc.Rules, r.Num)
		}
		report.Conflicts = append(report.Conflicts, rc)
	}
	return report
}
