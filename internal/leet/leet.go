// Package leet holds leetspeak substitution tables and turns dictionary words
// into every variant reachable within a substitution budget.
package leet

import (
	"context"
	"fmt"
	"slices"
	"unicode"

	"leetcrack/internal/permute"
)

// SubCost is the cost of any single substitution in the default table.
const SubCost = 1

// DefaultBudget admits variants with at most four substitutions.
const DefaultBudget = 5

// Table maps a character to its replacements. The character itself is always
// a zero-cost choice and does not need to be listed.
type Table struct {
	subs map[rune][]permute.Choice[rune]
}

var defaultSubs = map[rune][]rune{
	'a': {'4', '@'},
	'b': {'8'},
	'g': {'9', '6'},
	'l': {'7', '1', '!'},
	's': {'5', '$'},
	'e': {'3'},
	'i': {'!', '7', 'l', '1'},
	'o': {'8', '0'},
	'z': {'2'},
}

// Default is the built-in table: upper-casing plus the common digit and
// symbol swaps, each costing SubCost.
func Default() *Table {
	t := &Table{subs: make(map[rune][]permute.Choice[rune], len(defaultSubs))}
	for c, reps := range defaultSubs {
		for _, r := range reps {
			t.subs[c] = append(t.subs[c], permute.Choice[rune]{Value: r, Cost: SubCost})
		}
	}
	return t
}

// With returns a copy of t where c is replaced by the given choices.
func (t *Table) With(c rune, choices []permute.Choice[rune]) *Table {
	out := &Table{subs: make(map[rune][]permute.Choice[rune], len(t.subs)+1)}
	for k, v := range t.subs {
		out.subs[k] = v
	}
	out.subs[c] = append([]permute.Choice[rune](nil), choices...)
	return out
}

// Choices lists the options for c in order: c itself, its upper-case form for
// letters, then the table's substitutions. A replacement already listed keeps
// its first cost and is not repeated.
func (t *Table) Choices(c rune) []permute.Choice[rune] {
	res := []permute.Choice[rune]{{Value: c, Cost: 0}}
	if unicode.IsLetter(c) {
		if up := unicode.ToUpper(c); up != c {
			res = append(res, permute.Choice[rune]{Value: up, Cost: SubCost})
		}
	}
	for _, sub := range t.subs[c] {
		if slices.ContainsFunc(res, func(ch permute.Choice[rune]) bool { return ch.Value == sub.Value }) {
			continue
		}
		res = append(res, sub)
	}
	return res
}

// Rule builds the cost rule for word.
func (t *Table) Rule(word string, budget uint) (*permute.Rule[rune], error) {
	var table [][]permute.Choice[rune]
	for _, c := range word {
		table = append(table, t.Choices(c))
	}
	return permute.NewRule(table, budget)
}

// Variants returns every spelling of word whose total substitution cost is
// below budget. The unmodified word is always first.
func (t *Table) Variants(word string, budget uint) ([]string, error) {
	rule, err := t.Rule(word, budget)
	if err != nil {
		return nil, fmt.Errorf("build rule for %q: %w", word, err)
	}
	stacks, err := permute.EnumerateComplete(rule)
	if err != nil {
		return nil, fmt.Errorf("enumerate %q: %w", word, err)
	}
	return words(stacks), nil
}

// VariantsConcurrent is Variants with each expansion round spread over up to
// workers goroutines. The result is identical, order included.
func (t *Table) VariantsConcurrent(ctx context.Context, word string, budget uint, workers int) ([]string, error) {
	rule, err := t.Rule(word, budget)
	if err != nil {
		return nil, fmt.Errorf("build rule for %q: %w", word, err)
	}
	stacks, err := permute.EnumerateConcurrent(ctx, rule, workers)
	if err != nil {
		return nil, fmt.Errorf("enumerate %q: %w", word, err)
	}
	return words(stacks), nil
}

func words(stacks []permute.Stack[permute.Step[rune]]) []string {
	out := make([]string, 0, len(stacks))
	for _, s := range stacks {
		out = append(out, Word(s))
	}
	return out
}

// Word rebuilds the left-to-right string from a stack whose top is the last
// position.
func Word(s permute.Stack[permute.Step[rune]]) string {
	buf := make([]rune, s.Size())
	i := len(buf)
	for st := range s.All() {
		i--
		buf[i] = st.Value
	}
	return string(buf)
}
