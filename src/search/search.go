// Package search narrows free-text queries against fetched entities to
// a single selection, prompting the operator when the query is
// ambiguous.
package search

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/fachschaft/dms/src/api"
)

// maxChoices is the largest match list presented for disambiguation.
// Anything larger means the query needs narrowing.
const maxChoices = 5

// Alias maps operator shorthand to a canonical product name. Alias is
// expected lowercased.
type Alias struct {
	Alias string
	Name  string
}

// compileQuery turns an operator query into a case-insensitive
// substring pattern: '*' and spaces both match any run of characters,
// so "pri perle" finds "Prinzen Perle".
func compileQuery(query string) (*regexp.Regexp, error) {
	pattern := strings.NewReplacer("*", ".*", " ", ".*").Replace(query)
	re, err := regexp.Compile("(?is)" + pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid query %q: %w", query, err)
	}
	return re, nil
}

// Match returns the indices of candidates whose text matches the
// query. An empty query matches everything.
func Match(query string, n int, text func(i int) string) ([]int, error) {
	re, err := compileQuery(query)
	if err != nil {
		return nil, err
	}
	var hits []int
	for i := 0; i < n; i++ {
		if re.MatchString(text(i)) {
			hits = append(hits, i)
		}
	}
	return hits, nil
}

// Selector resolves queries interactively, reading selections from In
// and writing prompts to Out.
type Selector struct {
	In  *bufio.Reader
	Out io.Writer
}

func NewSelector(in io.Reader, out io.Writer) *Selector {
	return &Selector{In: bufio.NewReader(in), Out: out}
}

// Product narrows query to exactly one product. Matching alias keys
// contribute their canonical products ahead of direct name matches,
// without duplicates.
func (s *Selector) Product(products []api.Product, query string, aliases []Alias) (api.Product, error) {
	matches, err := matchProducts(products, query, aliases)
	if err != nil {
		return api.Product{}, err
	}

	labels := make([]string, len(matches))
	for i, p := range matches {
		labels[i] = p.Name
	}
	idx, err := s.pick(query, labels, productNames(products))
	if err != nil {
		return api.Product{}, err
	}
	return matches[idx], nil
}

// Profile narrows query to exactly one profile. First name, last name
// and username are all searched.
func (s *Selector) Profile(profiles []api.Profile, query string) (api.Profile, error) {
	hits, err := Match(query, len(profiles), func(i int) string {
		p := profiles[i]
		return fmt.Sprintf("%s %s %s", p.FirstName, p.LastName, p.UserName)
	})
	if err != nil {
		return api.Profile{}, err
	}

	matches := make([]api.Profile, len(hits))
	labels := make([]string, len(hits))
	all := make([]string, len(profiles))
	for i, h := range hits {
		matches[i] = profiles[h]
		labels[i] = profiles[h].Name()
	}
	for i, p := range profiles {
		all[i] = p.Name()
	}
	idx, err := s.pick(query, labels, all)
	if err != nil {
		return api.Profile{}, err
	}
	return matches[idx], nil
}

func matchProducts(products []api.Product, query string, aliases []Alias) ([]api.Product, error) {
	var result []api.Product
	seen := make(map[int]bool)

	// Alias keys are compared literally, not as patterns.
	q := strings.ToLower(query)
	for _, a := range aliases {
		if a.Alias != q {
			continue
		}
		for _, p := range products {
			if p.Name == a.Name && !seen[p.ID] {
				seen[p.ID] = true
				result = append(result, p)
			}
		}
	}

	nameHits, err := Match(query, len(products), func(i int) string { return products[i].Name })
	if err != nil {
		return nil, err
	}
	for _, h := range nameHits {
		if p := products[h]; !seen[p.ID] {
			seen[p.ID] = true
			result = append(result, p)
		}
	}
	return result, nil
}

// pick applies the result-size policy: no match and too many matches
// fail, one match is taken directly, a short list is put to the
// operator as a numbered choice.
func (s *Selector) pick(query string, labels, all []string) (int, error) {
	switch {
	case len(labels) == 0:
		if hint := closest(query, all); hint != "" {
			return 0, fmt.Errorf("nothing like %q found (did you mean %q?)", query, hint)
		}
		return 0, fmt.Errorf("nothing like %q found", query)
	case len(labels) > maxChoices:
		return 0, fmt.Errorf("way too many like %q found, please narrow the query", query)
	case len(labels) == 1:
		return 0, nil
	}

	for i, label := range labels {
		fmt.Fprintf(s.Out, "(%d) %s\n", i+1, label)
	}
	fmt.Fprintf(s.Out, "Please enter a number between 1 and %d: ", len(labels))

	line, err := s.In.ReadString('\n')
	if err != nil && line == "" {
		return 0, fmt.Errorf("failed to read selection: %w", err)
	}
	choice, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, fmt.Errorf("selection must be a number between 1 and %d", len(labels))
	}
	if choice < 1 || choice > len(labels) {
		return 0, fmt.Errorf("selection %d is out of range", choice)
	}
	return choice - 1, nil
}

// YesNo asks question with a default answer. An empty response takes
// the default; anything that is not a recognizable yes or no fails.
func (s *Selector) YesNo(question string, defaultYes bool) (bool, error) {
	if defaultYes {
		fmt.Fprintf(s.Out, "%s [YES/no] ", question)
	} else {
		fmt.Fprintf(s.Out, "%s [yes/NO] ", question)
	}

	line, err := s.In.ReadString('\n')
	if err != nil && line == "" {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	switch answer {
	case "":
		return defaultYes, nil
	case "y", "yes", "true", "1", "on":
		return true, nil
	case "n", "no", "false", "0", "off":
		return false, nil
	}
	return false, fmt.Errorf("only answer with yes or no")
}

// closest suggests the nearest candidate name for a query that matched
// nothing.
func closest(query string, all []string) string {
	ranks := fuzzy.RankFindNormalizedFold(query, all)
	if len(ranks) == 0 {
		return ""
	}
	best := ranks[0]
	for _, r := range ranks[1:] {
		if r.Distance < best.Distance {
			best = r
		}
	}
	return best.Target
}

func productNames(products []api.Product) []string {
	names := make([]string, len(products))
	for i, p := range products {
		names[i] = p.Name
	}
	return names
}
