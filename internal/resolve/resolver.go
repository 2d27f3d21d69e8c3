// Package resolve matches normalized user text fragments against the card
// catalog. Matching is exact first (case- and whitespace-normalized name
// index per locale), then approximate via token-set string similarity scored
// 0-100. An empty resolution is a valid outcome the caller must handle, not
// an error.
package resolve

import (
	"sort"
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/skrylnikov/arcana/internal/catalog"
	"github.com/skrylnikov/arcana/pkg/types"
)

// DefaultThreshold is the minimum similarity score (0-100) an approximate
// match must reach to be accepted.
const DefaultThreshold = 75

// DefaultMaxCards bounds how many cards a single resolution may contain.
const DefaultMaxCards = 10

// Match pairs a candidate card with its similarity score.
type Match struct {
	Card  types.Card
	Score int
}

// candidate is a pre-normalized index entry for approximate matching.
type candidate struct {
	id       int
	name     string
	keywords []string
}

// Resolver matches fragments against the catalog. It is immutable after
// construction and safe for concurrent use.
type Resolver struct {
	cat       *catalog.Catalog
	threshold int
	exact     map[types.Locale]map[string]int
	index     map[types.Locale][]candidate
}

// NewResolver indexes the catalog's names and keywords per locale.
// The threshold falls back to DefaultThreshold when non-positive.
func NewResolver(cat *catalog.Catalog, threshold int) *Resolver {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	r := &Resolver{
		cat:       cat,
		threshold: threshold,
		exact:     make(map[types.Locale]map[string]int),
		index:     make(map[types.Locale][]candidate),
	}
	for _, loc := range types.SupportedLocales {
		r.exact[loc] = make(map[string]int, cat.Len())
		r.index[loc] = make([]candidate, 0, cat.Len())
		for _, card := range cat.Cards() {
			name := normalizeName(card.Name(loc), loc)
			r.exact[loc][name] = card.ID

			kws := card.KeywordsFor(loc)
			normKws := make([]string, 0, len(kws))
			for _, kw := range kws {
				if n := normalizeName(kw, loc); n != "" {
					normKws = append(normKws, n)
				}
			}
			r.index[loc] = append(r.index[loc], candidate{
				id:       card.ID,
				name:     name,
				keywords: normKws,
			})
		}
	}
	return r
}

// normalizeName canonicalizes a catalog name or keyword the same way user
// fragments are normalized, so exact lookups compare like with like.
func normalizeName(name string, loc types.Locale) string {
	return strings.Join(Normalize(name, loc), " ")
}

// Resolve maps normalized fragments to catalog cards. Each fragment is tried
// against the exact name index first; on a miss, the best approximate match
// at or above the resolver threshold wins. Duplicate cards across fragments
// keep only the first occurrence; later occurrences are resolved but
// non-contributing. Fragments that would exceed maxCards are reported
// unresolved with ReasonCapacity rather than ReasonNoMatch.
func (r *Resolver) Resolve(fragments []string, loc types.Locale, maxCards int) types.Resolution {
	if maxCards <= 0 {
		maxCards = DefaultMaxCards
	}
	res := types.Resolution{Locale: loc}
	seen := make(map[int]bool)

	for _, frag := range fragments {
		id, ok := r.exact[loc][frag]
		if !ok {
			if best := r.BestMatches(frag, loc, r.threshold, 1); len(best) > 0 {
				id, ok = best[0].Card.ID, true
			}
		}
		if !ok {
			res.Unresolved = append(res.Unresolved, types.UnresolvedFragment{
				Fragment: frag,
				Reason:   types.ReasonNoMatch,
			})
			continue
		}
		if seen[id] {
			// Already resolved by an earlier fragment; not an error,
			// but it contributes nothing new.
			continue
		}
		if len(res.Resolved) >= maxCards {
			res.Unresolved = append(res.Unresolved, types.UnresolvedFragment{
				Fragment: frag,
				Reason:   types.ReasonCapacity,
			})
			continue
		}
		seen[id] = true
		res.Resolved = append(res.Resolved, id)
	}
	return res
}

// BestMatches scores the fragment against every name and keyword in the
// locale and returns up to limit matches at or above the threshold, ordered
// best first. Ties at equal score prefer candidates whose name contains the
// fragment, then the lower card id, so the ordering is reproducible.
func (r *Resolver) BestMatches(fragment string, loc types.Locale, threshold, limit int) []Match {
	if fragment == "" || limit == 0 {
		return nil
	}

	matches := make([]Match, 0, 4)
	for _, cand := range r.index[loc] {
		score := similarity(fragment, cand.name)
		for _, kw := range cand.keywords {
			if s := similarity(fragment, kw); s > score {
				score = s
			}
		}
		if score < threshold {
			continue
		}
		card, _ := r.cat.ByID(cand.id)
		matches = append(matches, Match{Card: card, Score: score})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		ci := r.contains(matches[i].Card, fragment, loc)
		cj := r.contains(matches[j].Card, fragment, loc)
		if ci != cj {
			return ci
		}
		return matches[i].Card.ID < matches[j].Card.ID
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// similarity scores a fragment against a candidate 0-100, tolerant to token
// reordering (token-set ratio) and, for multi-word fragments, partial
// substring overlap (partial ratio). Single-word fragments never use the
// partial ratio: a short word sitting inside a longer name scores high on
// substring overlap without being a plausible reference to it.
func similarity(fragment, candidate string) int {
	score := fuzzy.TokenSetRatio(fragment, candidate)
	if strings.Contains(fragment, " ") {
		if partial := fuzzy.PartialRatio(fragment, candidate); partial > score {
			score = partial
		}
	}
	return score
}

func (r *Resolver) contains(card types.Card, fragment string, loc types.Locale) bool {
	return strings.Contains(normalizeName(card.Name(loc), loc), fragment)
}
