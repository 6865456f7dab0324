// Package words holds the static word bank the role assigner draws from:
// a set of themed domains, each containing words, each word carrying a
// list of near-synonym decoys used in spy mode.
package words

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
)

// Entry is a single playable word plus its spy-mode decoys.
type Entry struct {
	Word    string   `json:"word"`
	Similar []string `json:"similar"`
}

// Domain is a themed group of entries. Options for a round mix words from
// the common word's domain with words from one other domain.
type Domain struct {
	Name  string  `json:"name"`
	Words []Entry `json:"words"`
}

// Bank is an immutable catalogue of domains. All picks are driven by the
// caller-supplied random source so tests can fix the sequence.
type Bank struct {
	Domains []Domain `json:"domains"`
}

// Empty reports whether the bank has no usable entries.
func (b *Bank) Empty() bool {
	if b == nil {
		return true
	}
	for _, d := range b.Domains {
		if len(d.Words) > 0 {
			return false
		}
	}
	return true
}

// PickWord selects a domain uniformly at random, then an entry within it
// uniformly at random. Domains with no words are skipped by retrying the
// domain pick; the caller must ensure the bank is non-empty.
func (b *Bank) PickWord(rng *rand.Rand) (Domain, Entry) {
	for {
		d := b.Domains[rng.Intn(len(b.Domains))]
		if len(d.Words) == 0 {
			continue
		}
		return d, d.Words[rng.Intn(len(d.Words))]
	}
}

// DomainOf finds the domain containing the given word. Used on
// continuation rounds, where the sticky common word is known but the
// round needs a fresh option set. Returns false if the word is not in
// the bank (a custom bank swapped out mid-game).
func (b *Bank) DomainOf(word string) (Domain, bool) {
	for _, d := range b.Domains {
		for _, e := range d.Words {
			if e.Word == word {
				return d, true
			}
		}
	}
	return Domain{}, false
}

// Related samples up to n words from the domain, excluding the common
// word, uniformly without replacement. A short domain yields fewer than
// n words rather than an error.
func (d Domain) Related(rng *rand.Rand, common string, n int) []string {
	candidates := make([]string, 0, len(d.Words))
	for _, e := range d.Words {
		if e.Word != common {
			candidates = append(candidates, e.Word)
		}
	}
	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	if len(candidates) > n {
		candidates = candidates[:n]
	}
	return candidates
}

// Decoys samples up to n words from a domain other than the named one,
// chosen uniformly among the remaining domains. With a single-domain
// bank the same domain is reused.
func (b *Bank) Decoys(rng *rand.Rand, exclude string, n int) []string {
	idx := rng.Intn(len(b.Domains))
	for b.Domains[idx].Name == exclude && len(b.Domains) > 1 {
		idx = rng.Intn(len(b.Domains))
	}
	d := b.Domains[idx]
	candidates := make([]string, 0, len(d.Words))
	for _, e := range d.Words {
		candidates = append(candidates, e.Word)
	}
	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	if len(candidates) > n {
		candidates = candidates[:n]
	}
	return candidates
}

// LoadFile reads a custom bank from a JSON file with the same shape as
// the compiled-in default.
func LoadFile(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read word bank: %w", err)
	}
	var b Bank
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parse word bank %s: %w", path, err)
	}
	if b.Empty() {
		return nil, fmt.Errorf("word bank %s has no entries", path)
	}
	return &b, nil
}
