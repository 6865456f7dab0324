package words

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultBankShape(t *testing.T) {
	bank := DefaultBank()
	require.False(t, bank.Empty())

	seen := map[string]bool{}
	for _, d := range bank.Domains {
		assert.NotEmpty(t, d.Name)
		assert.GreaterOrEqual(t, len(d.Words), 5)
		for _, e := range d.Words {
			assert.False(t, seen[e.Word], "word %q appears in two domains", e.Word)
			seen[e.Word] = true
			assert.GreaterOrEqual(t, len(e.Similar), 3, "word %q needs spy-mode decoys", e.Word)
			assert.NotContains(t, e.Similar, e.Word)
		}
	}
}

func TestPickWordSkipsEmptyDomains(t *testing.T) {
	bank := &Bank{Domains: []Domain{
		{Name: "empty"},
		{Name: "full", Words: []Entry{{Word: "w", Similar: []string{"v"}}}},
	}}
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		d, e := bank.PickWord(rng)
		assert.Equal(t, "full", d.Name)
		assert.Equal(t, "w", e.Word)
	}
}

func TestDomainOf(t *testing.T) {
	bank := DefaultBank()

	d, ok := bank.DomainOf("pizza")
	require.True(t, ok)
	assert.Equal(t, "food", d.Name)

	_, ok = bank.DomainOf("no-such-word")
	assert.False(t, ok)
}

func TestRelatedExcludesCommonWord(t *testing.T) {
	bank := DefaultBank()
	d, _ := bank.DomainOf("tiger")
	rng := rand.New(rand.NewSource(2))

	for i := 0; i < 20; i++ {
		related := d.Related(rng, "tiger", 2)
		assert.Len(t, related, 2)
		assert.NotContains(t, related, "tiger")
	}
}

func TestDecoysAvoidExcludedDomain(t *testing.T) {
	bank := DefaultBank()
	rng := rand.New(rand.NewSource(3))

	foodWords := map[string]bool{}
	d, _ := bank.DomainOf("pizza")
	for _, e := range d.Words {
		foodWords[e.Word] = true
	}

	for i := 0; i < 20; i++ {
		decoys := bank.Decoys(rng, "food", 2)
		assert.Len(t, decoys, 2)
		for _, w := range decoys {
			assert.False(t, foodWords[w], "decoy %q came from the excluded domain", w)
		}
	}
}

func TestDecoysSingleDomainBank(t *testing.T) {
	bank := &Bank{Domains: []Domain{
		{Name: "only", Words: []Entry{
			{Word: "a"}, {Word: "b"}, {Word: "c"},
		}},
	}}
	rng := rand.New(rand.NewSource(4))
	decoys := bank.Decoys(rng, "only", 2)
	assert.Len(t, decoys, 2, "single-domain banks reuse the same domain")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.json")
	data := `{"domains":[{"name":"d","words":[{"word":"w","similar":["x","y"]}]}]}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	bank, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, bank.Domains, 1)
	assert.Equal(t, "w", bank.Domains[0].Words[0].Word)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoadFileRejectsEmptyBank(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"domains":[]}`), 0o644))

	_, err := LoadFile(path)
	assert.Error(t, err)
}
