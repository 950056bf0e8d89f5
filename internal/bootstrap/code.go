package bootstrap

import (
	"strconv"
	"strings"
	"unicode"
)

// CodeGenerator derives club codes from club names and keeps generated
// codes unique within one import run.
type CodeGenerator struct {
	counters map[string]int
}

// NewCodeGenerator creates a generator with no codes taken.
func NewCodeGenerator() *CodeGenerator {
	return &CodeGenerator{counters: make(map[string]int)}
}

// Reserve marks a code as taken so generated codes avoid it. Used for
// the codes that arrive preassigned in the structured dataset.
func (g *CodeGenerator) Reserve(code string) {
	base := strings.ToLower(code)
	if _, ok := g.counters[base]; !ok {
		g.counters[base] = 0
	}
}

// Generate returns a code for the club name: the first letter of each
// space-separated word, lowercased. A name whose base code is already
// taken gets a numeric suffix, counting up from 0 per base.
func (g *CodeGenerator) Generate(name string) string {
	var b strings.Builder
	for _, word := range strings.Fields(name) {
		b.WriteRune(unicode.ToLower([]rune(word)[0]))
	}
	base := b.String()

	n, taken := g.counters[base]
	if !taken {
		g.counters[base] = 0
		return base
	}
	g.counters[base] = n + 1
	return base + strconv.Itoa(n)
}
