// Command gensizes writes the Storage constraint of package bstr: one union
// term per admitted capacity budget.
//
// Go caps a type-set union at 100 terms, so budgets are dense up to -dense and
// every -step bytes after that, always ending at -max.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"go/format"
	"os"
	"strings"
	"text/template"

	"lil-go/internal/fn"
	"lil-go/pkg/bitwidth"
	"lil-go/pkg/interval"
	"lil-go/pkg/log"
)

// maxUnionTerms is the compiler's limit on the terms of one union.
const maxUnionTerms = 100

var tmpl = template.Must(template.New("storage").Parse(`// Code generated by cmd/gensizes; DO NOT EDIT.

package {{.Package}}

// Storage is the set of inline arrays a Str can live in. The array length is the
// capacity budget N: N-1 content bytes plus one terminator slot.
type Storage interface {
{{- range .Terms}}
{{.}}
{{- end}}
}

// Budgets lists every array length admitted by Storage, ascending.
var Budgets = []int{
{{- range .Rows}}
	{{.}},
{{- end}}
}
`))

// budgets returns 1..dense, then every step below largest, then largest.
func budgets(dense, step, largest int) ([]int, error) {
	if dense < 1 || step < 1 || dense > largest {
		return nil, fmt.Errorf("need 1 <= dense <= max and step >= 1 (dense %d, step %d, max %d)", dense, step, largest)
	}
	// The remaining-capacity byte stores N-1.
	if !bitwidth.FitsUnsigned(uint64(largest-1), bitwidth.BitCount[uint8]()) {
		return nil, fmt.Errorf("budget %d: remaining capacity %d does not fit a byte", largest, largest-1)
	}
	var out []int
	for n := 1; n <= dense; n++ {
		out = append(out, n)
	}
	for n := dense + step; n < largest; n += step {
		out = append(out, n)
	}
	if out[len(out)-1] != largest {
		out = append(out, largest)
	}
	if len(out) > maxUnionTerms {
		return nil, fmt.Errorf("%d budgets exceed the %d term union limit", len(out), maxUnionTerms)
	}
	return out, nil
}

// terms renders the union one term per line, continuation lines indented.
func terms(budgets []int) []string {
	out := make([]string, len(budgets))
	for i, n := range budgets {
		indent := fn.T(i == 0, "\t", "\t\t")
		sep := fn.T(i == len(budgets)-1, "", " |")
		out[i] = fmt.Sprintf("%s~[%d]byte%s", indent, n, sep)
	}
	return out
}

// rows lays budgets out perRow to a line.
func rows(budgets []int, perRow int) []string {
	var out []string
	for len(budgets) > 0 {
		k := interval.Minimum(perRow, len(budgets))
		parts := make([]string, k)
		for i, n := range budgets[:k] {
			parts[i] = fmt.Sprint(n)
		}
		out = append(out, strings.Join(parts, ", "))
		budgets = budgets[k:]
	}
	return out
}

func generate(pkg string, budgets []int) ([]byte, error) {
	var buf bytes.Buffer
	err := tmpl.Execute(&buf, map[string]any{
		"Package": pkg,
		"Terms":   terms(budgets),
		"Rows":    rows(budgets, 16),
	})
	if err != nil {
		return nil, err
	}
	return format.Source(buf.Bytes())
}

func main() {
	out := flag.String("o", "storage_gen.go", "Output file")
	pkg := flag.String("pkg", "bstr", "Package name")
	dense := flag.Int("dense", 64, "Every budget up to this one is admitted")
	step := flag.Int("step", 8, "Spacing of budgets above -dense")
	largest := flag.Int("max", 255, "Largest budget")
	flag.Parse()
	log.SetStd(false)

	bs, err := budgets(*dense, *step, *largest)
	if err != nil {
		log.Fatalf("gensizes: %v", err)
	}
	src, err := generate(*pkg, bs)
	if err != nil {
		log.Fatalf("gensizes: %v", err)
	}
	if err := os.WriteFile(*out, src, 0o644); err != nil {
		log.Fatalf("gensizes: %v", err)
	}
	log.Info().Int("budgets", len(bs)).Str("file", *out).Msg("storage written")
}
