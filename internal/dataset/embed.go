package dataset

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"
)

//go:embed data/*.csv
var literals embed.FS

// Literal returns the embedded CSV literal for a dataset name.
func Literal(name string) (string, error) {
	b, err := literals.ReadFile(path.Join("data", name+".csv"))
	if err != nil {
		return "", fmt.Errorf("dataset %q (embedded: %s): %w", name, strings.Join(Names(), ", "), err)
	}
	return string(b), nil
}

// Names lists the embedded datasets in alphabetical order.
func Names() []string {
	entries, err := literals.ReadDir("data")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if n, ok := strings.CutSuffix(e.Name(), ".csv"); ok {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names
}

// Load parses an embedded dataset.
func Load(name string) (*Table, error) {
	lit, err := Literal(name)
	if err != nil {
		return nil, err
	}
	return Parse(name, lit)
}
