package chart

import (
	"github.com/TWhYNoTT/indicators-sub001/internal/column"
	"github.com/TWhYNoTT/indicators-sub001/internal/series"
)

// DefaultPalette is the ordered palette colours are drawn from. The first
// selected entity always receives the first colour.
var DefaultPalette = []string{"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd", "#8c564b"}

// BreakdownAxis decides what the slices of a breakdown pie are.
type BreakdownAxis int

const (
	// AcrossSubDimensions splits the first selected entity into its sub-dimensions.
	AcrossSubDimensions BreakdownAxis = iota
	// AcrossEntities splits the selected sub-dimension across the selected entities.
	AcrossEntities
)

// Tier is one band of a classifier. Values below Below fall into it.
type Tier struct {
	Below float64
	Label string
}

// Classifier maps a value to a severity label.
type Classifier struct {
	Name  string
	Tiers []Tier // ascending by Below
	Top   string // label for values at or above the last tier
	// SubDimensions restricts the classifier; empty applies it to all.
	SubDimensions []string
}

// Classify returns the first tier v falls below, or Top.
func (cl *Classifier) Classify(v float64) string {
	for _, t := range cl.Tiers {
		if v < t.Below {
			return t.Label
		}
	}
	return cl.Top
}

// AppliesTo reports whether the classifier covers sub.
func (cl *Classifier) AppliesTo(sub string) bool {
	return len(cl.SubDimensions) == 0 || contains(cl.SubDimensions, sub)
}

// Descriptor is the immutable configuration of one indicator chart.
type Descriptor struct {
	ID          string
	Title       string
	Category    string
	Description string
	Source      string

	// Dataset names the embedded literal; Literal overrides it when set.
	Dataset    string
	Literal    string
	Convention column.Convention

	EntityLabels  map[string]string
	SubDimensions []string // display order; the fixed list for share charts
	SubLabels     map[string]string

	Unit        string
	Units       map[string]string
	Decimals    int
	SubDecimals map[string]int

	// Shares marks charts whose sub-dimensions sum to a per-row total; values are
	// reported as percentages of that total.
	Shares bool

	DefaultEntities     []string
	DefaultSubDimension string
	DefaultView         series.ViewMode
	MaxSelected         int
	Views               []series.ViewMode

	Order      series.SortOrder
	Breakdown  BreakdownAxis
	Classifier *Classifier
	Palette    []string
}
