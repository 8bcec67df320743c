package chart

import (
	"fmt"
	"sort"

	"github.com/TWhYNoTT/indicators-sub001/internal/column"
	"github.com/TWhYNoTT/indicators-sub001/internal/series"
)

// Category names group indicators on the dashboard grid.
const (
	CategoryCondition = "Infrastructure Condition"
	CategoryMobility  = "Mobility"
	CategorySafety    = "Safety"
	CategoryTransit   = "Transit"
)

var categoryOrder = []string{CategoryCondition, CategoryMobility, CategorySafety, CategoryTransit}

var jurisdictionCodes = []string{"ch", "hw", "pb", "cf", "dw", "pg"}

var jurisdictionLabels = map[string]string{
	"ch": "Colonial Heights",
	"hw": "Hopewell",
	"pb": "Petersburg",
	"cf": "Chesterfield",
	"dw": "Dinwiddie",
	"pg": "Prince George",
}

// CongestionTiers classifies a travel time index.
var CongestionTiers = &Classifier{
	Name: "Congestion",
	Tiers: []Tier{
		{Below: 1.05, Label: "No Congestion"},
		{Below: 1.3, Label: "Moderate Congestion"},
		{Below: 1.5, Label: "Heavy Congestion"},
	},
	Top: "Severe Congestion",
}

// SafetyTiers classifies fatalities per 100 million vehicle miles traveled.
var SafetyTiers = &Classifier{
	Name: "Safety",
	Tiers: []Tier{
		{Below: 0.8, Label: "Low Severity"},
		{Below: 1.1, Label: "Moderate Severity"},
		{Below: 1.4, Label: "Elevated Severity"},
	},
	Top:           "High Severity",
	SubDimensions: []string{"Fatality Rate"},
}

var allViews = []series.ViewMode{series.ViewTrend, series.ViewComparison, series.ViewHeatmap}

// Descriptors returns the indicator charts in dashboard order.
func Descriptors() []Descriptor {
	return []Descriptor{
		{
			ID:                  "bridges",
			Title:               "Bridge Conditions",
			Category:            CategoryCondition,
			Description:         "Share of bridge deck area rated poor, by owner.",
			Source:              "National Bridge Inventory",
			Dataset:             "bridges",
			Convention:          column.Delimited{Sep: "-"},
			SubDimensions:       []string{"All", "State", "Local"},
			SubLabels:           map[string]string{"All": "All owners", "State": "State-owned", "Local": "Locally owned"},
			Unit:                "share of deck area",
			Decimals:            3,
			DefaultEntities:     []string{"MPO"},
			DefaultSubDimension: "All",
			DefaultView:         series.ViewTrend,
			MaxSelected:         6,
			Views:               allViews,
			Order:               series.Descending,
		},
		{
			ID:                  "pavement",
			Title:               "Pavement Conditions",
			Category:            CategoryCondition,
			Description:         "Lane-miles in good, fair and poor condition.",
			Source:              "VDOT pavement management system",
			Dataset:             "pavement",
			Convention:          column.Prefixed{Codes: jurisdictionCodes},
			EntityLabels:        jurisdictionLabels,
			SubDimensions:       []string{"Good", "Fair", "Poor"},
			Unit:                "lane-miles",
			Decimals:            1,
			Shares:              true,
			DefaultEntities:     []string{"hw"},
			DefaultSubDimension: "Good",
			DefaultView:         series.ViewDistribution,
			MaxSelected:         6,
			Views:               []series.ViewMode{series.ViewTrend, series.ViewComparison, series.ViewDistribution, series.ViewBreakdown},
			Order:               series.Descending,
			Breakdown:           AcrossSubDimensions,
			Palette:             []string{"#2ca02c", "#ffbf00", "#d62728", "#1f77b4", "#9467bd", "#8c564b"},
		},
		{
			ID:                  "congestion",
			Title:               "Peak-Period Congestion",
			Category:            CategoryMobility,
			Description:         "Travel time index in the morning and evening peaks.",
			Source:              "INRIX / NPMRDS",
			Dataset:             "congestion",
			Convention:          column.Prefixed{Codes: jurisdictionCodes},
			EntityLabels:        jurisdictionLabels,
			SubDimensions:       []string{"AM", "PM"},
			SubLabels:           map[string]string{"AM": "AM peak", "PM": "PM peak"},
			Unit:                "travel time index",
			Decimals:            2,
			DefaultEntities:     []string{"hw"},
			DefaultSubDimension: "PM",
			DefaultView:         series.ViewTrend,
			MaxSelected:         5,
			Views:               allViews,
			Order:               series.Descending,
			Classifier:          CongestionTiers,
		},
		{
			ID:                  "reliability",
			Title:               "Travel Time Reliability",
			Category:            CategoryMobility,
			Description:         "Person-miles traveled that are reliable, and the truck travel time reliability index.",
			Source:              "NPMRDS",
			Dataset:             "reliability",
			Convention:          column.Delimited{Sep: "-"},
			SubDimensions:       []string{"LOTTR", "TTTR"},
			SubLabels:           map[string]string{"LOTTR": "Reliable person-miles", "TTTR": "Truck reliability index"},
			Units:               map[string]string{"LOTTR": "% reliable", "TTTR": "index"},
			Decimals:            2,
			SubDecimals:         map[string]int{"LOTTR": 1},
			DefaultEntities:     []string{"Interstate", "Non-Interstate NHS"},
			DefaultSubDimension: "LOTTR",
			DefaultView:         series.ViewTrend,
			MaxSelected:         5,
			Views:               []series.ViewMode{series.ViewTrend, series.ViewComparison},
			Order:               series.Ascending,
		},
		{
			ID:                  "commute",
			Title:               "Commute Mode Share",
			Category:            CategoryMobility,
			Description:         "Workers by means of transportation to work.",
			Source:              "American Community Survey 5-year estimates",
			Dataset:             "commute",
			Convention:          column.Prefixed{Codes: jurisdictionCodes},
			EntityLabels:        jurisdictionLabels,
			SubDimensions:       []string{"DriveAlone", "Carpool", "Transit", "Walk", "Remote"},
			SubLabels:           map[string]string{"DriveAlone": "Drove alone", "Remote": "Worked from home"},
			Unit:                "workers",
			Decimals:            0,
			Shares:              true,
			DefaultEntities:     []string{"pb", "cf"},
			DefaultSubDimension: "DriveAlone",
			DefaultView:         series.ViewComparison,
			MaxSelected:         6,
			Views:               []series.ViewMode{series.ViewTrend, series.ViewComparison, series.ViewDistribution, series.ViewBreakdown},
			Order:               series.Descending,
			Breakdown:           AcrossSubDimensions,
		},
		{
			ID:                  "safety",
			Title:               "Roadway Safety",
			Category:            CategorySafety,
			Description:         "Traffic fatalities, serious injuries and fatality rate per 100 million VMT.",
			Source:              "VDOT crash records",
			Dataset:             "safety",
			Convention:          column.Delimited{Sep: "-"},
			SubDimensions:       []string{"Fatality Rate", "Fatalities", "Serious Injuries"},
			Units:               map[string]string{"Fatality Rate": "per 100M VMT", "Fatalities": "people", "Serious Injuries": "people"},
			Decimals:            0,
			SubDecimals:         map[string]int{"Fatality Rate": 2},
			DefaultEntities:     []string{"Chesterfield", "Petersburg"},
			DefaultSubDimension: "Fatality Rate",
			DefaultView:         series.ViewTrend,
			MaxSelected:         5,
			Views:               allViews,
			Order:               series.Descending,
			Classifier:          SafetyTiers,
		},
		{
			ID:                  "transit",
			Title:               "Transit Ridership",
			Category:            CategoryTransit,
			Description:         "Annual unlinked passenger trips and revenue hours by service.",
			Source:              "National Transit Database",
			Dataset:             "transit",
			Convention:          column.Delimited{Sep: "-"},
			SubDimensions:       []string{"Ridership", "Revenue Hours"},
			Units:               map[string]string{"Ridership": "trips", "Revenue Hours": "hours"},
			Decimals:            0,
			DefaultEntities:     []string{"Fixed Route", "Paratransit", "Commuter Express", "Microtransit"},
			DefaultSubDimension: "Ridership",
			DefaultView:         series.ViewBreakdown,
			MaxSelected:         5,
			Views:               []series.ViewMode{series.ViewTrend, series.ViewComparison, series.ViewBreakdown},
			Order:               series.Descending,
			Breakdown:           AcrossEntities,
		},
		{
			ID:                  "vmt",
			Title:               "Vehicle Miles Traveled",
			Category:            CategoryMobility,
			Description:         "Daily vehicle miles traveled (thousands) and miles per resident.",
			Source:              "VDOT traffic data",
			Dataset:             "vmt",
			Convention:          column.Prefixed{Codes: jurisdictionCodes},
			EntityLabels:        jurisdictionLabels,
			SubDimensions:       []string{"Daily", "PerCapita"},
			SubLabels:           map[string]string{"Daily": "Daily VMT", "PerCapita": "Daily VMT per capita"},
			Units:               map[string]string{"Daily": "thousand miles", "PerCapita": "miles"},
			Decimals:            1,
			DefaultEntities:     []string{"ch", "hw", "pb", "dw", "pg"},
			DefaultSubDimension: "PerCapita",
			DefaultView:         series.ViewHeatmap,
			MaxSelected:         6,
			Views:               allViews,
			Order:               series.Descending,
		},
	}
}

// Catalog holds every loaded chart.
type Catalog struct {
	charts []*Chart
	byID   map[string]*Chart
}

// Category is one group of the dashboard grid.
type Category struct {
	Name   string
	Charts []*Chart
}

// NewCatalog loads each descriptor. Charts that fail to parse stay in the catalog in StateError.
func NewCatalog(descs ...Descriptor) *Catalog {
	cat := &Catalog{byID: make(map[string]*Chart, len(descs))}
	for _, d := range descs {
		c := Load(d)
		cat.charts = append(cat.charts, c)
		cat.byID[d.ID] = c
	}
	return cat
}

// Default loads the built-in indicator set.
func Default() *Catalog {
	return NewCatalog(Descriptors()...)
}

// Lookup returns the chart with id.
func (cat *Catalog) Lookup(id string) (*Chart, error) {
	c, ok := cat.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownChart, id)
	}
	return c, nil
}

// Charts returns the charts in registration order.
func (cat *Catalog) Charts() []*Chart {
	return append([]*Chart(nil), cat.charts...)
}

// Categories groups the charts by category in dashboard order. Unknown
// categories follow the known ones alphabetically.
func (cat *Catalog) Categories() []Category {
	groups := map[string][]*Chart{}
	for _, c := range cat.charts {
		groups[c.Descriptor.Category] = append(groups[c.Descriptor.Category], c)
	}
	var out []Category
	for _, name := range categoryOrder {
		if cs, ok := groups[name]; ok {
			out = append(out, Category{Name: name, Charts: cs})
			delete(groups, name)
		}
	}
	var rest []string
	for name := range groups {
		rest = append(rest, name)
	}
	sort.Strings(rest)
	for _, name := range rest {
		out = append(out, Category{Name: name, Charts: groups[name]})
	}
	return out
}
