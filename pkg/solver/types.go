package solver

import (
	"sort"
	"strconv"
	"strings"

	"factoryopt/pkg/rational"
)

// Resource identifies a resource by its interned name. Ordering and
// equality are lexicographic on bytes.
type Resource string

// Quantity is an integer amount of a resource consumed or produced per
// recipe execution. A zero quantity marks a raw resource that the recipe
// names but does not consume.
type Quantity int64

// Recipe describes a transformation that consumes its inputs over
// Duration seconds to produce its outputs, at a fixed cost per machine.
// Each resource appears at most once per map.
type Recipe struct {
	Inputs   map[Resource]Quantity
	Outputs  map[Resource]Quantity
	Duration int64 // seconds per execution
	Cost     int64
}

// Demand is a required lower bound on the net production rate of a
// resource, in units per minute.
type Demand struct {
	Resource       Resource
	UnitsPerMinute int64
}

// Problem is an ordered set of recipes and demands. Recipe order fixes
// the row order of the tableau and the order of Solution.Uses.
type Problem struct {
	Recipes []Recipe
	Demands []Demand
}

// Solution is the optimal production plan for a Problem.
type Solution struct {
	// Uses[i] is the fractional number of machines running Recipes[i].
	Uses []rational.Rational
	// TotalRates is the gross production rate per resource in
	// units/minute, counting outputs only.
	TotalRates map[Resource]rational.Rational
	// NetRates is production minus consumption per resource in
	// units/minute. Resources a used recipe touches are present even when
	// the rate nets out to zero.
	NetRates map[Resource]rational.Rational
	// Cost is the total cost of the plan.
	Cost rational.Rational
}

// String renders the recipe in the problem grammar's own syntax, e.g.
// "2 Ore + (Water) -> 1 Ingot (4s, cost 10)".
func (r Recipe) String() string {
	var b strings.Builder
	writeResourceList(&b, r.Inputs)
	b.WriteString(" -> ")
	writeResourceList(&b, r.Outputs)
	b.WriteString(" (")
	b.WriteString(strconv.FormatInt(r.Duration, 10))
	b.WriteString("s, cost ")
	b.WriteString(strconv.FormatInt(r.Cost, 10))
	b.WriteString(")")
	return b.String()
}

// String renders the demand in the problem grammar's own syntax, e.g.
// "Iron (60/min)".
func (d Demand) String() string {
	return string(d.Resource) + " (" + strconv.FormatInt(d.UnitsPerMinute, 10) + "/min)"
}

// String renders the problem as a human-readable summary.
func (p *Problem) String() string {
	var b strings.Builder
	b.WriteString("Produce:\n")
	for _, demand := range p.Demands {
		b.WriteString("  ")
		b.WriteString(demand.String())
		b.WriteString("\n")
	}
	b.WriteString("Using:\n")
	for _, recipe := range p.Recipes {
		b.WriteString("  ")
		b.WriteString(recipe.String())
		b.WriteString("\n")
	}
	b.WriteString("Minimizing total cost.")
	return b.String()
}

// writeResourceList renders quantified resources in name order, with
// zero-quantity entries in raw-resource form.
func writeResourceList(b *strings.Builder, quantities map[Resource]Quantity) {
	for i, resource := range sortedKeys(quantities) {
		if i > 0 {
			b.WriteString(" + ")
		}
		if q := quantities[resource]; q > 0 {
			b.WriteString(strconv.FormatInt(int64(q), 10))
			b.WriteString(" ")
			b.WriteString(string(resource))
		} else {
			b.WriteString("(")
			b.WriteString(string(resource))
			b.WriteString(")")
		}
	}
}

// sortedKeys returns the map's resources in lexicographic order.
func sortedKeys(quantities map[Resource]Quantity) []Resource {
	keys := make([]Resource, 0, len(quantities))
	for resource := range quantities {
		keys = append(keys, resource)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
