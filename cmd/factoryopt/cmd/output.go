package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"factoryopt/pkg/rational"
	"factoryopt/pkg/solver"
)

// decimalScale is the number of decimal places used for the rounded
// machine-readable rendering of exact rationals.
const decimalScale = 6

// renderSolution writes the solution in the requested format. Zero uses
// and zero rates are omitted from every format.
func renderSolution(w io.Writer, problem *solver.Problem, solution *solver.Solution, format string) error {
	switch format {
	case "text":
		return renderText(w, problem, solution)
	case "json":
		return renderJSON(w, problem, solution)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// renderText writes the human-readable report: nonzero recipe uses, the
// nonzero gross and net production rates, and the total cost.
func renderText(w io.Writer, problem *solver.Problem, solution *solver.Solution) error {
	fmt.Fprintf(w, "Recipe Uses:\n\n")
	fmt.Fprintf(w, "%12s\tRecipe\n", "Uses")
	for i, recipe := range problem.Recipes {
		if !solution.Uses[i].IsZero() {
			fmt.Fprintf(w, "  %10s\t%s\n", solution.Uses[i], recipe)
		}
	}

	fmt.Fprintf(w, "\nTotal Production (units/min):\n\n")
	writeRates(w, solution.TotalRates)

	fmt.Fprintf(w, "\nNet Production:\n\n")
	writeRates(w, solution.NetRates)

	_, err := fmt.Fprintf(w, "\nFor a total cost of %s\n", solution.Cost)
	return err
}

// writeRates prints the nonzero entries of a rate map in resource order.
func writeRates(w io.Writer, rates map[solver.Resource]rational.Rational) {
	fmt.Fprintf(w, "%12s\tResource\n", "units/min")
	for _, resource := range sortedResources(rates) {
		if rate := rates[resource]; !rate.IsZero() {
			fmt.Fprintf(w, "  %10s\t%s\n", rate, resource)
		}
	}
}

// sortedResources returns the map's resources in lexicographic order.
func sortedResources(rates map[solver.Resource]rational.Rational) []solver.Resource {
	resources := make([]solver.Resource, 0, len(rates))
	for resource := range rates {
		resources = append(resources, resource)
	}
	sort.Slice(resources, func(i, j int) bool { return resources[i] < resources[j] })
	return resources
}

// valueJSON carries one exact rational alongside a rounded decimal
// rendering for consumers that do not parse fractions.
type valueJSON struct {
	Exact   string `json:"exact"`
	Decimal string `json:"decimal"`
}

func newValueJSON(r rational.Rational) valueJSON {
	return valueJSON{Exact: r.String(), Decimal: r.Decimal(decimalScale).String()}
}

// useJSON is one nonzero recipe use.
type useJSON struct {
	Recipe   string    `json:"recipe"`
	Machines valueJSON `json:"machines"`
}

// solutionJSON is the machine-readable report.
type solutionJSON struct {
	Uses       []useJSON            `json:"uses"`
	TotalRates map[string]valueJSON `json:"total_rates"`
	NetRates   map[string]valueJSON `json:"net_rates"`
	Cost       valueJSON            `json:"cost"`
}

// renderJSON writes the solution as indented JSON.
func renderJSON(w io.Writer, problem *solver.Problem, solution *solver.Solution) error {
	report := solutionJSON{
		Uses:       []useJSON{},
		TotalRates: rateMapJSON(solution.TotalRates),
		NetRates:   rateMapJSON(solution.NetRates),
		Cost:       newValueJSON(solution.Cost),
	}
	for i, recipe := range problem.Recipes {
		if !solution.Uses[i].IsZero() {
			report.Uses = append(report.Uses, useJSON{
				Recipe:   recipe.String(),
				Machines: newValueJSON(solution.Uses[i]),
			})
		}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

// rateMapJSON converts a rate map, dropping zero entries.
func rateMapJSON(rates map[solver.Resource]rational.Rational) map[string]valueJSON {
	result := make(map[string]valueJSON)
	for resource, rate := range rates {
		if !rate.IsZero() {
			result[string(resource)] = newValueJSON(rate)
		}
	}
	return result
}
