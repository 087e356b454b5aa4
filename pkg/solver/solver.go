// Package solver computes minimum-cost production plans by reducing a
// recipe/demand problem to a linear program and solving it exactly with
// the Simplex algorithm over rationals.
//
// A recipe is flattened into a vector of signed production rates per
// resource (outputs positive, inputs negative, everything divided by the
// recipe duration). With one unknown per recipe giving the fractional
// number of machines running it, the problem is
//
//	minimize  dot(c, x)
//	subject to  R x >= d,  x >= 0
//
// where c holds the per-recipe costs, R the per-resource rates, and d the
// demanded rates. Demands for intermediate resources need not be stated:
// every resource row demands at least zero net production, so recipes may
// not lean on externally provided inputs, and intermediate demand emerges
// from feasibility.
//
// The minimization is not in standard form, so the solver works on the
// dual
//
//	maximize  dot(d, y)
//	subject to  R^T y <= c,  y >= 0
//
// which, because costs are non-negative, admits the trivial basic
// feasible starting point y = 0 with the slack variables equal to c. The
// slack variables of the dual are exactly the primal unknowns x, so after
// optimizing the tableau the plan is read out of the objective row.
package solver

import (
	"errors"
	"sort"

	"factoryopt/pkg/rational"
	"factoryopt/pkg/tableau"
)

// ErrNoSolution is returned when no plan can satisfy the demands, which
// surfaces during pivoting as an unbounded dual.
var ErrNoSolution = errors.New("solver: no feasible production plan")

// secondsPerMinute converts per-minute demand rates to the per-second
// rates used in the tableau.
const secondsPerMinute = 60

// Solve computes the minimum-cost plan for the problem. It is stateless
// and deterministic: the same problem yields the same solution.
func Solve(problem *Problem) (*Solution, error) {
	resources := collectResources(problem)
	optimal, err := optimize(buildTableau(resources, problem))
	if err != nil {
		return nil, err
	}
	uses := extractUses(optimal)
	total, net := deriveRates(problem, uses)
	return &Solution{
		Uses:       uses,
		TotalRates: total,
		NetRates:   net,
		Cost:       extractCost(optimal),
	}, nil
}

// collectResources returns the sorted, deduplicated set of resources
// referenced by any recipe or demand. Its order fixes the tableau's
// column order.
func collectResources(problem *Problem) []Resource {
	seen := make(map[Resource]struct{})
	for _, recipe := range problem.Recipes {
		for resource := range recipe.Inputs {
			seen[resource] = struct{}{}
		}
		for resource := range recipe.Outputs {
			seen[resource] = struct{}{}
		}
	}
	for _, demand := range problem.Demands {
		seen[demand.Resource] = struct{}{}
	}
	resources := make([]Resource, 0, len(seen))
	for resource := range seen {
		resources = append(resources, resource)
	}
	sort.Slice(resources, func(i, j int) bool { return resources[i] < resources[j] })
	return resources
}

// buildTableau lays out the initial Simplex tableau for the dual problem:
//
//	 R^T  I  0 | c
//	-d^T  0  1 | 0
//
// With r recipes over n resources the table is (r+1) rows by (n+r+2)
// columns. The identity block holds the dual slack variables, which are
// the primal unknowns.
func buildTableau(resources []Resource, problem *Problem) *tableau.Table {
	r := len(problem.Recipes)
	n := len(resources)
	column := func(resource Resource) int {
		i := sort.Search(n, func(i int) bool { return resources[i] >= resource })
		return i
	}
	t := tableau.New(n+r+2, r+1)
	for y, recipe := range problem.Recipes {
		row := t.Row(y)
		duration := rational.FromInt64(recipe.Duration)
		// Net rate per resource: outputs minus inputs, per second. A
		// resource listed on both sides nets out here.
		for resource, quantity := range recipe.Inputs {
			c := column(resource)
			row[c] = row[c].Sub(rational.FromInt64(int64(quantity)).Div(duration))
		}
		for resource, quantity := range recipe.Outputs {
			c := column(resource)
			row[c] = row[c].Add(rational.FromInt64(int64(quantity)).Div(duration))
		}
		row[n+y] = rational.One()
		row[t.Width()-1] = rational.FromInt64(recipe.Cost)
	}
	objective := t.Row(r)
	for _, demand := range problem.Demands {
		objective[column(demand.Resource)] = rational.NewInt64(-demand.UnitsPerMinute, secondsPerMinute)
	}
	objective[n+r] = rational.One()
	return t
}

// pivotColumn finds the most negative entry of the objective row, whose
// variable gives the steepest improvement per unit of change. Ties break
// toward the smallest column index. A second return of false means every
// entry is non-negative and the tableau is optimal.
func pivotColumn(t *tableau.Table) (int, bool) {
	objective := t.Row(t.Height() - 1)
	best := 0
	for x := 1; x < len(objective); x++ {
		if objective[x].Cmp(objective[best]) < 0 {
			best = x
		}
	}
	if objective[best].Sign() >= 0 {
		return 0, false
	}
	return best, true
}

// pivotRow applies the minimum-ratio test over rows with a strictly
// positive coefficient in the pivot column, which keeps every basic
// variable non-negative after the pivot. Ties break toward the smallest
// row index. A second return of false means the entering variable is
// unbounded.
func pivotRow(t *tableau.Table, column int) (int, bool) {
	bestRow := -1
	var bestRatio rational.Rational
	for y := 0; y < t.Height()-1; y++ {
		row := t.Row(y)
		coefficient := row[column]
		if coefficient.Sign() <= 0 {
			continue
		}
		ratio := row[len(row)-1].Div(coefficient)
		if bestRow < 0 || ratio.Cmp(bestRatio) < 0 {
			bestRow = y
			bestRatio = ratio
		}
	}
	if bestRow < 0 {
		return 0, false
	}
	return bestRow, true
}

// optimize runs Simplex pivots in place until the tableau is optimal.
// Basic feasibility (non-negative right-hand sides) and a non-decreasing
// objective value hold across every iteration.
func optimize(t *tableau.Table) (*tableau.Table, error) {
	for {
		column, ok := pivotColumn(t)
		if !ok {
			return t, nil
		}
		row, ok := pivotRow(t, column)
		if !ok {
			// The dual is unbounded, so the primal has no feasible plan.
			return nil, ErrNoSolution
		}
		// Gaussian elimination: scale the pivot row so the pivot entry is
		// 1, then cancel the pivot column everywhere else.
		pivot := t.Row(row)
		scaleRow(pivot, pivot[column].Inverse())
		for y := 0; y < t.Height(); y++ {
			if y == row {
				continue
			}
			target := t.Row(y)
			addMultiple(target, pivot, target[column].Neg())
		}
	}
}

// scaleRow multiplies every entry of the row by x.
func scaleRow(row []rational.Rational, x rational.Rational) {
	for i := range row {
		row[i] = row[i].Mul(x)
	}
}

// addMultiple adds x times the source row to the destination row.
func addMultiple(dst, src []rational.Rational, x rational.Rational) {
	for i := range dst {
		dst[i] = dst[i].Add(src[i].Mul(x))
	}
}

// extractUses reads the primal solution out of an optimal dual tableau:
// the machine counts sit in the objective row under the slack columns.
func extractUses(t *tableau.Table) []rational.Rational {
	r := t.Height() - 1
	n := t.Width() - r - 2
	objective := t.Row(r)
	uses := make([]rational.Rational, r)
	copy(uses, objective[n:n+r])
	return uses
}

// extractCost reads the optimal cost from the objective row's right-hand
// side.
func extractCost(t *tableau.Table) rational.Rational {
	objective := t.Row(t.Height() - 1)
	return objective[len(objective)-1]
}

// deriveRates converts machine counts back into per-resource rates in
// units per minute. Total counts gross production only; net subtracts
// consumption. Resources touched by a recipe stay in the maps even at a
// zero rate so callers can tell "balanced" from "absent".
func deriveRates(problem *Problem, uses []rational.Rational) (total, net map[Resource]rational.Rational) {
	total = make(map[Resource]rational.Rational)
	net = make(map[Resource]rational.Rational)
	perMinute := rational.FromInt64(secondsPerMinute)
	for i, recipe := range problem.Recipes {
		duration := rational.FromInt64(recipe.Duration)
		scale := perMinute.Mul(uses[i]).Div(duration)
		for resource, quantity := range recipe.Inputs {
			rate := scale.Mul(rational.FromInt64(int64(quantity)))
			net[resource] = net[resource].Sub(rate)
		}
		for resource, quantity := range recipe.Outputs {
			rate := scale.Mul(rational.FromInt64(int64(quantity)))
			total[resource] = total[resource].Add(rate)
			net[resource] = net[resource].Add(rate)
		}
	}
	return total, net
}
