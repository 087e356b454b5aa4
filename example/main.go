// Program example builds a small steel production problem in code and
// prints the optimized plan, demonstrating library use without the CLI.
package main

import (
	"fmt"

	"factoryopt/pkg/solver"
)

func main() {
	problem := &solver.Problem{
		Recipes: []solver.Recipe{
			{
				Inputs:   map[solver.Resource]solver.Quantity{"IronOre": 0},
				Outputs:  map[solver.Resource]solver.Quantity{"IronOre": 1},
				Duration: 1,
				Cost:     1,
			},
			{
				Inputs:   map[solver.Resource]solver.Quantity{"Coal": 0},
				Outputs:  map[solver.Resource]solver.Quantity{"Coal": 1},
				Duration: 1,
				Cost:     1,
			},
			{
				Inputs:   map[solver.Resource]solver.Quantity{"IronOre": 3, "Coal": 1},
				Outputs:  map[solver.Resource]solver.Quantity{"SteelIngot": 2},
				Duration: 4,
				Cost:     8,
			},
		},
		Demands: []solver.Demand{
			{Resource: "SteelIngot", UnitsPerMinute: 60},
		},
	}

	fmt.Println(problem)
	fmt.Println()

	solution, err := solver.Solve(problem)
	if err != nil {
		fmt.Printf("solve failed: %v\n", err)
		return
	}

	for i, recipe := range problem.Recipes {
		if !solution.Uses[i].IsZero() {
			fmt.Printf("%8s machines  %s\n", solution.Uses[i], recipe)
		}
	}
	fmt.Printf("\nSteel output: %s/min at total cost %s (~%s)\n",
		solution.NetRates["SteelIngot"],
		solution.Cost,
		solution.Cost.Decimal(2))
}
