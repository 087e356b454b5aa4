package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"factoryopt/pkg/rational"
)

// recipe builds a Recipe from quantity maps; nil maps become empty.
func recipe(inputs, outputs map[Resource]Quantity, duration, cost int64) Recipe {
	if inputs == nil {
		inputs = map[Resource]Quantity{}
	}
	if outputs == nil {
		outputs = map[Resource]Quantity{}
	}
	return Recipe{Inputs: inputs, Outputs: outputs, Duration: duration, Cost: cost}
}

// minerFor is a raw-resource recipe: it consumes nothing and produces
// one unit per second.
func minerFor(resource Resource, cost int64) Recipe {
	return recipe(
		map[Resource]Quantity{resource: 0},
		map[Resource]Quantity{resource: 1},
		1, cost,
	)
}

func assertRate(t *testing.T, rates map[Resource]rational.Rational, resource Resource, want rational.Rational) {
	t.Helper()
	rate, ok := rates[resource]
	require.True(t, ok, "no rate entry for %s", resource)
	assert.True(t, rate.Equal(want), "rate for %s: got %s, want %s", resource, rate, want)
}

func TestCollectResourcesSortedAndDeduplicated(t *testing.T) {
	problem := &Problem{
		Recipes: []Recipe{
			recipe(
				map[Resource]Quantity{"Ore": 1},
				map[Resource]Quantity{"Bar": 1},
				1, 1,
			),
			recipe(
				map[Resource]Quantity{"Bar": 1},
				map[Resource]Quantity{"Plate": 1},
				1, 1,
			),
		},
		Demands: []Demand{{Resource: "Plate", UnitsPerMinute: 60}},
	}
	assert.Equal(t, []Resource{"Bar", "Ore", "Plate"}, collectResources(problem))
}

func TestBuildTableauLayout(t *testing.T) {
	// One recipe turning 2 Ore into 1 Bar every 4 seconds at cost 10,
	// with a demand of 30 Bar/min. Columns: Bar, Ore, slack, objective,
	// rhs.
	problem := &Problem{
		Recipes: []Recipe{
			recipe(
				map[Resource]Quantity{"Ore": 2},
				map[Resource]Quantity{"Bar": 1},
				4, 10,
			),
		},
		Demands: []Demand{{Resource: "Bar", UnitsPerMinute: 30}},
	}
	table := buildTableau(collectResources(problem), problem)
	require.Equal(t, 5, table.Width())
	require.Equal(t, 2, table.Height())

	row := table.Row(0)
	assert.True(t, row[0].Equal(rational.NewInt64(1, 4)), "Bar rate")
	assert.True(t, row[1].Equal(rational.NewInt64(-1, 2)), "Ore rate")
	assert.True(t, row[2].Equal(rational.One()), "slack")
	assert.True(t, row[3].IsZero(), "objective column")
	assert.True(t, row[4].Equal(rational.FromInt64(10)), "cost")

	objective := table.Row(1)
	assert.True(t, objective[0].Equal(rational.NewInt64(-1, 2)), "demand")
	assert.True(t, objective[1].IsZero())
	assert.True(t, objective[2].IsZero())
	assert.True(t, objective[3].Equal(rational.One()))
	assert.True(t, objective[4].IsZero())
}

func TestSolvePassthrough(t *testing.T) {
	problem := &Problem{
		Recipes: []Recipe{
			recipe(
				map[Resource]Quantity{"IronOre": 0},
				map[Resource]Quantity{"Iron": 1},
				1, 1,
			),
		},
		Demands: []Demand{{Resource: "Iron", UnitsPerMinute: 60}},
	}
	solution, err := Solve(problem)
	require.NoError(t, err)
	require.Len(t, solution.Uses, 1)
	assert.True(t, solution.Uses[0].Equal(rational.One()))
	assert.True(t, solution.Cost.Equal(rational.One()))
	assertRate(t, solution.NetRates, "Iron", rational.FromInt64(60))
	assertRate(t, solution.NetRates, "IronOre", rational.Zero())
	assertRate(t, solution.TotalRates, "Iron", rational.FromInt64(60))
}

func TestSolveTwoStepChain(t *testing.T) {
	problem := &Problem{
		Recipes: []Recipe{
			recipe(
				map[Resource]Quantity{"Ore": 0},
				map[Resource]Quantity{"Bar": 1},
				1, 1,
			),
			recipe(
				map[Resource]Quantity{"Bar": 1},
				map[Resource]Quantity{"Plate": 1},
				1, 1,
			),
		},
		Demands: []Demand{{Resource: "Plate", UnitsPerMinute: 60}},
	}
	solution, err := Solve(problem)
	require.NoError(t, err)
	require.Len(t, solution.Uses, 2)
	assert.True(t, solution.Uses[0].Equal(rational.One()))
	assert.True(t, solution.Uses[1].Equal(rational.One()))
	assert.True(t, solution.Cost.Equal(rational.FromInt64(2)))
	assertRate(t, solution.NetRates, "Plate", rational.FromInt64(60))
	assertRate(t, solution.NetRates, "Bar", rational.Zero())
	assertRate(t, solution.NetRates, "Ore", rational.Zero())
	// Gross production counts the intermediate Bar that the Plate press
	// consumes.
	assertRate(t, solution.TotalRates, "Bar", rational.FromInt64(60))
	assertRate(t, solution.TotalRates, "Plate", rational.FromInt64(60))
}

func TestSolvePrefersCheaperRecipe(t *testing.T) {
	problem := &Problem{
		Recipes: []Recipe{
			minerFor("Iron", 1),
			minerFor("Iron", 3),
		},
		Demands: []Demand{{Resource: "Iron", UnitsPerMinute: 60}},
	}
	solution, err := Solve(problem)
	require.NoError(t, err)
	assert.True(t, solution.Uses[0].Equal(rational.One()), "cheap recipe runs")
	assert.True(t, solution.Uses[1].IsZero(), "expensive recipe idles")
	assert.True(t, solution.Cost.Equal(rational.One()))
}

func TestSolveFractionalUse(t *testing.T) {
	problem := &Problem{
		Recipes: []Recipe{minerFor("Iron", 1)},
		Demands: []Demand{{Resource: "Iron", UnitsPerMinute: 30}},
	}
	solution, err := Solve(problem)
	require.NoError(t, err)
	assert.True(t, solution.Uses[0].Equal(rational.NewInt64(1, 2)))
	assert.True(t, solution.Cost.Equal(rational.NewInt64(1, 2)))
	assertRate(t, solution.NetRates, "Iron", rational.FromInt64(30))
}

func TestSolveSteelChain(t *testing.T) {
	problem := &Problem{
		Recipes: []Recipe{
			minerFor("IronOre", 1),
			minerFor("Coal", 1),
			recipe(
				map[Resource]Quantity{"IronOre": 3, "Coal": 1},
				map[Resource]Quantity{"SteelIngot": 2},
				4, 8,
			),
		},
		Demands: []Demand{{Resource: "SteelIngot", UnitsPerMinute: 60}},
	}
	solution, err := Solve(problem)
	require.NoError(t, err)
	assert.True(t, solution.Uses[0].Equal(rational.NewInt64(3, 2)), "ore miners: got %s", solution.Uses[0])
	assert.True(t, solution.Uses[1].Equal(rational.NewInt64(1, 2)), "coal miners: got %s", solution.Uses[1])
	assert.True(t, solution.Uses[2].Equal(rational.FromInt64(2)), "steel furnaces: got %s", solution.Uses[2])
	assert.True(t, solution.Cost.Equal(rational.FromInt64(18)), "cost: got %s", solution.Cost)
	assertRate(t, solution.NetRates, "SteelIngot", rational.FromInt64(60))
	assertRate(t, solution.NetRates, "IronOre", rational.Zero())
	assertRate(t, solution.NetRates, "Coal", rational.Zero())
	assertRate(t, solution.TotalRates, "IronOre", rational.FromInt64(90))
	assertRate(t, solution.TotalRates, "Coal", rational.FromInt64(30))
}

func TestSolveCatalystNetsOut(t *testing.T) {
	// Water passes through the press untouched, so its column nets to
	// zero and no external Water supply is needed.
	problem := &Problem{
		Recipes: []Recipe{
			recipe(
				map[Resource]Quantity{"Ore": 0, "Water": 1},
				map[Resource]Quantity{"Water": 1, "Ingot": 1},
				1, 1,
			),
		},
		Demands: []Demand{{Resource: "Ingot", UnitsPerMinute: 60}},
	}
	solution, err := Solve(problem)
	require.NoError(t, err)
	assert.True(t, solution.Uses[0].Equal(rational.One()))
	assertRate(t, solution.NetRates, "Water", rational.Zero())
	assertRate(t, solution.NetRates, "Ingot", rational.FromInt64(60))
	assertRate(t, solution.TotalRates, "Water", rational.FromInt64(60))
}

func TestSolveInfeasibleDemand(t *testing.T) {
	problem := &Problem{
		Recipes: []Recipe{minerFor("Iron", 1)},
		Demands: []Demand{{Resource: "Copper", UnitsPerMinute: 60}},
	}
	solution, err := Solve(problem)
	assert.Nil(t, solution)
	assert.ErrorIs(t, err, ErrNoSolution)
}

func TestSolveNoRecipes(t *testing.T) {
	problem := &Problem{
		Demands: []Demand{{Resource: "Iron", UnitsPerMinute: 60}},
	}
	_, err := Solve(problem)
	assert.ErrorIs(t, err, ErrNoSolution)
}

func TestSolveEmptyProblem(t *testing.T) {
	solution, err := Solve(&Problem{})
	require.NoError(t, err)
	assert.Empty(t, solution.Uses)
	assert.True(t, solution.Cost.IsZero())
}

func TestSolveZeroDemandCostsNothing(t *testing.T) {
	problem := &Problem{
		Recipes: []Recipe{minerFor("Iron", 5)},
		Demands: []Demand{{Resource: "Iron", UnitsPerMinute: 0}},
	}
	solution, err := Solve(problem)
	require.NoError(t, err)
	assert.True(t, solution.Uses[0].IsZero())
	assert.True(t, solution.Cost.IsZero())
}

func TestSolveRecipeOrderPermutesUses(t *testing.T) {
	cheap := minerFor("Iron", 1)
	expensive := minerFor("Iron", 3)
	demands := []Demand{{Resource: "Iron", UnitsPerMinute: 60}}

	forward, err := Solve(&Problem{Recipes: []Recipe{cheap, expensive}, Demands: demands})
	require.NoError(t, err)
	reversed, err := Solve(&Problem{Recipes: []Recipe{expensive, cheap}, Demands: demands})
	require.NoError(t, err)

	assert.True(t, forward.Uses[0].Equal(reversed.Uses[1]))
	assert.True(t, forward.Uses[1].Equal(reversed.Uses[0]))
	assert.True(t, forward.Cost.Equal(reversed.Cost))
	assertRate(t, reversed.NetRates, "Iron", rational.FromInt64(60))
}

func TestSolveCostScaling(t *testing.T) {
	base := &Problem{
		Recipes: []Recipe{
			minerFor("Ore", 2),
			recipe(
				map[Resource]Quantity{"Ore": 1},
				map[Resource]Quantity{"Bar": 1},
				2, 3,
			),
		},
		Demands: []Demand{{Resource: "Bar", UnitsPerMinute: 60}},
	}
	scaled := &Problem{
		Recipes: []Recipe{
			minerFor("Ore", 2*5),
			recipe(
				map[Resource]Quantity{"Ore": 1},
				map[Resource]Quantity{"Bar": 1},
				2, 3*5,
			),
		},
		Demands: base.Demands,
	}

	baseSolution, err := Solve(base)
	require.NoError(t, err)
	scaledSolution, err := Solve(scaled)
	require.NoError(t, err)

	for i := range baseSolution.Uses {
		assert.True(t, baseSolution.Uses[i].Equal(scaledSolution.Uses[i]), "use %d", i)
	}
	assert.True(t, scaledSolution.Cost.Equal(baseSolution.Cost.Mul(rational.FromInt64(5))))
}

func TestSolveIsDeterministic(t *testing.T) {
	problem := &Problem{
		Recipes: []Recipe{
			minerFor("IronOre", 1),
			minerFor("Coal", 1),
			recipe(
				map[Resource]Quantity{"IronOre": 3, "Coal": 1},
				map[Resource]Quantity{"SteelIngot": 2},
				4, 8,
			),
		},
		Demands: []Demand{{Resource: "SteelIngot", UnitsPerMinute: 45}},
	}
	first, err := Solve(problem)
	require.NoError(t, err)
	second, err := Solve(problem)
	require.NoError(t, err)
	for i := range first.Uses {
		assert.True(t, first.Uses[i].Equal(second.Uses[i]), "use %d", i)
	}
	assert.True(t, first.Cost.Equal(second.Cost))
}

func TestSolveDemandsAreMet(t *testing.T) {
	// Every demanded rate must be met or exceeded, and machine counts
	// must be non-negative, on a problem with competing providers.
	problem := &Problem{
		Recipes: []Recipe{
			minerFor("Ore", 1),
			recipe(
				map[Resource]Quantity{"Ore": 2},
				map[Resource]Quantity{"Bar": 1},
				1, 1,
			),
			recipe(
				map[Resource]Quantity{"Ore": 3},
				map[Resource]Quantity{"Bar": 2},
				2, 2,
			),
		},
		Demands: []Demand{
			{Resource: "Bar", UnitsPerMinute: 90},
			{Resource: "Ore", UnitsPerMinute: 15},
		},
	}
	solution, err := Solve(problem)
	require.NoError(t, err)

	var cost rational.Rational
	for i, use := range solution.Uses {
		assert.GreaterOrEqual(t, use.Sign(), 0, "use %d", i)
		cost = cost.Add(use.Mul(rational.FromInt64(problem.Recipes[i].Cost)))
	}
	assert.True(t, cost.Equal(solution.Cost), "cost matches dot(c, x): %s vs %s", cost, solution.Cost)

	for _, demand := range problem.Demands {
		net := solution.NetRates[demand.Resource]
		assert.GreaterOrEqual(t, net.Cmp(rational.FromInt64(demand.UnitsPerMinute)), 0,
			"net rate for %s: %s", demand.Resource, net)
	}
}
