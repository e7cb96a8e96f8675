// Command yum computes an optimal Yum policy: the dice reroll probability
// table, the game-state index mapping, and the full per-round action/EV
// tables produced by backward induction.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/mbarrow/yum"
)

const usage = `usage: yum <command> [flags]

commands:
  generate         generate the state index mapping
  generate-reroll  generate the reroll probability table
  calculate-ev     run the full backward-induction solve
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "generate":
		err = runGenerate(os.Args[2:])
	case "generate-reroll":
		err = runGenerateReroll(os.Args[2:])
	case "calculate-ev":
		err = runCalculateEV(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n%s", os.Args[1], usage)
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		switch err.(type) {
		case *yum.PathError:
			os.Exit(2)
		default:
			if err == yum.ErrInvariantViolation {
				os.Exit(3)
			}
			os.Exit(1)
		}
	}
}

func runGenerate(args []string) error {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	out := fs.String("out", "output/state_mapping.dat", "state mapping output path")
	fs.Parse(args)

	states := yum.GenerateAllStates()
	idx := yum.NewStateIndex(states)

	f, err := create(*out)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := yum.WriteStateIndex(f, idx); err != nil {
		return &yum.PathError{Op: "write", Path: *out, Err: err}
	}
	fmt.Printf("generated %d state mappings\n", idx.NumStates())
	return nil
}

func runGenerateReroll(args []string) error {
	fs := flag.NewFlagSet("generate-reroll", flag.ExitOnError)
	out := fs.String("out", "output/reroll_probabilities.dat", "reroll table output path")
	fs.Parse(args)

	table := yum.BuildRerollTable()

	f, err := create(*out)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := yum.WriteRerollTable(f, table); err != nil {
		return &yum.PathError{Op: "write", Path: *out, Err: err}
	}
	fmt.Println("generated reroll probability table")
	return nil
}

func runCalculateEV(args []string) error {
	fs := flag.NewFlagSet("calculate-ev", flag.ExitOnError)
	mapPath := fs.String("map", "output/state_mapping.dat", "state mapping input path")
	rerollPath := fs.String("reroll", "output/reroll_probabilities.dat", "reroll table input path")
	actionsPath := fs.String("actions", "output/optimal_actions.dat", "action output path")
	evPath := fs.String("ev", "output/optimal_actions_ev.dat", "EV output path")
	saveEV := fs.Bool("save-ev", false, "also write per-cell expected values")
	quiet := fs.Bool("quiet", false, "suppress progress reporting")
	fs.Parse(args)

	mapFile, err := os.Open(*mapPath)
	if err != nil {
		return &yum.PathError{Op: "open", Path: *mapPath, Err: fmt.Errorf("%w: %v", yum.ErrMissingInput, err)}
	}
	defer mapFile.Close()
	idx, err := yum.ReadStateIndex(mapFile)
	if err != nil {
		return &yum.PathError{Op: "read", Path: *mapPath, Err: err}
	}

	rerollFile, err := os.Open(*rerollPath)
	if err != nil {
		return &yum.PathError{Op: "open", Path: *rerollPath, Err: fmt.Errorf("%w: %v", yum.ErrMissingInput, err)}
	}
	defer rerollFile.Close()
	reroll, err := yum.ReadRerollTable(rerollFile)
	if err != nil {
		return &yum.PathError{Op: "read", Path: *rerollPath, Err: err}
	}

	actionsFile, err := create(*actionsPath)
	if err != nil {
		return err
	}
	defer actionsFile.Close()

	var evFile *os.File
	if *saveEV {
		evFile, err = create(*evPath)
		if err != nil {
			return err
		}
		defer evFile.Close()
	}
	w := yum.NewActionWriter(actionsFile, evFile, *saveEV)

	solver := yum.NewSolver(idx, reroll)
	if !*quiet {
		// Every state with at least one open category is solved in exactly
		// one round.
		solved := idx.NumStates() - len(idx.StatesFilledCount(yum.NumCategories))
		total := uint64(solved) * uint64(yum.NumDiceHands) * uint64(yum.NumTurns)
		solver.Progress = yum.NewProgress(os.Stdout, total)
	}

	stats, err := solver.Solve(context.Background(), w)
	if err != nil {
		return err
	}
	for _, s := range stats {
		s.Report(os.Stdout)
	}
	return nil
}

func create(path string) (*os.File, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, &yum.PathError{Op: "create", Path: path, Err: err}
	}
	return f, nil
}
