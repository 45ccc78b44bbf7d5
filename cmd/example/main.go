// Command example demonstrates the logic engine's API directly against
// hand-built terms, standing in for the lexer/parser/REPL front end this
// module does not provide (spec.md's Non-goals).
package main

import (
	"context"
	"fmt"

	"github.com/gitrdm/golog/pkg/logic"
)

func main() {
	fmt.Println("=== golog examples ===")
	fmt.Println()

	factsAndQueries()
	arithmetic()
	cutPruning()
	databaseMutation()
}

// factsAndQueries resolves a plain fact database and a rule built on top
// of it.
func factsAndQueries() {
	fmt.Println("1. Facts and rules:")

	alice := logic.NewAtom("alice")
	bob := logic.NewAtom("bob")
	carol := logic.NewAtom("carol")

	x := logic.NewVar("X")
	y := logic.NewVar("Y")
	z := logic.NewVar("Z")

	db := logic.NewDatabase(
		logic.NewFact(logic.NewCompound("parent", alice, bob)),
		logic.NewFact(logic.NewCompound("parent", bob, carol)),
		logic.NewRule(
			logic.NewCompound("grandparent", x, z),
			logic.NewConjunction(
				logic.NewCompound("parent", x, y),
				logic.NewCompound("parent", y, z),
			),
		),
	)
	rt := logic.NewRuntime(logic.WithDatabase(db))

	who := logic.NewVar("Who")
	query := logic.NewQuery(logic.NewCompound("grandparent", alice, who))
	stream := rt.Execute(context.Background(), query)
	for _, answer := range stream.Collect(context.Background(), -1) {
		fmt.Printf("   grandparent(alice, Who) => %s\n", answer.String())
	}
	fmt.Println()
}

// arithmetic resolves an `is` goal.
func arithmetic() {
	fmt.Println("2. Arithmetic:")

	rt := logic.NewRuntime()

	result := logic.NewVar("R")
	goal := logic.NewArithmetic(result, logic.Add(logic.Num(2), logic.Mul(logic.Num(3), logic.Num(4))))
	stream := rt.Execute(context.Background(), logic.NewQuery(goal))
	for _, answer := range stream.Collect(context.Background(), -1) {
		fmt.Printf("   R is 2 + 3 * 4 => %s\n", answer.String())
	}
	fmt.Println()
}

// cutPruning shows a cut committing to the first matching clause.
func cutPruning() {
	fmt.Println("3. Cut:")

	x := logic.NewVar("X")
	db := logic.NewDatabase(
		logic.NewRule(
			logic.NewCompound("choose", logic.NewNumber(1)),
			logic.Cut{},
		),
		logic.NewFact(logic.NewCompound("choose", logic.NewNumber(2))),
		logic.NewFact(logic.NewCompound("choose", logic.NewNumber(3))),
	)
	rt := logic.NewRuntime(logic.WithDatabase(db))

	stream := rt.Execute(context.Background(), logic.NewQuery(logic.NewCompound("choose", x)))
	answers := stream.Collect(context.Background(), -1)
	fmt.Printf("   choose(X) with a cut on the first clause => %d answer(s)\n", len(answers))
	for _, answer := range answers {
		fmt.Printf("   %s\n", answer.String())
	}
	fmt.Println()
}

// databaseMutation shows assertz/retract changing the clause set
// a later query sees.
func databaseMutation() {
	fmt.Println("4. Database mutation:")

	here := logic.NewAtom("kitchen")
	rt := logic.NewRuntime()

	ctx := context.Background()
	rt.Execute(ctx, logic.NewQuery(logic.NewAssertZ(logic.NewCompound("here", here)))).Collect(ctx, 1)

	x := logic.NewVar("X")
	before := rt.Execute(ctx, logic.NewQuery(logic.NewCompound("here", x))).Collect(ctx, -1)
	fmt.Printf("   here(X) before move => %v\n", before)

	rt.Execute(ctx, logic.NewQuery(logic.NewRetract(logic.NewCompound("here", here)))).Collect(ctx, 1)
	hallway := logic.NewAtom("hallway")
	rt.Execute(ctx, logic.NewQuery(logic.NewAssertZ(logic.NewCompound("here", hallway)))).Collect(ctx, 1)

	after := rt.Execute(ctx, logic.NewQuery(logic.NewCompound("here", x))).Collect(ctx, -1)
	fmt.Printf("   here(X) after move => %v\n", after)
	fmt.Println()
}
