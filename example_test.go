package ndtm_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/ndtm"
	"github.com/aretw0/ndtm/pkg/domain"
	"github.com/aretw0/ndtm/pkg/dsl"
)

// ExampleParseString runs a program that guesses whether to keep or clear
// each 1 of its input.
func ExampleParseString() {
	m, err := ndtm.ParseString(`11
s; (>); (g, >, R)
g; (1); (g, 1, R)
g; (1); (g, 0, R)
g; (_); (H, _, -)
`)
	if err != nil {
		log.Fatal(err)
	}

	outs, err := m.Run(context.Background(), false)
	if err != nil {
		log.Fatal(err)
	}
	for _, o := range outs {
		fmt.Println(o)
	}
	// Output:
	// {H, [>11_], [3]}
	// {H, [>10_], [3]}
	// {H, [>01_], [3]}
	// {H, [>00_], [3]}
}

// ExampleFromTable builds the same kind of machine without program text.
func ExampleFromTable() {
	table, err := dsl.New(1).
		State("s").On(">").Go("q", ">R").
		State("q").On("a").Go("q", "aR").
		State("q").On("_").Go("Y", "_-").
		Build()
	if err != nil {
		log.Fatal(err)
	}

	m := ndtm.FromTable("aa", table)
	outs, err := m.Run(context.Background(), true)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(outs.ContainsAtLeast(domain.Yes), outs[0].Tapes[0])
	// Output: true >aa_
}
