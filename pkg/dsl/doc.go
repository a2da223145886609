/*
Package dsl provides a fluent builder for transition tables.

It produces the same validated *domain.Table the text parser does, which is
handy for tests and for programs generated in Go.

	table, err := dsl.New(2).
		State("s").On(">>").
			Go("q", ">R>R").
			Go("p", ">R>R").
		State("q").On("__").Go("Y", "x-_-").
		State("p").On("__").Go("N", "_-y-").
		Build()
*/
package dsl
