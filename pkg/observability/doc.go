/*
Package observability exports simulation activity as Prometheus metrics.

Metrics.Hooks plugs into the engine's lifecycle hooks; ObserveRun is called
once per run by the HTTP and MCP adapters.
*/
package observability
