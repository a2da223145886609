/*
Package ports defines the driven ports (interfaces) of the simulator.

These interfaces decouple the HTTP and MCP adapters from the storage backend
that keeps named programs.

# Key Interfaces

  - ProgramStore: keeps program text by name (memory and Redis adapters).
*/
package ports
