/*
Package domain contains the core models of the ndtm simulator.

It defines the immutable transition table, the configuration snapshots used
for deduplication, the output records of halted branches and the tagged error
type shared by parsing and simulation. This package is kept pure and free of
I/O, following Hexagonal Architecture principles.

# Key Entities

  - Dialect: the reserved markers (blank, initial symbol, directions, terminal states).
  - Table: (state, read tuple) -> options. Several options encode non-determinism.
  - Configuration: value snapshot of state, tapes and heads with a structural hash.
  - Output: classification plus final tapes and heads of a terminal branch.
  - MachineError: malformed program, undefined transition, tape origin or unknown direction.
*/
package domain
