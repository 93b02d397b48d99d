/*
Package ports defines the driven ports (interfaces) for the scribe engine.

These interfaces decouple the core logic from external implementations, allowing
the inclusion engine to work with various document stores, hosts and depth counters.

# Key Interfaces

  - DocumentStore: Reads, stats, resolves, renames and tags vault documents.
  - Host: Reports environment capabilities (filesystem paths, active selection).
  - Parser / Module: The reentrant template parser and the function tables it executes.
  - DepthCounter: A shared recursion-depth counter (process-local or Redis).
*/
package ports
