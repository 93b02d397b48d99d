/*
Package observability exports Prometheus metrics for the expansion engine.

Inclusion metrics are fed by domain.InclusionHooks, so they compose with any
other hooks registered on the file module; expansion metrics are recorded by
the engine facade around every top-level expansion.
*/
package observability
