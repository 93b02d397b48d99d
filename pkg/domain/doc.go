/*
Package domain contains the core types of the scribe template engine.

It is kept free of I/O and persistence so that adapters, modules and the
parser can share one vocabulary.

# Key Entities

  - Document: An entry of the document store (file or folder) with timestamps.
  - ContextMode: The trust/origin tag propagated through nested expansions.
  - Value / Table: The tagged template function table a module generates.
  - InclusionEvent / InclusionHooks: Observability callbacks for the depth guard.
*/
package domain
