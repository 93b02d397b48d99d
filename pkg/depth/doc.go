/*
Package depth bounds nested inclusion.

A Guard admits or rejects each include call against domain.DepthLimit and
hands back a release function that must run exactly once when the nested
expansion returns, successfully or not.

Two strategies are provided:

  - ChainGuard threads the depth through context.Context. Each top-level
    expansion owns its own inclusion chain, so concurrent expansions never
    share policy state.
  - CounterGuard keeps one shared counter (process-local under a mutex, or
    remote such as Redis). Every open inclusion anywhere counts against the
    same ceiling.
*/
package depth
