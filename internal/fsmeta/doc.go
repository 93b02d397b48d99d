// Package fsmeta reads filesystem metadata the standard library does not expose portably.
package fsmeta
