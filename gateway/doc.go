// Package gateway implements the uniform backend call contract used by every
// deliberation and judging component.
//
// A Gateway maps backend identifiers to one or more model.Model deployments.
// Call sleeps for a random jitter, invokes a randomly chosen deployment and
// reports the outcome as an explicit Result instead of an empty string.
package gateway
