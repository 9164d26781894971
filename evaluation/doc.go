// Package evaluation implements the LLM-as-judge engine.
//
// For every judged (model, question) pair the Engine plays one game, or two
// when pairwise (the second with answer and baseline positions swapped).
// A game renders the prompt templates into a conversation, then loops
// Call → Extract → {Accept, Retry, GiveUp} within a bounded number of
// attempts. Score extraction is pluggable through ScoreExtractor.
package evaluation
