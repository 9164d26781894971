// Package core provides the foundational domain types shared by the
// deliberation pipeline, the judge engine and the result store:
//
//   - Messages (role-tagged conversation entries sent to a backend)
//   - Questions and their ordered turns
//   - Answers (one record per model and question, turn-aligned)
//   - Syntheses (condensed cross-model summaries per turn)
//   - Judgments and their games
//   - CallBudget (bounded counter for backend calls)
//
// The package intentionally carries no behavior beyond encoding helpers so
// that every other package can depend on it without import cycles.
package core
