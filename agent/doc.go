// Package agent contains the deliberation roles of colm and the registry of
// specialists they operate on:
//
//  1. Registry - the ordered, duplicate-free set of specialists
//  2. Selector - routes a question to the top-K specialists
//  3. Dispatcher - runs one multi-turn conversation per specialist
//  4. Synthesizer - condenses all answers into one summary per turn
//  5. Refiner - repeats synthesize and regenerate for a fixed number of rounds
//
// Every role talks to backends exclusively through gateway.Caller, so tests
// drive the package with scripted mock models. Failures never abort a round:
// a failed backend call becomes a blank turn and the round continues.
//
// Conversations of different specialists share no state and run in parallel;
// the turns of one conversation are strictly sequential.
package agent
