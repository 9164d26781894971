// Package model defines the provider‑agnostic abstractions and concrete
// helpers for interacting with language models inside colm.
//
// Core goals:
//   - Unify generation across vendors behind a single interface
//   - Keep request/response shapes minimal and transport independent
//   - Facilitate lightweight mocking for tests (MockModel)
//
// Providers (OpenAI / Azure OpenAI, Anthropic, Gemini) implement the Model
// interface from this package so higher layers (gateway, agents, judge)
// remain decoupled from vendor SDKs.
package model
