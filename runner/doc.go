// Package runner drives batch work over the deliberation and judge layers.
//
// RunAll is a bounded worker pool on errgroup in which units never cancel
// their siblings; every unit reports its own Outcome. GenerateRunner answers
// a question file with a colm.Deliberator and JudgeRunner scores stored
// answers with an evaluation.Engine. Both append results through package
// store, skip work already present on disk and can mirror their output
// directory to an artifact.Store once the batch is done.
package runner
