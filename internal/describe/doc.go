// Package describe turns a detection result into one grounded sentence.
//
// The output lists only what the detectors reported, in a fixed priority
// order, so a downstream language model has nothing to embellish. Instruction
// wraps that sentence in the prompt text that forbids adding facts.
package describe
