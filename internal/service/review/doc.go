// Package review implements the review engine: tiered due-word selection,
// mixed-format quiz generation with sampled and generated distractors,
// per-question answer evaluation wired into the Leitner progress tracker,
// and attempt finalization with achievement badges.
package review
