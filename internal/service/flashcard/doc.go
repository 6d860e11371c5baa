// Package flashcard implements self-paced learning sessions: a user walks
// a fixed word list marking each word correct, wrong, or skipped, with
// pause and resume, a lazily enforced inactivity timeout, and a badge
// summary on completion.
package flashcard
