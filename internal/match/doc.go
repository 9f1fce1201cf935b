// Package match ranks known names by similarity to an unknown one.
//
// It backs the "did you mean" hints of decode errors and generator
// diagnostics:
//   - Normalize folds case and separators so "created_at" and "CreatedAt" meet
//   - Distance is the rune-level Levenshtein edit distance
//   - Rank orders candidates by similarity, Suggest picks the best one
package match
