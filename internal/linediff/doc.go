// Package linediff computes line-oriented edit scripts between two texts.
//
// The engine is a classic longest-common-subsequence dynamic program: the
// two texts are split into lines, an (m+1)x(n+1) table of LCS lengths is
// filled row by row, and the table is walked backward from its final cell to
// reconstruct an edit script of unchanged, removed and added lines.
//
// Among equally short scripts the one chosen is fixed: when skipping a line
// of either text keeps the same LCS length, the walk emits the added line
// first. Since the script is produced back to front, a replaced block reads
// as its removed lines followed by its added lines.
//
// Time and memory are O(m*n). Callers that accept arbitrary input should
// bound the line count before calling Diff.
//
// Every function in this package is pure and safe for concurrent use.
package linediff
