// Package allocation turns a portfolio statement exported by a bank or a
// broker into an allocation analysis. Statements come with column names that
// vary from one institution to another, so the package provides:
//   - Column Resolution: matching every raw column header against a table of
//     known synonyms, with named presets overriding the heuristics for known
//     file sources.
//   - Row Classification: assigning every position to exactly one asset
//     category (fund, security, managed mandate or cash) from keyword
//     signals on its name and the shape of its identifier.
//   - Aggregation: one table per category, carrying the placeholder columns
//     that a later market-data enrichment fills, and the monetary totals.
//
// The package is pure: it never fails on well-typed input. Unreadable files,
// unresolved columns, broken presets and unparsable amounts all degrade to
// documented defaults. Reading spreadsheets lives in package sheet, rendering
// artifacts in package renderer, and the `pfa` command line in package cmd.
package allocation
