// Package chapters turns a timestamped transcript into enriched topical
// chapters by repeatedly querying a language-model oracle and reassembling
// its free-text answers into structured data.
//
// The pipeline runs four stages in strict order:
//
//  1. ExtractOverview: one oracle call yields the ordered topic list and an
//     overall summary.
//  2. ExtractSections: per topic, one concurrent oracle call extracts the
//     verbatim transcript span most relevant to it.
//  3. AssignTimestamps: the densest stage. Segments are consumed from a
//     single pool, classified in concurrent batches, and assigned to
//     chapters by a watershed-and-density rule; each chapter's time range
//     is the min/max over its assigned segments.
//  4. Enrich: per chapter, concurrent quiz and summary generation, with
//     malformed units dropped and logged rather than failing the run.
//
// All oracle traffic goes through the Oracle interface; structured fields
// are recovered from free text with the tags package.
package chapters
