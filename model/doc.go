// Package model provides the data types shared across the transcript
// parsing pipeline.
//
// The pipeline transforms data through a fixed sequence of shapes:
//
//   - [Word] - a positioned token produced by a word source (PDF text
//     layer or OCR engine)
//   - [Row] - a horizontal cluster of words judged to lie on the same
//     visual text line
//   - [CourseRecord] - one recognized course mention (code, title, grade)
//   - [TranscriptSummary] - the final per-file result
//
// All types are plain values. Once produced by a pipeline stage they are
// never mutated by later stages.
package model
