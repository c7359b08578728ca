package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/tsawler/transcripta"
	"github.com/tsawler/transcripta/model"
)

// fileReport is the per-file result, shared between the stdout report
// and the JSON output.
type fileReport struct {
	File       string               `json:"file"`
	Subjects   []string             `json:"subjects"`
	Student    string               `json:"student,omitempty"`
	University string               `json:"university,omitempty"`
	Courses    []model.CourseRecord `json:"courses"`
	TextSource model.Source         `json:"text_source,omitempty"`
	Notes      map[string]string    `json:"notes,omitempty"`
	Warnings   []string             `json:"warnings,omitempty"`
	Error      string               `json:"error,omitempty"`
}

func buildReport(file string, subjects []string, summary *model.TranscriptSummary, warnings []transcripta.Warning, err error) fileReport {
	report := fileReport{
		File:     file,
		Subjects: subjects,
	}
	for _, w := range warnings {
		report.Warnings = append(report.Warnings, w.String())
	}
	if err != nil {
		report.Error = err.Error()
		return report
	}
	report.Student = summary.Student
	report.University = summary.University
	report.Courses = summary.Courses
	report.TextSource = summary.TextSource
	if len(summary.Notes) > 0 {
		report.Notes = summary.Notes
	}
	return report
}

// printReport writes the human-readable per-file report.
func printReport(w io.Writer, r fileReport) {
	fmt.Fprintf(w, "Results for %s\n", r.File)
	if r.Error != "" {
		fmt.Fprintf(w, "  error: %s\n", r.Error)
		return
	}

	fmt.Fprintf(w, "  Student: %s\n", orUnknown(r.Student))
	fmt.Fprintf(w, "  University: %s\n", orUnknown(r.University))

	if len(r.Courses) == 0 {
		fmt.Fprintln(w, " [no course codes detected]")
	} else {
		for _, c := range r.Courses {
			fmt.Fprintf(w, "  %s — %s — grade: %s\n", c.Code, c.Title, c.Grade)
		}
	}

	fmt.Fprintf(w, "Parsed %s (subjects: %s; text_source=%s)\n",
		r.File, joinSubjects(r.Subjects), r.TextSource)
}

func orUnknown(s string) string {
	if s == "" {
		return "(unknown)"
	}
	return s
}

func joinSubjects(subjects []string) string {
	if len(subjects) == 0 {
		return "all"
	}
	out := subjects[0]
	for _, s := range subjects[1:] {
		out += ", " + s
	}
	return out
}

// writeJSON writes the combined report for all processed files.
func writeJSON(path string, reports []fileReport) error {
	data, err := json.MarshalIndent(reports, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}
