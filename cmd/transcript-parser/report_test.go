package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tsawler/transcripta"
	"github.com/tsawler/transcripta/model"
)

func sampleSummary() *model.TranscriptSummary {
	return &model.TranscriptSummary{
		Student:    "Test Student",
		University: "State University",
		Courses: []model.CourseRecord{
			{Code: "MATH 101", Title: "Calculus I", Grade: "A"},
			{Code: "MATH 202", Title: "Linear Algebra", Grade: "B+"},
		},
		TextSource: model.SourcePDF,
		Notes:      map[string]string{},
	}
}

func TestPrintReport_FullResult(t *testing.T) {
	report := buildReport("transcript.pdf", []string{"math"}, sampleSummary(), nil, nil)

	var buf bytes.Buffer
	printReport(&buf, report)
	out := buf.String()

	for _, want := range []string{
		"Results for transcript.pdf",
		"Student: Test Student",
		"University: State University",
		"MATH 101",
		"Calculus I",
		"grade: A",
		"MATH 202",
		"Parsed transcript.pdf (subjects: math; text_source=pdf)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestPrintReport_UnknownFields(t *testing.T) {
	summary := sampleSummary()
	summary.Student = ""
	summary.University = ""
	summary.Courses = nil
	report := buildReport("empty.pdf", []string{"math"}, summary, nil, nil)

	var buf bytes.Buffer
	printReport(&buf, report)
	out := buf.String()

	if !strings.Contains(out, "Student: (unknown)") {
		t.Errorf("expected unknown student placeholder:\n%s", out)
	}
	if !strings.Contains(out, "University: (unknown)") {
		t.Errorf("expected unknown university placeholder:\n%s", out)
	}
	if !strings.Contains(out, "[no course codes detected]") {
		t.Errorf("expected no-courses placeholder:\n%s", out)
	}
}

func TestPrintReport_Error(t *testing.T) {
	report := buildReport("broken.pdf", []string{"math"}, nil, nil, errors.New("failed to open PDF"))

	var buf bytes.Buffer
	printReport(&buf, report)
	out := buf.String()

	if !strings.Contains(out, "Results for broken.pdf") {
		t.Errorf("expected header even on error:\n%s", out)
	}
	if !strings.Contains(out, "error: failed to open PDF") {
		t.Errorf("expected inline error:\n%s", out)
	}
	if strings.Contains(out, "Parsed broken.pdf") {
		t.Errorf("expected no trailing summary on error:\n%s", out)
	}
}

func TestBuildReport_CarriesWarningsAndNotes(t *testing.T) {
	summary := sampleSummary()
	summary.Notes["ocr_unused"] = "OCR found 1 courses, text layer 2; keeping text layer"
	warnings := []transcripta.Warning{{Stage: "ocr", Message: "page 3: engine error"}}

	report := buildReport("transcript.pdf", []string{"math"}, summary, warnings, nil)

	if len(report.Warnings) != 1 || report.Warnings[0] != "ocr: page 3: engine error" {
		t.Errorf("unexpected warnings: %v", report.Warnings)
	}
	if report.Notes["ocr_unused"] == "" {
		t.Errorf("expected ocr_unused note carried through")
	}
}

func TestWriteJSON_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	reports := []fileReport{
		buildReport("transcript.pdf", []string{"math"}, sampleSummary(), nil, nil),
	}

	if err := writeJSON(path, reports); err != nil {
		t.Fatalf("writeJSON failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}

	var decoded []fileReport
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	if len(decoded) != 1 || decoded[0].File != "transcript.pdf" {
		t.Fatalf("unexpected decoded report: %+v", decoded)
	}
	if decoded[0].Courses[0].Code != "MATH 101" {
		t.Errorf("unexpected course: %+v", decoded[0].Courses[0])
	}
	if !strings.Contains(string(data), `"text_source": "pdf"`) {
		t.Errorf("expected lowercase text_source key:\n%s", data)
	}
}

func TestSubjectsFlag_CommaAndRepeat(t *testing.T) {
	var f subjectsFlag
	if err := f.Set("math, stat"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := f.Set("cs"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	want := []string{"math", "stat", "cs"}
	if len(f) != len(want) {
		t.Fatalf("expected %v, got %v", want, f)
	}
	for i := range want {
		if f[i] != want[i] {
			t.Errorf("expected %v, got %v", want, f)
			break
		}
	}
}
