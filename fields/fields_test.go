package fields

import (
	"testing"

	"github.com/tsawler/transcripta/model"
)

// textRow builds a single-word-per-token row; field extraction only
// reads joined row text, so positions are synthetic.
func textRow(page int, y float64, tokens ...string) model.Row {
	row := model.Row{Page: page, Y: y}
	x := 10.0
	for _, tok := range tokens {
		row.Words = append(row.Words, model.Word{Text: tok, X0: x, X1: x + 40, Y0: y, Y1: y + 10, Page: page})
		x += 50
	}
	return row
}

func TestExtractName_Cascade(t *testing.T) {
	e := NewExtractor()

	tests := []struct {
		name string
		row  model.Row
		want string
	}{
		{
			name: "record of header",
			row:  textRow(1, 10, "Record", "of:", "Jane", "Q.", "Doe", "Page:", "1"),
			want: "Jane Q. Doe",
		},
		{
			name: "issued to",
			row:  textRow(1, 10, "Issued", "To:", "John", "Smith"),
			want: "John Smith",
		},
		{
			name: "student name label",
			row:  textRow(1, 10, "Student", "Name:", "Mary", "Major"),
			want: "Mary Major",
		},
		{
			name: "plain name label",
			row:  textRow(1, 10, "Name:", "Test", "Student"),
			want: "Test Student",
		},
		{
			name: "last first with id",
			row:  textRow(1, 10, "Doe,", "Jane", "001234567"),
			want: "Doe, Jane",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			student, _ := e.Extract([]model.Row{tt.row})
			if student != tt.want {
				t.Errorf("expected %q, got %q", tt.want, student)
			}
		})
	}
}

func TestExtractName_MatcherPriority(t *testing.T) {
	e := NewExtractor()
	// "Record of" outranks "Name:" even when it appears on a later row.
	rows := []model.Row{
		textRow(1, 10, "Name:", "Wrong", "Person"),
		textRow(1, 20, "Record", "of:", "Jane", "Doe", "Page:", "1"),
	}

	student, _ := e.Extract(rows)
	if student != "Jane Doe" {
		t.Errorf("expected cascade priority to win, got %q", student)
	}
}

func TestExtractName_Cleaning(t *testing.T) {
	e := NewExtractor()

	tests := []struct {
		name string
		row  model.Row
		want string
	}{
		{
			name: "email token stripped",
			row:  textRow(1, 10, "Name:", "Jane", "Doe", "jdoe@school.edu"),
			want: "Jane Doe",
		},
		{
			name: "trailing id parenthetical removed",
			row:  textRow(1, 10, "Name:", "Jane", "Doe", "(ID", "44812)"),
			want: "Jane Doe",
		},
		{
			name: "trailing punctuation trimmed",
			row:  textRow(1, 10, "Name:", "Jane", "Doe", ","),
			want: "Jane Doe",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			student, _ := e.Extract([]model.Row{tt.row})
			if student != tt.want {
				t.Errorf("expected %q, got %q", tt.want, student)
			}
		})
	}
}

func TestExtractUniversity_KeywordRow(t *testing.T) {
	e := NewExtractor()
	rows := []model.Row{
		textRow(1, 10, "Central", "State", "University"),
		textRow(1, 20, "Official", "Transcript"),
	}

	_, university := e.Extract(rows)
	if university != "Central State University" {
		t.Errorf("expected keyword row, got %q", university)
	}
}

func TestExtractUniversity_TruncatedAtBoilerplate(t *testing.T) {
	e := NewExtractor()

	tests := []struct {
		name string
		row  model.Row
		want string
	}{
		{
			name: "transcript marker",
			row:  textRow(1, 10, "Central", "State", "University", "Official", "Transcript"),
			want: "Central State University Official",
		},
		{
			name: "registrar marker",
			row:  textRow(1, 10, "Hilltop", "College", "Office", "of", "the", "Registrar"),
			want: "Hilltop College Office of the",
		},
		{
			name: "phone number",
			row:  textRow(1, 10, "Hilltop", "College", "(555)", "867-5309"),
			want: "Hilltop College",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, university := e.Extract([]model.Row{tt.row})
			if university != tt.want {
				t.Errorf("expected %q, got %q", tt.want, university)
			}
		})
	}
}

func TestExtractUniversity_SkipsLabelValueRows(t *testing.T) {
	e := NewExtractor()
	rows := []model.Row{
		textRow(1, 10, "Previous", "Institution:", "Other", "University"),
	}

	_, university := e.Extract(rows)
	if university != "" {
		t.Errorf("expected label:value row skipped, got %q", university)
	}
}

func TestExtractUniversity_ScoringPrefersUniversity(t *testing.T) {
	e := NewExtractor()
	rows := []model.Row{
		textRow(1, 10, "Hilltop", "College"),
		textRow(1, 20, "Central", "State", "University"),
	}

	_, university := e.Extract(rows)
	if university != "Central State University" {
		t.Errorf("expected higher-weight keyword to win, got %q", university)
	}
}

func TestExtractUniversity_CampusAddonStitching(t *testing.T) {
	e := NewExtractor()
	rows := []model.Row{
		textRow(1, 10, "Central", "State", "University"),
		textRow(1, 20, "at", "Riverdale"),
	}

	_, university := e.Extract(rows)
	if university != "Central State University at Riverdale" {
		t.Errorf("expected stitched campus addon, got %q", university)
	}
}

func TestExtractUniversity_EmailDomainFallback(t *testing.T) {
	e := NewExtractor()
	rows := []model.Row{
		textRow(1, 10, "Contact:", "registrar@mail.asu.edu"),
	}

	_, university := e.Extract(rows)
	if university != "Arizona State University" {
		t.Errorf("expected email domain lookup, got %q", university)
	}
}

func TestExtract_NothingRecognized(t *testing.T) {
	e := NewExtractor()
	rows := []model.Row{
		textRow(1, 10, "some", "unrelated", "content"),
		textRow(1, 20, "MATH", "101", "Calculus"),
	}

	student, university := e.Extract(rows)
	if student != "" || university != "" {
		t.Errorf("expected empty fields, got %q / %q", student, university)
	}
}

func TestExtract_RestrictedToFirstPages(t *testing.T) {
	e := NewExtractor()
	rows := []model.Row{
		textRow(1, 10, "course", "listing"),
		textRow(4, 10, "Name:", "Too", "Deep"),
	}

	student, _ := e.Extract(rows)
	if student != "" {
		t.Errorf("expected deep-page name row ignored, got %q", student)
	}
}
