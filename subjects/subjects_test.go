package subjects

import (
	"reflect"
	"testing"
)

func TestExpand(t *testing.T) {
	table := DefaultAliases()

	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name:  "known alias",
			input: []string{"math"},
			want:  []string{"MATH", "MAT", "MTH", "MA", "MATG"},
		},
		{
			name:  "case and whitespace insensitive",
			input: []string{"  Stat "},
			want:  []string{"STAT", "STA"},
		},
		{
			name:  "unknown passes through uppercased",
			input: []string{"hist"},
			want:  []string{"HIST"},
		},
		{
			name:  "mixed, order preserved",
			input: []string{"cs", "hist"},
			want:  []string{"CS", "CSC", "CSCI", "CSE", "COSC", "HIST"},
		},
		{
			name:  "duplicates collapse",
			input: []string{"math", "MAT", "math"},
			want:  []string{"MATH", "MAT", "MTH", "MA", "MATG"},
		},
		{
			name:  "empty tokens dropped",
			input: []string{"", "  "},
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := table.Expand(tt.input)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Expand(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestExpand_CustomTable(t *testing.T) {
	table := AliasTable{"geo": {"GEOL", "GEO"}}

	got := table.Expand([]string{"geo", "math"})
	want := []string{"GEOL", "GEO", "MATH"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expand with custom table = %v, want %v", got, want)
	}
}
