package planner

import (
	"errors"
	"testing"
	"time"
)

func testSubjects() []Subject {
	return []Subject{
		{Name: "Financial Accounting", Chapters: []string{"AS-1 Disclosure", "AS-2 Valuation"}},
		{Name: "Cost Accounting", Chapters: []string{"Process Costing", "Marginal Costing"}},
		{Name: "Taxation", Chapters: []string{"Income Tax", "GST Basics"}},
	}
}

func TestResolveSubject(t *testing.T) {
	tests := []struct {
		query   string
		want    string
		wantErr bool
	}{
		{"Taxation", "Taxation", false},
		{"taxation", "Taxation", false},
		{"cost", "Cost Accounting", false},
		{"FinAcc", "Financial Accounting", false},
		{"zzz", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, err := ResolveSubject(tt.query, testSubjects())
			if (err != nil) != tt.wantErr {
				t.Fatalf("ResolveSubject(%q) error = %v, wantErr %v", tt.query, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrSubjectNotFound) {
					t.Errorf("expected ErrSubjectNotFound, got %v", err)
				}
				return
			}
			if got.Name != tt.want {
				t.Errorf("ResolveSubject(%q) = %q, want %q", tt.query, got.Name, tt.want)
			}
		})
	}
}

func TestResolveChapters(t *testing.T) {
	subject := testSubjects()[0]

	all, err := ResolveChapters(subject, nil)
	if err != nil {
		t.Fatalf("ResolveChapters() error = %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected all 2 chapters, got %d", len(all))
	}

	picked, err := ResolveChapters(subject, []string{"valuation", "AS-2 Valuation"})
	if err != nil {
		t.Fatalf("ResolveChapters() error = %v", err)
	}
	if len(picked) != 1 || picked[0].Chapter != "AS-2 Valuation" {
		t.Errorf("expected a single AS-2 Valuation ref, got %+v", picked)
	}

	_, err = ResolveChapters(subject, []string{"qqq"})
	if !errors.Is(err, ErrChapterNotFound) {
		t.Errorf("expected ErrChapterNotFound, got %v", err)
	}
}

func TestTarget_Days(t *testing.T) {
	tests := []struct {
		target  Target
		want    int
		wantErr bool
	}{
		{Target{Kind: TargetDaily, Value: 4}, 4, false},
		{Target{Kind: TargetWeekly, Value: 2}, 14, false},
		{Target{Value: 3}, 3, false},
		{Target{Kind: TargetDaily, Value: 0}, 0, true},
		{Target{Kind: "monthly", Value: 1}, 0, true},
	}

	for _, tt := range tests {
		got, err := tt.target.Days()
		if (err != nil) != tt.wantErr {
			t.Errorf("%+v.Days() error = %v, wantErr %v", tt.target, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("%+v.Days() = %d, want %d", tt.target, got, tt.want)
		}
	}
}

func TestGenerate_RoundRobin(t *testing.T) {
	start := time.Date(2026, 3, 2, 15, 30, 0, 0, time.UTC)
	items := []ChapterRef{
		{"Taxation", "Income Tax"},
		{"Taxation", "GST Basics"},
		{"Auditing", "Internal Controls"},
		{"Auditing", "Audit Evidence"},
		{"Cost Accounting", "Process Costing"},
	}

	tasks, err := Generate(items, 2, start)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(tasks) != 5 {
		t.Fatalf("expected 5 tasks, got %d", len(tasks))
	}

	day0 := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	wantOffsets := []int{0, 1, 0, 1, 0}
	for i, task := range tasks {
		want := day0.AddDate(0, 0, wantOffsets[i])
		if !task.Date.Equal(want) {
			t.Errorf("task %d date = %v, want %v", i, task.Date, want)
		}
	}

	if tasks[0].Title != "Study Income Tax" {
		t.Errorf("Title = %q", tasks[0].Title)
	}
	if tasks[2].Description != "Complete chapter in Auditing" {
		t.Errorf("Description = %q", tasks[2].Description)
	}
	if tasks[0].Priority != DefaultPriority || tasks[0].Completed {
		t.Errorf("unexpected defaults: %+v", tasks[0])
	}
	if tasks[0].ID == "" || tasks[0].ID == tasks[1].ID {
		t.Error("expected unique task ids")
	}
}

func TestGenerate_Errors(t *testing.T) {
	if _, err := Generate(nil, 4, time.Now()); !errors.Is(err, ErrNothingToPlan) {
		t.Errorf("expected ErrNothingToPlan, got %v", err)
	}
	items := []ChapterRef{{"Taxation", "Income Tax"}}
	if _, err := Generate(items, 0, time.Now()); !errors.Is(err, ErrInvalidDays) {
		t.Errorf("expected ErrInvalidDays, got %v", err)
	}
}

func TestResolveSelections(t *testing.T) {
	refs, err := ResolveSelections([]Selection{
		{Subject: "tax", Chapters: []string{"gst"}},
		{Subject: "cost"},
		{Subject: "Taxation", Chapters: []string{"GST Basics", "Income Tax"}},
	}, testSubjects())
	if err != nil {
		t.Fatalf("ResolveSelections() error = %v", err)
	}

	want := []ChapterRef{
		{"Taxation", "GST Basics"},
		{"Cost Accounting", "Process Costing"},
		{"Cost Accounting", "Marginal Costing"},
		{"Taxation", "Income Tax"},
	}
	if len(refs) != len(want) {
		t.Fatalf("got %d refs, want %d: %+v", len(refs), len(want), refs)
	}
	for i := range want {
		if refs[i] != want[i] {
			t.Errorf("ref %d = %+v, want %+v", i, refs[i], want[i])
		}
	}
}

func TestResolveSelections_Errors(t *testing.T) {
	if _, err := ResolveSelections(nil, testSubjects()); !errors.Is(err, ErrNothingToPlan) {
		t.Errorf("expected ErrNothingToPlan, got %v", err)
	}
	_, err := ResolveSelections([]Selection{{Subject: "cost"}, {Subject: "zzz"}}, testSubjects())
	if !errors.Is(err, ErrSubjectNotFound) {
		t.Errorf("expected ErrSubjectNotFound, got %v", err)
	}
	_, err = ResolveSelections([]Selection{{Subject: "tax", Chapters: []string{"qqq"}}}, testSubjects())
	if !errors.Is(err, ErrChapterNotFound) {
		t.Errorf("expected ErrChapterNotFound, got %v", err)
	}
}
