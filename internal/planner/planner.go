// Package planner generates a naive study timetable from selected chapters.
//
// The plan is a plain round-robin over the requested number of days. It does
// not weigh chapters, balance load or look at focus history.
package planner

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sahilm/fuzzy"
	"github.com/xvierd/focus-cli/internal/domain"
)

var (
	// ErrNothingToPlan is returned when no chapters were selected.
	ErrNothingToPlan = errors.New("select at least one chapter")
	// ErrInvalidDays is returned for a non-positive planning window.
	ErrInvalidDays = errors.New("planning window must be at least one day")
	// ErrSubjectNotFound is returned when a query matches no subject.
	ErrSubjectNotFound = errors.New("subject not found")
	// ErrChapterNotFound is returned when a query matches no chapter.
	ErrChapterNotFound = errors.New("chapter not found")
)

const (
	// DefaultPriority is assigned to generated tasks.
	DefaultPriority = "medium"
	// DefaultTimeSlot is the study slot shown for generated tasks.
	DefaultTimeSlot = "9:00 AM - 11:00 AM"
)

// Subject is a study subject and its chapters.
type Subject struct {
	Name     string
	Chapters []string
}

// ChapterRef selects one chapter of a subject.
type ChapterRef struct {
	Subject string
	Chapter string
}

// Selection picks chapters of one subject by query. No chapter queries
// selects every chapter.
type Selection struct {
	Subject  string
	Chapters []string
}

// TargetKind is the unit of a study target.
type TargetKind string

const (
	TargetDaily  TargetKind = "daily"
	TargetWeekly TargetKind = "weekly"
)

// Target is a study target such as "4 days" or "2 weeks".
type Target struct {
	Kind  TargetKind
	Value int
}

// Days returns the planning window in days.
func (t Target) Days() (int, error) {
	if t.Value <= 0 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidDays, t.Value)
	}
	switch t.Kind {
	case TargetDaily, "":
		return t.Value, nil
	case TargetWeekly:
		return t.Value * 7, nil
	default:
		return 0, fmt.Errorf("unknown target kind %q (want daily or weekly)", t.Kind)
	}
}

// ResolveSubject finds the subject best matching query. An exact
// case-insensitive name wins, otherwise the best fuzzy match is used.
func ResolveSubject(query string, subjects []Subject) (Subject, error) {
	names := make([]string, len(subjects))
	for i, s := range subjects {
		names[i] = s.Name
	}

	idx, err := resolve(query, names)
	if err != nil {
		return Subject{}, fmt.Errorf("%w: %q", ErrSubjectNotFound, query)
	}
	return subjects[idx], nil
}

// ResolveChapters selects chapters of subject by fuzzy query. No queries
// selects every chapter.
func ResolveChapters(subject Subject, queries []string) ([]ChapterRef, error) {
	if len(queries) == 0 {
		refs := make([]ChapterRef, 0, len(subject.Chapters))
		for _, ch := range subject.Chapters {
			refs = append(refs, ChapterRef{Subject: subject.Name, Chapter: ch})
		}
		return refs, nil
	}

	refs := make([]ChapterRef, 0, len(queries))
	seen := make(map[int]bool)
	for _, q := range queries {
		idx, err := resolve(q, subject.Chapters)
		if err != nil {
			return nil, fmt.Errorf("%w: %q in %s", ErrChapterNotFound, q, subject.Name)
		}
		if seen[idx] {
			continue
		}
		seen[idx] = true
		refs = append(refs, ChapterRef{Subject: subject.Name, Chapter: subject.Chapters[idx]})
	}
	return refs, nil
}

// ResolveSelections resolves each selection against subjects and joins the
// chapters in selection order. A chapter picked twice is planned once.
func ResolveSelections(selections []Selection, subjects []Subject) ([]ChapterRef, error) {
	if len(selections) == 0 {
		return nil, ErrNothingToPlan
	}

	var refs []ChapterRef
	seen := make(map[ChapterRef]bool)
	for _, sel := range selections {
		subject, err := ResolveSubject(sel.Subject, subjects)
		if err != nil {
			return nil, err
		}
		picked, err := ResolveChapters(subject, sel.Chapters)
		if err != nil {
			return nil, err
		}
		for _, ref := range picked {
			if seen[ref] {
				continue
			}
			seen[ref] = true
			refs = append(refs, ref)
		}
	}

	if len(refs) == 0 {
		return nil, ErrNothingToPlan
	}
	return refs, nil
}

func resolve(query string, candidates []string) (int, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return 0, errors.New("empty query")
	}
	for i, c := range candidates {
		if strings.EqualFold(c, query) {
			return i, nil
		}
	}

	matches := fuzzy.Find(query, candidates)
	if len(matches) == 0 {
		return 0, errors.New("no match")
	}
	return matches[0].Index, nil
}

// Generate spreads items over days starting at start: item i is scheduled
// on day i mod days. Dates are truncated to local midnight.
func Generate(items []ChapterRef, days int, start time.Time) ([]domain.StudyTask, error) {
	if len(items) == 0 {
		return nil, ErrNothingToPlan
	}
	if days <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDays, days)
	}

	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	tasks := make([]domain.StudyTask, 0, len(items))
	for i, item := range items {
		tasks = append(tasks, domain.StudyTask{
			ID:          uuid.New().String(),
			Title:       "Study " + item.Chapter,
			Description: "Complete chapter in " + item.Subject,
			Date:        day.AddDate(0, 0, i%days),
			Subject:     item.Subject,
			Chapter:     item.Chapter,
			Priority:    DefaultPriority,
			TimeSlot:    DefaultTimeSlot,
		})
	}
	return tasks, nil
}
