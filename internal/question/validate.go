package question

import (
	"fmt"
	"strings"
)

// Issue captures a consistency problem in an extracted question.
type Issue struct {
	Field   string
	Message string
}

// ValidationError reports one or more validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error returns a readable message for validation failures.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return ""
	}
	parts := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return fmt.Sprintf("question validation failed: %s", strings.Join(parts, "; "))
}

type issueCollector struct {
	issues []Issue
}

func (collector *issueCollector) add(field, message string) {
	collector.issues = append(collector.issues, Issue{Field: field, Message: message})
}

func (collector *issueCollector) result() error {
	if len(collector.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: collector.issues}
}

// Validate checks the invariants every extracted question must hold.
func Validate(q Question) error {
	collector := &issueCollector{}
	if strings.TrimSpace(q.Text) == "" {
		collector.add("question", "is required")
	}
	switch answer := q.Answer.(type) {
	case TextAnswer:
	case ChoiceList:
		if len(answer.Options) == 0 {
			collector.add("answer", "must include at least one option")
		}
		for i, option := range answer.Options {
			if strings.TrimSpace(option.Text) == "" {
				collector.add(fmt.Sprintf("answer[%d].text", i), "is required")
			}
		}
		if answer.Single && answer.CorrectCount() == 1 {
			for i, option := range answer.Options {
				if !option.Correct.Known() {
					collector.add(fmt.Sprintf("answer[%d].correct", i), "single-select option left unknown beside a correct one")
				}
			}
		}
	case MatchingList:
		if len(answer.Pairs) == 0 {
			collector.add("answer", "must include at least one pair")
		}
		for i, pair := range answer.Pairs {
			if strings.TrimSpace(pair.Left) == "" {
				collector.add(fmt.Sprintf("answer[%d].left", i), "is required")
			}
			if strings.TrimSpace(pair.Right) == "" {
				collector.add(fmt.Sprintf("answer[%d].right", i), "is required")
			}
		}
	case nil:
		collector.add("answer", "is required")
	}
	return collector.result()
}
