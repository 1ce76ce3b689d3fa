package services

import (
	"strings"
	"testing"
)

func TestBuildAlignmentPrompt(t *testing.T) {
	pb := NewPromptBuilder()
	prompt := pb.BuildAlignmentPrompt("  Senior Go Engineer\n", "3 years Go, built a message queue")

	for _, want := range []string{
		"Senior Go Engineer",
		"3 years Go, built a message queue",
		"scale of 1-10",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("expected %q in prompt", want)
		}
	}

	last := -1
	for _, heading := range ReportHeadings {
		idx := strings.Index(prompt, "## "+heading)
		if idx < 0 {
			t.Fatalf("missing heading %q", heading)
		}
		if idx <= last {
			t.Fatalf("heading %q out of order", heading)
		}
		last = idx
	}

	if jd := strings.Index(prompt, "Senior Go Engineer"); jd > strings.Index(prompt, "3 years Go") {
		t.Fatal("expected job description before resume")
	}
}

func TestBuildAlignmentPromptIsDeterministic(t *testing.T) {
	pb := NewPromptBuilder()
	if pb.BuildAlignmentPrompt("a", "b") != pb.BuildAlignmentPrompt("a", "b") {
		t.Fatal("expected identical prompts for identical input")
	}
	if pb.BuildAlignmentPrompt("", "") == "" {
		t.Fatal("expected template even for empty input")
	}
}
