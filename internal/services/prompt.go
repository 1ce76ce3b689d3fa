package services

import (
	"fmt"
	"strings"
)

// ReportHeadings are the sections the model is asked to produce, in order.
var ReportHeadings = []string{
	"Summary",
	"Strengths",
	"Weaknesses",
	"Score",
	"Suggestions",
}

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildAlignmentPrompt combines both documents into the single instruction
// sent to the model.
func (pb *PromptBuilder) BuildAlignmentPrompt(jobDescription, resume string) string {
	headings := make([]string, 0, len(ReportHeadings))
	for _, h := range ReportHeadings {
		headings = append(headings, "## "+h)
	}

	return fmt.Sprintf(`You are an expert career coach and technical recruiter.

Here is a **Job Description**:
---
%s
---

And here is a **Candidate's Resume**:
---
%s
---

1. Extract the key skills, qualifications, experience, and responsibilities from the job description.
2. Analyze the resume and identify matching skills, technologies, job roles, and responsibilities.
3. Highlight the candidate's strengths with respect to the job requirements.
4. Point out gaps or weaknesses in experience, qualifications, or skills.
5. Rate the alignment on a scale of 1-10 with a short justification.
6. Suggest one or two specific ways the candidate can improve their fit for this role.

Return your response in structured Markdown using exactly these headings, in this order:

%s

Under "## Score" give the rating as "<n>/10" followed by the justification.`,
		strings.TrimSpace(jobDescription),
		strings.TrimSpace(resume),
		strings.Join(headings, "\n"))
}
