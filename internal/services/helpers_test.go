package services

import (
	"bytes"
	"context"
	"mime/multipart"
	"sync"
	"testing"
)

type fakeInference struct {
	mu      sync.Mutex
	prompts []string
	answer  string
	err     error
}

func (f *fakeInference) GenerateText(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

func (f *fakeInference) Provider() string {
	return "fake"
}

func (f *fakeInference) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

type formFile struct {
	field string
	name  string
	data  []byte
}

func newForm(t *testing.T, files ...formFile) *multipart.Form {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for _, f := range files {
		part, err := w.CreateFormFile(f.field, f.name)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write(f.data); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(32 << 20)
	if err != nil {
		t.Fatalf("read form: %v", err)
	}
	t.Cleanup(func() { form.RemoveAll() })
	return form
}

const sampleAnalysis = `## Summary
Solid Go background, lighter on distributed systems.

## Strengths
- 3 years of Go
- Built a message queue

## Weaknesses
- 3 years of experience against the 5 years required

## Score
6/10 because the core stack matches but seniority is short.

## Suggestions
- Highlight the distributed aspects of the message queue.
`
