package summarize

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient records every prompt and returns canned responses in order.
type fakeClient struct {
	responses []string
	err       error
	prompts   []string
}

func (f *fakeClient) Summarize(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	if len(f.responses) == 0 {
		return "summary", nil
	}
	resp := f.responses[0]
	f.responses = f.responses[1:]
	return resp, nil
}

func TestSynthesizeFallbackTimestamp(t *testing.T) {
	s := NewSynthesizer(nil, 5000, 6)
	s.now = func() time.Time {
		return time.Date(2024, 3, 9, 14, 30, 5, 0, time.Local)
	}

	msg, err := s.Synthesize(context.Background(), "some diff")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-09 14:30:05", msg)
}

func TestSynthesizeFallbackFormat(t *testing.T) {
	s := NewSynthesizer(nil, 5000, 6)

	msg, err := s.Synthesize(context.Background(), "some diff")
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}$`), msg)
}

func TestSynthesizeChunkBudget(t *testing.T) {
	client := &fakeClient{}
	for i := 0; i < 10; i++ {
		client.responses = append(client.responses, fmt.Sprintf("s%d", i))
	}
	s := NewSynthesizer(client, 10, 6)

	// 8 chunks of 10 bytes; only 6 may be processed. Mark each chunk so the
	// dropped ones are recognizable.
	diff := ""
	for i := 0; i < 8; i++ {
		diff += fmt.Sprintf("chunk-%d---", i)
	}

	msg, err := s.Synthesize(context.Background(), diff)
	require.NoError(t, err)

	assert.Len(t, client.prompts, 6)
	assert.Contains(t, client.prompts[5], "chunk-5")
	for _, p := range client.prompts {
		assert.NotContains(t, p, "chunk-6")
		assert.NotContains(t, p, "chunk-7")
	}
	assert.Equal(t, "s0 s1 s2 s3 s4 s5", msg)
}

func TestSynthesizeChunksInOrder(t *testing.T) {
	client := &fakeClient{responses: []string{"first", "second"}}
	s := NewSynthesizer(client, 5, 6)

	msg, err := s.Synthesize(context.Background(), "aaaaabbbbb")
	require.NoError(t, err)
	assert.Equal(t, "first second", msg)

	require.Len(t, client.prompts, 2)
	assert.True(t, strings.HasSuffix(client.prompts[0], "aaaaa"))
	assert.True(t, strings.HasSuffix(client.prompts[1], "bbbbb"))
}

func TestSynthesizeEmptyContentPlaceholder(t *testing.T) {
	client := &fakeClient{responses: []string{""}}
	s := NewSynthesizer(client, 5000, 6)

	msg, err := s.Synthesize(context.Background(), "a diff")
	require.NoError(t, err)
	assert.Equal(t, "Could not generate commit message", msg)
}

func TestSynthesizeAbortsOnAPIError(t *testing.T) {
	client := &fakeClient{err: &APIError{StatusCode: 429, Message: "rate limited"}}
	s := NewSynthesizer(client, 5, 6)

	_, err := s.Synthesize(context.Background(), "aaaaabbbbb")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 429, apiErr.StatusCode)

	// Strict policy: the first failure aborts, later chunks are never sent.
	assert.Len(t, client.prompts, 1)
}

func TestSynthesizePromptCarriesDiff(t *testing.T) {
	client := &fakeClient{}
	s := NewSynthesizer(client, 5000, 6)

	_, err := s.Synthesize(context.Background(), "diff --git a/x b/x")
	require.NoError(t, err)

	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "CommitBot")
	assert.Contains(t, client.prompts[0], "diff --git a/x b/x")
}

func TestSplitChunks(t *testing.T) {
	tests := []struct {
		name string
		in   string
		size int
		want []string
	}{
		{name: "empty", in: "", size: 5, want: nil},
		{name: "under one chunk", in: "abc", size: 5, want: []string{"abc"}},
		{name: "exact boundary", in: "abcde", size: 5, want: []string{"abcde"}},
		{name: "two and a half", in: "aaaaabbbbbcc", size: 5, want: []string{"aaaaa", "bbbbb", "cc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitChunks(tt.in, tt.size))
		})
	}
}
