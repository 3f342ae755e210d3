package summarize

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// fallbackLayout is the timestamp format used when no summarization
// credential is configured.
const fallbackLayout = "2006-01-02 15:04:05"

// placeholder stands in for a chunk whose response carried no content.
const placeholder = "Could not generate commit message"

const promptPreamble = `You are CommitBot, an assistant tasked with writing helpful commit messages based on code changes.
You will be given a set of patches of code changes, and you must write a short commit message describing the changes. Do not be verbose.
Your response must include only high level logical changes if the diff is large, otherwise you may include specific changes.
Try to fit your response in one line.

`

// Synthesizer produces a commit message from diff text. With no client
// configured it falls back to a local timestamp and performs no network
// calls; otherwise it chunks the diff and queries the client per chunk under
// a hard call budget.
type Synthesizer struct {
	client    Client
	chunkSize int
	maxChunks int

	now func() time.Time
}

// NewSynthesizer creates a synthesizer. client may be nil, which selects the
// timestamp fallback.
func NewSynthesizer(client Client, chunkSize, maxChunks int) *Synthesizer {
	return &Synthesizer{
		client:    client,
		chunkSize: chunkSize,
		maxChunks: maxChunks,
		now:       time.Now,
	}
}

// Synthesize turns diff into a commit message.
//
// Chunks beyond the budget are silently dropped. A chunk whose response is
// empty becomes a placeholder; a chunk whose call fails aborts the whole
// synthesis (strict policy: no partial message is assembled from failed
// calls). Chunk summaries are joined with a single space, in chunk order.
func (s *Synthesizer) Synthesize(ctx context.Context, diff string) (string, error) {
	if s.client == nil {
		return s.now().Format(fallbackLayout), nil
	}

	chunks := splitChunks(diff, s.chunkSize)
	if len(chunks) > s.maxChunks {
		chunks = chunks[:s.maxChunks]
	}

	parts := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		content, err := s.client.Summarize(ctx, promptPreamble+chunk)
		if err != nil {
			return "", fmt.Errorf("summarize chunk %d: %w", i, err)
		}
		if content == "" {
			content = placeholder
		}
		parts = append(parts, content)
	}

	message := strings.Join(parts, " ")
	if message == "" {
		message = placeholder
	}
	return message, nil
}

// splitChunks cuts s into size-byte pieces, in order. An empty string yields
// no chunks.
func splitChunks(s string, size int) []string {
	var chunks []string
	for len(s) > size {
		chunks = append(chunks, s[:size])
		s = s[size:]
	}
	if s != "" {
		chunks = append(chunks, s)
	}
	return chunks
}
