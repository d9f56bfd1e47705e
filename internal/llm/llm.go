// Package llm provides the Gemini embedding client that turns issue text and
// code snapshots into vectors for the dataset records.
package llm

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"google.golang.org/genai"

	"github.com/issueminer/issueminer/internal/contract"
	"github.com/issueminer/issueminer/schema"
)

// SnapshotByteBudget caps the concatenated snapshot text sent to the
// embedding model. The model reads a bounded input window, so larger
// codebases embed their path-sorted prefix.
const SnapshotByteBudget = 1 << 16

// embedAPI is the slice of the genai surface the embedder calls.
type embedAPI interface {
	EmbedContent(ctx context.Context, model string, contents []*genai.Content, config *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error)
}

// Embedder generates embedding vectors via the Gemini API. The API key comes
// from the GEMINI_API_KEY environment variable read by the client.
type Embedder struct {
	models    embedAPI
	textModel string
	codeModel string
	log       *contract.RunLog
}

var _ contract.Embedder = &Embedder{} // Compile-time check

// NewEmbedder creates an Embedder backed by the Gemini API.
func NewEmbedder(ctx context.Context, textModel, codeModel string, log *contract.RunLog) (*Embedder, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{Backend: genai.BackendGeminiAPI})
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding client: %w", err)
	}
	return &Embedder{
		models:    client.Models,
		textModel: textModel,
		codeModel: codeModel,
		log:       log,
	}, nil
}

// EmbedText embeds free-form issue text. Empty or whitespace-only text yields
// a nil vector so the record field stays absent.
func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float64, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	return e.embed(ctx, e.textModel, text)
}

// EmbedCode embeds a codebase snapshot as a single document, truncated to
// SnapshotByteBudget. An empty snapshot yields a nil vector.
func (e *Embedder) EmbedCode(ctx context.Context, snapshot schema.Snapshot) ([]float64, error) {
	full := SnapshotText(snapshot)
	if full == "" {
		return nil, nil
	}
	text := truncateBytes(full, SnapshotByteBudget)
	if len(text) < len(full) {
		e.log.Infof("Snapshot text truncated from %d to %d bytes for embedding", len(full), len(text))
	}
	return e.embed(ctx, e.codeModel, text)
}

func (e *Embedder) embed(ctx context.Context, model string, text string) ([]float64, error) {
	resp, err := e.models.EmbedContent(ctx, model, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("embedding request to %s failed: %w", model, err)
	}
	if resp == nil || len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Values) == 0 {
		return nil, fmt.Errorf("embedding response from %s contained no vector", model)
	}
	values := resp.Embeddings[0].Values
	vector := make([]float64, len(values))
	for i, v := range values {
		vector[i] = float64(v)
	}
	return vector, nil
}

// SnapshotText flattens a snapshot into one embeddable document: files in
// path order, each preceded by its path and followed by a blank line.
func SnapshotText(snapshot schema.Snapshot) string {
	if len(snapshot) == 0 {
		return ""
	}
	paths := make([]string, 0, len(snapshot))
	for path := range snapshot {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var b strings.Builder
	for _, path := range paths {
		b.WriteString(path)
		b.WriteByte('\n')
		b.WriteString(snapshot[path])
		if !strings.HasSuffix(snapshot[path], "\n") {
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// truncateBytes cuts s to at most limit bytes without splitting a rune.
func truncateBytes(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
