package studio

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/shouni/fitting-image-kit/pkg/assets"
	"github.com/shouni/fitting-image-kit/pkg/batch"
	"github.com/shouni/fitting-image-kit/pkg/generator"
)

// --- Mocks ---

type mockAIClient struct {
	mu      sync.Mutex
	calls   int
	started chan struct{}

	err error
	// waitForCancel が真の間、GenerateWithParts はコンテキストの打ち切りを待ちます。
	waitForCancel bool
}

func (m *mockAIClient) GenerateWithParts(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error) {
	m.mu.Lock()
	m.calls++
	if m.started != nil && m.calls == 1 {
		close(m.started)
	}
	err := m.err
	wait := m.waitForCancel
	m.mu.Unlock()

	if wait {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if err != nil {
		return nil, err
	}
	return &gemini.Response{
		RawResponse: &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{
				Content: &genai.Content{
					Parts: []*genai.Part{{InlineData: &genai.Blob{MIMEType: "image/png", Data: []byte("generated")}}},
				},
			}},
		},
	}, nil
}

func (m *mockAIClient) GenerateContent(ctx context.Context, model string, prompt string) (*gemini.Response, error) {
	return nil, nil
}

func (m *mockAIClient) UploadFile(ctx context.Context, data []byte, mimeType, displayName string) (string, string, error) {
	return "", "", nil
}

func (m *mockAIClient) DeleteFile(ctx context.Context, name string) error {
	return nil
}

func (m *mockAIClient) GetFile(ctx context.Context, name string) (*genai.File, error) {
	return nil, nil
}

// mockAssetStore はアップロードを記録し安定した URI を返す AssetStore です。
type mockAssetStore struct {
	mu       sync.Mutex
	uploads  []string
	metadata []map[string]string
	err      error
}

func (m *mockAssetStore) Upload(ctx context.Context, data []byte, name string, metadata map[string]string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	m.uploads = append(m.uploads, name)
	m.metadata = append(m.metadata, metadata)
	return "https://gemini.api/files/" + name, nil
}

func (m *mockAssetStore) List(ctx context.Context) ([]assets.Entry, error) {
	return nil, nil
}

func (m *mockAssetStore) Download(ctx context.Context, id string) ([]byte, error) {
	return nil, nil
}

func (m *mockAssetStore) Delete(ctx context.Context, id string) error {
	return nil
}

// --- Helpers ---

func createTinyPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 6, 6))
	for x := 0; x < 6; x++ {
		for y := 0; y < 6; y++ {
			img.Set(x, y, color.RGBA{uint8(x * 40), uint8(y * 40), 80, 255})
		}
	}
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, img); err != nil {
		t.Fatalf("failed to encode dummy png: %v", err)
	}
	return buf.Bytes()
}

func newTestController(t *testing.T, ai *mockAIClient, store assets.AssetStore) (*Controller, *batch.Board) {
	t.Helper()
	creds := assets.NewMemoryCredentialStore()
	require.NoError(t, creds.Save(context.Background(), "test-api-key"))

	gen, err := generator.NewFittingGenerator(ai, creds, "")
	require.NoError(t, err)

	board := batch.NewBoard()
	ctrl, err := NewController(gen, board, store)
	require.NoError(t, err)
	return ctrl, board
}
