package assets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/remoteio"

	"github.com/shouni/fitting-image-kit/pkg/imgutil"
)

const (
	// UseUploadCompression はアップロード前の JPEG 圧縮を有効にします。
	UseUploadCompression = true
	// UploadCompressionQuality は圧縮時の JPEG 品質です。
	UploadCompressionQuality = 75

	cacheKeyFileAPIURI  = "fileapi_uri:"
	cacheKeyFileAPIName = "fileapi_name:"
)

// Cacher は、アップロード済みアセットの参照をキャッシュするためのインターフェースです。
type Cacher interface {
	// Get は、指定されたキーに紐づくアイテムを取得します。
	Get(key string) (any, bool)
	// Set は、指定されたキーと値、有効期限でアイテムを保存します。
	Set(key string, value any, d time.Duration)
}

// Entry はアセットストア内の 1 アセットの一覧情報です。
type Entry struct {
	ID         string
	Name       string
	Metadata   map[string]string
	UploadedAt time.Time
}

// AssetStore は生成アセットの保存先（クラウドファイルストア）を抽象化します。
// コアの義務は、後で往復できる安定したメタデータバッグを各アセットに
// 添えることだけです。
type AssetStore interface {
	Upload(ctx context.Context, data []byte, name string, metadata map[string]string) (string, error)
	List(ctx context.Context) ([]Entry, error)
	Download(ctx context.Context, id string) ([]byte, error)
	Delete(ctx context.Context, id string) error
}

// GeminiFileStore は Gemini File API をアップロード先に、go-remote-io /
// go-http-kit をダウンロード経路に使う AssetStore 実装です。
type GeminiFileStore struct {
	aiClient   gemini.GenerativeModel
	reader     remoteio.InputReader
	httpClient httpkit.ClientInterface
	cache      Cacher
	expiration time.Duration

	mu    sync.Mutex
	index map[string]Entry
}

// NewGeminiFileStore は依存関係を注入して GeminiFileStore を初期化します。
func NewGeminiFileStore(aiClient gemini.GenerativeModel, reader remoteio.InputReader, httpClient httpkit.ClientInterface, cache Cacher, cacheTTL time.Duration) (*GeminiFileStore, error) {
	if aiClient == nil {
		return nil, fmt.Errorf("aiClient is required")
	}
	if reader == nil {
		return nil, fmt.Errorf("reader is required")
	}
	if httpClient == nil {
		return nil, fmt.Errorf("httpClient is required")
	}
	// cache は nil を許容（キャッシュなし動作）

	return &GeminiFileStore{
		aiClient:   aiClient,
		reader:     reader,
		httpClient: httpClient,
		cache:      cache,
		expiration: cacheTTL,
		index:      make(map[string]Entry),
	}, nil
}

// Upload は画像を Gemini File API にアップロードし、参照 URI を返します。
// 同名アセットの再アップロードはキャッシュで回避します。
func (s *GeminiFileStore) Upload(ctx context.Context, data []byte, name string, metadata map[string]string) (string, error) {
	if s.cache != nil {
		if val, ok := s.cache.Get(cacheKeyFileAPIURI + name); ok {
			if uri, ok := val.(string); ok {
				return uri, nil
			}
		}
	}

	finalData := data
	if UseUploadCompression {
		if compressed, err := imgutil.CompressToJPEG(data, UploadCompressionQuality); err == nil {
			finalData = compressed
		}
	}

	mimeType := http.DetectContentType(finalData)
	uri, fileName, err := s.aiClient.UploadFile(ctx, finalData, mimeType, name)
	if err != nil {
		return "", err
	}

	// URI（参照用）と Name（削除用）の両方をキャッシュ
	if s.cache != nil {
		s.cache.Set(cacheKeyFileAPIURI+name, uri, s.expiration)
		s.cache.Set(cacheKeyFileAPIName+uri, fileName, s.expiration)
	}

	s.mu.Lock()
	s.index[uri] = Entry{
		ID:         uri,
		Name:       fileName,
		Metadata:   cloneMetadata(metadata),
		UploadedAt: time.Now(),
	}
	s.mu.Unlock()

	return uri, nil
}

// List はこのストア経由でアップロードされたアセットの一覧を返します。
func (s *GeminiFileStore) List(ctx context.Context) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]Entry, 0, len(s.index))
	for _, e := range s.index {
		entries = append(entries, e)
	}
	return entries, nil
}

// Download は ID（URI）からアセットのバイト列を取得します。
// gs:// はリモートリーダー、http(s) は SSRF 検証済みの HTTP 取得を使います。
func (s *GeminiFileStore) Download(ctx context.Context, id string) ([]byte, error) {
	if strings.HasPrefix(id, "gs://") {
		rc, err := s.reader.Open(ctx, id)
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}

	if safe, err := IsSafeURL(id); err != nil || !safe {
		return nil, fmt.Errorf("安全ではないURLが指定されました: %w", err)
	}
	return s.httpClient.FetchBytes(ctx, id)
}

// Delete はアセットを Gemini File API から削除します。
// 削除には File API 上のファイル名 (files/xxxx) が必要なため、キャッシュ
// またはローカル索引から引きます。索引からの除去は冪等です。
func (s *GeminiFileStore) Delete(ctx context.Context, id string) error {
	name := ""
	if s.cache != nil {
		if val, ok := s.cache.Get(cacheKeyFileAPIName + id); ok {
			if cached, ok := val.(string); ok {
				name = cached
			}
		}
	}

	s.mu.Lock()
	if entry, ok := s.index[id]; ok && name == "" {
		name = entry.Name
	}
	delete(s.index, id)
	s.mu.Unlock()

	if name == "" {
		return fmt.Errorf("cannot determine file name for deletion: %s", id)
	}
	return s.aiClient.DeleteFile(ctx, name)
}

func cloneMetadata(metadata map[string]string) map[string]string {
	out := make(map[string]string, len(metadata))
	for k, v := range metadata {
		out[k] = v
	}
	return out
}
