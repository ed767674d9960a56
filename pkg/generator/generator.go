package generator

import (
	"context"
	"fmt"
	"time"

	"github.com/shouni/go-gemini-client/pkg/gemini"

	"github.com/shouni/fitting-image-kit/pkg/assets"
)

// DefaultModel は画像生成に使う既定の Gemini モデルです。
const DefaultModel = "gemini-2.5-flash-image-preview"

// FittingGenerator はフィッティング・レタッチ・インペイントの 3 つの生成
// 操作を統括するオーケストレーターです。
type FittingGenerator struct {
	aiClient     gemini.GenerativeModel
	creds        assets.CredentialStore
	model        string
	maxRetries   int
	initialDelay time.Duration
}

// NewFittingGenerator は依存関係を注入して FittingGenerator を初期化します。
func NewFittingGenerator(aiClient gemini.GenerativeModel, creds assets.CredentialStore, model string) (*FittingGenerator, error) {
	if aiClient == nil {
		return nil, fmt.Errorf("aiClient is required")
	}
	if creds == nil {
		return nil, fmt.Errorf("creds (CredentialStore) is required")
	}
	if model == "" {
		model = DefaultModel
	}

	return &FittingGenerator{
		aiClient:     aiClient,
		creds:        creds,
		model:        model,
		maxRetries:   DefaultMaxRetries,
		initialDelay: DefaultInitialDelay,
	}, nil
}

// Model は設定されているモデル名を返します。
func (g *FittingGenerator) Model() string {
	return g.model
}

// ensureAPIKey は生成の前提となる API キーの存在を確認します。
// キーが無ければいかなるネットワーク呼び出しも行わずに失敗します。
func (g *FittingGenerator) ensureAPIKey(ctx context.Context) error {
	ok, err := g.creds.Has(ctx)
	if err != nil {
		return fmt.Errorf("認証情報ストアの参照に失敗しました: %w", err)
	}
	if !ok {
		return ErrNoAPIKey
	}
	return nil
}
