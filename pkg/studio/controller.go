package studio

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shouni/fitting-image-kit/pkg/assets"
	"github.com/shouni/fitting-image-kit/pkg/batch"
	"github.com/shouni/fitting-image-kit/pkg/domain"
	"github.com/shouni/fitting-image-kit/pkg/generator"
)

// Controller は State・バッチボード・ジェネレーターを束ねるスタジオの
// 操作窓口です。UI シェルはこの型のメソッドだけを呼びます。
//
// 生成メソッドは同期的に動くため、UI からは goroutine で呼び出し、
// 進行状況は State().Batches で監視する想定です。
type Controller struct {
	mu      sync.Mutex
	state   State
	history []domain.HistoryItem

	board *batch.Board
	gen   *generator.FittingGenerator
	store assets.AssetStore
}

// NewController は依存関係を注入して Controller を初期化します。
// store は nil を許容し、その場合の生成結果はメモリ内参照になります。
func NewController(gen *generator.FittingGenerator, board *batch.Board, store assets.AssetStore) (*Controller, error) {
	if gen == nil {
		return nil, fmt.Errorf("gen (FittingGenerator) is required")
	}
	if board == nil {
		return nil, fmt.Errorf("board is required")
	}

	return &Controller{
		state: NewState(),
		board: board,
		gen:   gen,
		store: store,
	}, nil
}

// State は現在の State のコピーを返します。
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Apply は Reducer を State に適用します。
func (c *Controller) Apply(fn func(State) State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = fn(c.state)
}

// GenerateFitting は現在のビューの内容からフィッティング生成を実行します。
//
// 同時実行上限に達している場合は batch.ErrBatchLimit で即座に拒否します。
// キャンセルによる中断は generator.ErrCancelled をそのまま返しますが、
// バッチは既に削除済みのためエラースロットには記録しません。
func (c *Controller) GenerateFitting(ctx context.Context) (*domain.FittingResult, error) {
	c.mu.Lock()
	s := c.snapshotLocked()
	c.mu.Unlock()

	view := s.Views[s.CurrentView]
	req := domain.FittingRequest{
		ModelImage:      view.ModelImage,
		Items:           view.CloneItems(),
		ReferenceImages: s.ReferenceImages,
		Options:         s.Options,
		Prompt:          s.Prompt,
		AspectRatio:     s.AspectRatio,
		ImageSize:       s.ImageSize,
		NumberOfImages:  s.NumberOfImages,
		Seed:            seedForRequest(s),
	}

	ticket, err := c.board.Admit(ctx, s.AspectRatio, s.NumberOfImages)
	if err != nil {
		c.recordError(err)
		return nil, err
	}

	result, err := c.gen.GenerateFitting(ticket.Ctx, req)
	if err != nil {
		return nil, c.finishFailure(ticket, err)
	}

	meta := domain.GenerationMeta{
		Mode:           domain.ModeFitting,
		Prompt:         s.Prompt,
		Fit:            s.Options.Fit,
		Pose:           s.Options.Pose,
		Background:     s.Options.Background,
		Gender:         s.Options.Gender,
		ReferenceCount: len(s.ReferenceImages),
		Model:          c.gen.Model(),
	}
	c.finishSuccess(ticket, result.Images, meta)
	return result, nil
}

// GenerateEdit は既存写真のレタッチを実行します。レタッチは常に 1 枚の
// バッチとして追跡します。
func (c *Controller) GenerateEdit(ctx context.Context, req domain.EditRequest) (*domain.ImageResult, error) {
	ticket, err := c.board.Admit(ctx, "", 1)
	if err != nil {
		c.recordError(err)
		return nil, err
	}

	result, err := c.gen.GenerateEdit(ticket.Ctx, req)
	if err != nil {
		return nil, c.finishFailure(ticket, err)
	}

	meta := domain.GenerationMeta{
		Mode:           domain.ModeEdit,
		Prompt:         req.Prompt,
		Seed:           result.UsedSeed,
		ReferenceCount: len(req.ReferenceImages),
		Model:          c.gen.Model(),
	}
	c.finishSuccess(ticket, []domain.ImageResult{*result}, meta)
	return result, nil
}

// GenerateInpaint はマスク指定領域のインペイントを実行します。
// 履歴とバッチには合成済み画像を採用します。
func (c *Controller) GenerateInpaint(ctx context.Context, req domain.InpaintRequest) (*domain.InpaintResult, error) {
	ticket, err := c.board.Admit(ctx, "", 1)
	if err != nil {
		c.recordError(err)
		return nil, err
	}

	result, err := c.gen.GenerateInpaint(ticket.Ctx, req)
	if err != nil {
		return nil, c.finishFailure(ticket, err)
	}

	meta := domain.GenerationMeta{
		Mode:   domain.ModeInpaint,
		Prompt: req.Prompt,
		Seed:   result.Composited.UsedSeed,
		Model:  c.gen.Model(),
	}
	c.finishSuccess(ticket, []domain.ImageResult{result.Composited}, meta)
	return result, nil
}

// CancelGeneration は実行中の生成を中断し、バッチを一覧から削除します。
func (c *Controller) CancelGeneration(id string) {
	c.board.CancelBatch(id)
	c.refreshBatches()
}

// RemoveBatch は完了・失敗済みバッチを一覧から取り除きます。
func (c *Controller) RemoveBatch(id string) {
	c.board.Remove(id)
	c.refreshBatches()
}

// History は生成履歴のコピーを新しい順で返します。
func (c *Controller) History() []domain.HistoryItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.HistoryItem(nil), c.history...)
}

// ToggleLiked は履歴アイテムのお気に入り状態を反転します。
func (c *Controller) ToggleLiked(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.history {
		if c.history[i].ID == id {
			c.history[i].Liked = !c.history[i].Liked
			return
		}
	}
}

// RemoveHistory は履歴から 1 アイテムを削除します。
func (c *Controller) RemoveHistory(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.history {
		if c.history[i].ID == id {
			c.history = append(c.history[:i], c.history[i+1:]...)
			return
		}
	}
}

// finishSuccess はバッチ完了・結果参照の解決・履歴追加をまとめて行います。
func (c *Controller) finishSuccess(ticket *batch.Ticket, images []domain.ImageResult, meta domain.GenerationMeta) {
	urls := make([]string, 0, len(images))
	items := make([]domain.HistoryItem, 0, len(images))
	now := time.Now()

	for i, img := range images {
		imgMeta := meta
		imgMeta.Seed = img.UsedSeed

		id := uuid.NewString()
		url := c.persist(ticket.Ctx, img, imgMeta, fmt.Sprintf("%s-%d", ticket.BatchID, i))
		urls = append(urls, url)
		items = append(items, domain.HistoryItem{
			ID:        id,
			Image:     img.Data,
			Meta:      imgMeta,
			CreatedAt: now,
		})
	}

	_ = c.board.Complete(ticket.BatchID, urls)

	c.mu.Lock()
	c.history = append(items, c.history...)
	c.state.Batches = c.board.Snapshot()
	c.state.LastError = ""
	c.mu.Unlock()
}

// finishFailure はエラー種別に応じてバッチと State を後始末します。
// キャンセルは削除済みバッチへの静かな中断として扱います。
func (c *Controller) finishFailure(ticket *batch.Ticket, err error) error {
	if errors.Is(err, generator.ErrCancelled) {
		c.board.CancelBatch(ticket.BatchID)
		c.refreshBatches()
		return generator.ErrCancelled
	}

	_ = c.board.Fail(ticket.BatchID, err.Error())
	c.mu.Lock()
	c.state.Batches = c.board.Snapshot()
	c.state.LastError = err.Error()
	c.mu.Unlock()
	return err
}

// persist は生成画像をアセットストアへ保存し参照 URI を返します。
// ストア未設定や保存失敗でも生成自体は成功扱いとし、メモリ内参照に倒します。
func (c *Controller) persist(ctx context.Context, img domain.ImageResult, meta domain.GenerationMeta, name string) string {
	if c.store == nil {
		return "memory://" + name
	}
	uri, err := c.store.Upload(ctx, img.Data, name, assets.MetadataFromGeneration(meta))
	if err != nil {
		return "memory://" + name
	}
	return uri
}

func (c *Controller) recordError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.LastError = err.Error()
}

func (c *Controller) refreshBatches() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Batches = c.board.Snapshot()
}

// snapshotLocked は呼び出し側でロックを保持している前提の State コピーです。
func (c *Controller) snapshotLocked() State {
	s := c.state
	s.Views = cloneViews(c.state.Views)
	s.Batches = append([]domain.Batch(nil), c.state.Batches...)
	s.ReferenceImages = append([][]byte(nil), c.state.ReferenceImages...)
	return s
}
