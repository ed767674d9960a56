package batch

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shouni/fitting-image-kit/pkg/domain"
)

// MaxConcurrentBatches は同時に loading 状態でいられるバッチ数の上限です。
const MaxConcurrentBatches = 2

var (
	// ErrBatchLimit は同時実行上限による入場拒否を示します。
	// キューイングはせず、呼び出し元がスロットの空きを待って再試行します。
	ErrBatchLimit = errors.New("concurrent generation limit reached")

	// ErrBatchNotFound は存在しない（または削除済みの）バッチへの操作です。
	ErrBatchNotFound = errors.New("batch not found")
)

// Ticket は入場を許可された 1 ジョブ分のキャンセルトークンです。
// Cancel の所有権は呼び出し元（UI コントローラ）にあります。
type Ticket struct {
	BatchID string
	Ctx     context.Context
	Cancel  context.CancelFunc
}

// Board は並行する生成バッチのライフサイクルを追跡する状態機械です。
// 遷移は loading → completed / error のみで、そこから先は削除だけです。
type Board struct {
	mu      sync.Mutex
	batches []*domain.Batch
	cancels map[string]context.CancelFunc
}

func NewBoard() *Board {
	return &Board{
		cancels: make(map[string]context.CancelFunc),
	}
}

// Admit は新しい生成バッチの開始を要求します。loading 中のバッチが既に
// 上限に達している場合は、バッチを作らずプロバイダも呼ばずに ErrBatchLimit
// で拒否します（アドミッション制御であって、キューではありません）。
//
// 成功するとバッチはリスト先頭に追加され、要求枚数ぶんのプレースホルダを
// 持ちます。Images の要素数は以後変わりません。
func (b *Board) Admit(ctx context.Context, aspectRatio string, numberOfImages int) (*Ticket, error) {
	if numberOfImages <= 0 {
		numberOfImages = 1
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	loading := 0
	for _, batch := range b.batches {
		if batch.Status == domain.BatchLoading {
			loading++
		}
	}
	if loading >= MaxConcurrentBatches {
		return nil, ErrBatchLimit
	}

	id := uuid.NewString()
	images := make([]string, numberOfImages)
	for i := range images {
		images[i] = domain.BatchPlaceholder
	}

	batch := &domain.Batch{
		ID:          id,
		Images:      images,
		Status:      domain.BatchLoading,
		Date:        time.Now(),
		AspectRatio: aspectRatio,
	}
	b.batches = append([]*domain.Batch{batch}, b.batches...)

	jobCtx, cancel := context.WithCancel(ctx)
	b.cancels[id] = cancel

	return &Ticket{BatchID: id, Ctx: jobCtx, Cancel: cancel}, nil
}

// Complete はバッチを completed へ遷移させ、プレースホルダを実 URL へ
// その場で置き換えます。要求枚数より少ない結果はプレースホルダを残します。
func (b *Board) Complete(id string, urls []string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	batch := b.find(id)
	if batch == nil {
		return ErrBatchNotFound
	}
	if batch.Status != domain.BatchLoading {
		return nil // completed / error からの再遷移はしない
	}

	for i := 0; i < len(batch.Images) && i < len(urls); i++ {
		batch.Images[i] = urls[i]
	}
	batch.Status = domain.BatchCompleted
	b.release(id)
	return nil
}

// Fail はバッチを error へ遷移させます。
func (b *Board) Fail(id, errorMsg string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	batch := b.find(id)
	if batch == nil {
		return ErrBatchNotFound
	}
	if batch.Status != domain.BatchLoading {
		return nil
	}

	batch.Status = domain.BatchError
	batch.ErrorMsg = errorMsg
	b.release(id)
	return nil
}

// CancelBatch は実行中のリモート呼び出しを中断し、バッチを一覧から即座に
// 削除します。キャンセルは「cancelled」状態への遷移ではなく削除です。
// 存在しない ID に対しては何もしません（冪等）。
func (b *Board) CancelBatch(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.release(id)
	for i, batch := range b.batches {
		if batch.ID == id {
			b.batches = append(b.batches[:i], b.batches[i+1:]...)
			return
		}
	}
}

// Remove は完了・失敗済みバッチを一覧から取り除きます。
func (b *Board) Remove(id string) {
	b.CancelBatch(id)
}

// Get は指定 ID のバッチのコピーを返します。
func (b *Board) Get(id string) (domain.Batch, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	batch := b.find(id)
	if batch == nil {
		return domain.Batch{}, false
	}
	return copyBatch(batch), true
}

// Snapshot は現在のバッチ一覧のコピーを新しい順で返します。
func (b *Board) Snapshot() []domain.Batch {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]domain.Batch, 0, len(b.batches))
	for _, batch := range b.batches {
		out = append(out, copyBatch(batch))
	}
	return out
}

// LoadingCount は loading 状態のバッチ数を返します。
func (b *Board) LoadingCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	count := 0
	for _, batch := range b.batches {
		if batch.Status == domain.BatchLoading {
			count++
		}
	}
	return count
}

// find は呼び出し側でロックを保持している前提の内部探索です。
func (b *Board) find(id string) *domain.Batch {
	for _, batch := range b.batches {
		if batch.ID == id {
			return batch
		}
	}
	return nil
}

// release はキャンセル関数の解放です。削除は冪等で、二重解放も安全です。
func (b *Board) release(id string) {
	if cancel, ok := b.cancels[id]; ok {
		cancel()
		delete(b.cancels, id)
	}
}

func copyBatch(batch *domain.Batch) domain.Batch {
	out := *batch
	out.Images = append([]string(nil), batch.Images...)
	return out
}
