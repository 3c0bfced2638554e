// Package safe_close 提供多组件协同的优雅关闭控制
package safe_close

import (
	"sync"
)

// SafeClose 协调多个后台组件的关闭流程
// 每个组件通过 Attach 注册，收到关闭信号后完成清理并调用 done
type SafeClose struct {
	closeCh   chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup

	mu  sync.Mutex
	err error
}

// NewSafeClose 创建 SafeClose 实例
func NewSafeClose() *SafeClose {
	return &SafeClose{
		closeCh: make(chan struct{}),
	}
}

// Attach 注册一个受管理的组件
// f 在独立 goroutine 中运行，必须在收到 closeSignal 后调用 done
func (sc *SafeClose) Attach(f func(done func(), closeSignal <-chan struct{})) {
	sc.wg.Add(1)
	var doneOnce sync.Once
	done := func() {
		doneOnce.Do(sc.wg.Done)
	}
	go f(done, sc.closeCh)
}

// SendCloseSignal 发送关闭信号，首个非 nil 错误会被保留
// 可以被多次调用，仅首次生效
func (sc *SafeClose) SendCloseSignal(err error) {
	sc.closeOnce.Do(func() {
		sc.mu.Lock()
		sc.err = err
		sc.mu.Unlock()
		close(sc.closeCh)
	})
}

// CloseSignal 返回关闭信号通道
func (sc *SafeClose) CloseSignal() <-chan struct{} {
	return sc.closeCh
}

// WaitClosed 阻塞直到所有组件完成关闭，返回触发关闭的错误
func (sc *SafeClose) WaitClosed() error {
	sc.wg.Wait()
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.err
}
