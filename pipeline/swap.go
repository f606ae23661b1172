package pipeline

import (
	"sync"
	"sync/atomic"
	"time"
)

// frameSignal is sent from the submitting goroutine to the present
// goroutine over the one-slot rendezvous channel. skipBlit is true when
// the frame was produced by a resize: the present goroutine must skip
// packing/blitting for that frame rather than blit with stale
// dimensions.
type frameSignal struct {
	skipBlit bool
}

// swapState holds the concurrency fields for the twin-goroutine swap
// protocol: a buffered channel of capacity 1 as the rendezvous, plus a
// dedicated cancellation channel. waitMillis/swapToRenderRatio govern
// the frame-period and poll-latency budgets, gating select timeouts.
//
// busy is owned by the submitting side: set when a frame token is
// deposited, cleared by the presenter once it has finished with the
// front buffer. Swap never touches the grids or backIdx while busy is
// set, which is what keeps the unlocked front/back flip sound.
type swapState struct {
	frameCh chan frameSignal
	cancel  chan struct{}
	wg      sync.WaitGroup

	busy atomic.Bool

	waitMillis        int
	swapToRenderRatio int
}

const (
	defaultWaitMillis        = 17
	defaultSwapToRenderRatio = 10
)

func (fb *Framebuffer) swapThreadWait() time.Duration {
	ms := fb.waitMillis
	if ms <= 0 {
		ms = defaultWaitMillis
	}
	return time.Duration(ms) * time.Millisecond
}

func (fb *Framebuffer) renderThreadWait() time.Duration {
	ratio := fb.swapToRenderRatio
	if ratio <= 0 {
		ratio = defaultSwapToRenderRatio
	}
	return fb.swapThreadWait() / time.Duration(ratio)
}

// SetTimingBudget overrides the default 17ms / ratio-10 swap timing.
// Call before the first Swap.
func (fb *Framebuffer) SetTimingBudget(waitMillis, swapToRenderRatio int) {
	fb.waitMillis = waitMillis
	fb.swapToRenderRatio = swapToRenderRatio
}

func (fb *Framebuffer) startPresentLoop(c *Context) {
	fb.frameCh = make(chan frameSignal, 1)
	fb.cancel = make(chan struct{})
	fb.wg.Add(1)
	go fb.presentLoop(c)
}

func (fb *Framebuffer) presentLoop(c *Context) {
	defer fb.wg.Done()
	for {
		select {
		case <-fb.cancel:
			return
		case sig := <-fb.frameCh:
			if !sig.skipBlit {
				if err := fb.presentFrame(); err != nil {
					c.emitf(SeverityError, "present failed: %v", err)
				}
			}
			fb.busy.Store(false)
		case <-time.After(fb.renderThreadWait()):
		}
	}
}

// presentFrame packs the front buffer into a row-major RGBA byte grid
// (alpha=255) and hands it to the surface along with the configured tile
// mode, then asks the surface to render.
func (fb *Framebuffer) presentFrame() error {
	front := fb.grids[1-fb.backIdx]
	buf := make([]byte, len(front)*4)
	for i, p := range front {
		col := p.Color.clamp01()
		o := i * 4
		buf[o+0] = byte(col.R * 255)
		buf[o+1] = byte(col.G * 255)
		buf[o+2] = byte(col.B * 255)
		buf[o+3] = 255
	}
	cols, rows := fb.tile.CellSize()
	if err := fb.surface.BlitRGBA(buf, fb.effW*4, fb.tile, cols, rows); err != nil {
		return err
	}
	return fb.surface.Render()
}

// Swap is the presentation protocol: wait for any in-flight present to
// finish, apply a pending resize if one was recorded (skipping the copy
// for that frame), otherwise copy back to front and flip, then sleep the
// remainder of the frame budget.
func (fb *Framebuffer) Swap(c *Context) {
	start := time.Now()
	for fb.busy.Load() {
		time.Sleep(fb.renderThreadWait())
	}
	waited := time.Since(start)

	if fb.pendingResize {
		fb.applyResize(c)
		fb.signal(frameSignal{skipBlit: true})
		return
	}

	back := fb.grids[fb.backIdx]
	front := fb.grids[1-fb.backIdx]
	copy(front, back)
	fb.backIdx = 1 - fb.backIdx
	fb.signal(frameSignal{})

	remaining := fb.swapThreadWait() - waited
	if remaining > 0 {
		time.Sleep(remaining)
	}
}

// signal marks the presenter busy and deposits a frame token into the
// one-slot rendezvous. The busy wait in Swap guarantees the slot is
// empty by the time signal runs.
func (fb *Framebuffer) signal(sig frameSignal) {
	fb.busy.Store(true)
	select {
	case fb.frameCh <- sig:
	default:
		// Unreachable while the Swap/present handshake holds; dropping
		// the frame beats deadlocking the submitter if it ever breaks.
		fb.busy.Store(false)
	}
}

// Free cancels the present goroutine, waits for it to exit, then
// releases both grids. Idempotent.
func (fb *Framebuffer) Free() {
	if fb.freed {
		return
	}
	if fb.cancel != nil {
		close(fb.cancel)
		fb.wg.Wait()
	}
	fb.grids[0] = nil
	fb.grids[1] = nil
	fb.freed = true
}
