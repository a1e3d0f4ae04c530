package board

import (
	"fmt"

	"github.com/fieldline/dayboard/core/model"
)

// DragState tracks the phase of one drag gesture. The whole machine runs
// synchronously inside a single user interaction; DROPPED exists only as a
// transient phase inside Drop before the machine returns to IDLE.
type DragState int

const (
	DragIdle DragState = iota
	Dragging
	DragOver
)

func (s DragState) String() string {
	switch s {
	case DragIdle:
		return "IDLE"
	case Dragging:
		return "DRAGGING"
	case DragOver:
		return "DRAG_OVER"
	}
	return "UNKNOWN"
}

// DragSource identifies the entry being dragged: a position in a crew queue
// or, when FromPool is set, a position in the unassigned pool.
type DragSource struct {
	CrewID   string
	Index    int
	FromPool bool
}

// DropTarget identifies where the entry is hovering. Header targets a
// crew's header row and means "append to the end of the queue".
type DropTarget struct {
	CrewID string
	Index  int
	Header bool
}

// DragController drives manual reorder and transfer as an explicit state
// machine, so the same logic is reachable from tests and the CLI without
// simulating pointer events. Any invalid transition, or an End without a
// committed drop, returns to IDLE without mutating the board.
type DragController struct {
	board  *Board
	state  DragState
	source DragSource
	target DropTarget
}

// NewDragController creates a controller bound to one board.
func NewDragController(b *Board) *DragController {
	return &DragController{board: b}
}

// State returns the current machine state.
func (c *DragController) State() DragState { return c.state }

// Begin starts a drag from the given source. The source must exist.
func (c *DragController) Begin(src DragSource) error {
	if c.state != DragIdle {
		return fmt.Errorf("drag already in progress (%s)", c.state)
	}
	if src.FromPool {
		if src.Index < 0 || src.Index >= len(c.board.pool) {
			return fmt.Errorf("no pooled entry at %d", src.Index)
		}
	} else {
		q, ok := c.board.queues[src.CrewID]
		if !ok {
			return fmt.Errorf("unknown crew %s", src.CrewID)
		}
		if src.Index < 0 || src.Index >= len(q) {
			return fmt.Errorf("crew %s has no entry at %d", src.CrewID, src.Index)
		}
	}
	c.source = src
	c.state = Dragging
	return nil
}

// Over records the current hover target.
func (c *DragController) Over(t DropTarget) error {
	if c.state != Dragging && c.state != DragOver {
		return fmt.Errorf("no drag in progress")
	}
	if _, ok := c.board.queues[t.CrewID]; !ok {
		return fmt.Errorf("unknown crew %s", t.CrewID)
	}
	c.target = t
	c.state = DragOver
	return nil
}

// End finishes the gesture without a drop; nothing is mutated.
func (c *DragController) End() {
	c.state = DragIdle
	c.source = DragSource{}
	c.target = DropTarget{}
}

// Drop commits the gesture onto the last hovered target and returns the
// machine to IDLE. Dropping with no target hovered is a no-op end. Times
// are never stored, so reordered entries pick up their new computed times
// on the next timeline evaluation. Cross-crew moves are not revalidated
// against zone or capacity.
func (c *DragController) Drop() error {
	if c.state != DragOver {
		c.End()
		return nil
	}
	src, dst := c.source, c.target
	c.End()

	if src.FromPool {
		return c.board.dropFromPool(src.Index, dst)
	}
	return c.board.move(src.CrewID, src.Index, dst)
}

// move splices the entry out of the source queue and into the target
// position. Same-crew and cross-crew moves share the same splice.
func (b *Board) move(srcCrew string, srcIndex int, dst DropTarget) error {
	src := b.queues[srcCrew]
	if srcIndex < 0 || srcIndex >= len(src) {
		return fmt.Errorf("crew %s has no entry at %d", srcCrew, srcIndex)
	}
	e := src[srcIndex]
	b.queues[srcCrew] = append(src[:srcIndex], src[srcIndex+1:]...)

	tgt := b.queues[dst.CrewID]
	idx := dst.Index
	if dst.Header || idx > len(tgt) {
		idx = len(tgt)
	}
	if idx < 0 {
		idx = 0
	}
	b.queues[dst.CrewID] = spliceIn(tgt, idx, e)
	b.publish("move")
	return nil
}

// dropFromPool moves a pooled entry into a crew queue. Header drops append;
// row drops insert at the row's index. The custom start is cleared either
// way, so the entry is auto-timed in its new home.
func (b *Board) dropFromPool(poolIndex int, dst DropTarget) error {
	if poolIndex < 0 || poolIndex >= len(b.pool) {
		return fmt.Errorf("no pooled entry at %d", poolIndex)
	}
	e := b.pool[poolIndex]
	b.pool = append(b.pool[:poolIndex], b.pool[poolIndex+1:]...)
	e.CustomStart = ""

	tgt := b.queues[dst.CrewID]
	idx := dst.Index
	if dst.Header || idx > len(tgt) {
		idx = len(tgt)
	}
	if idx < 0 {
		idx = 0
	}
	b.queues[dst.CrewID] = spliceIn(tgt, idx, e)
	b.publish("assign_from_pool")
	return nil
}

func spliceIn(q []model.JobEntry, i int, e model.JobEntry) []model.JobEntry {
	q = append(q, model.JobEntry{})
	copy(q[i+1:], q[i:])
	q[i] = e
	return q
}
