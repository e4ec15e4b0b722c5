package search

import (
	"math"
	"sync"

	"github.com/panjf2000/ants/v2"
)

// taskGroup submits tasks to a worker pool and waits for all of them. A
// failed submission runs the task inline so no work is lost.
type taskGroup struct {
	pool *ants.Pool
	wg   sync.WaitGroup
}

func newTaskGroup(pool *ants.Pool) *taskGroup {
	return &taskGroup{pool: pool}
}

func (g *taskGroup) run(task func()) {
	g.wg.Add(1)
	wrapped := func() {
		defer g.wg.Done()
		task()
	}
	if g.pool == nil {
		wrapped()
		return
	}
	if err := g.pool.Submit(wrapped); err != nil {
		wrapped()
	}
}

func (g *taskGroup) wait() {
	g.wg.Wait()
}

// logRatio is ln(total/part).
func logRatio(total, part int) float64 {
	return math.Log(float64(total) / float64(part))
}
