package popup

// Pool amortizes container allocation across repeated opens. Released
// containers are reset to their idle invariants (no content, input blocked)
// and handed back most-recently-released first.
//
// A pool is always an explicit instance owned by the caller; there is no
// process-wide pool. Pools are loop-confined like the containers they hold.
type Pool struct {
	idle    []*Container
	maxIdle int // 0 means unbounded
}

// NewPool creates an unbounded pool.
func NewPool() *Pool {
	return &Pool{}
}

// NewPoolCap creates a pool that keeps at most maxIdle idle containers;
// releases beyond the cap discard the container. maxIdle <= 0 means
// unbounded.
func NewPoolCap(maxIdle int) *Pool {
	return &Pool{maxIdle: maxIdle}
}

// Acquire returns the most recently released idle container, or a new one
// when the pool is empty.
func (p *Pool) Acquire() *Container {
	if n := len(p.idle); n > 0 {
		c := p.idle[n-1]
		p.idle[n-1] = nil
		p.idle = p.idle[:n-1]
		return c
	}
	return NewContainer()
}

// Release resets c to the idle invariants and returns it to the pool.
func (p *Pool) Release(c *Container) {
	if c == nil {
		return
	}
	c.reset()
	if p.maxIdle > 0 && len(p.idle) >= p.maxIdle {
		return
	}
	p.idle = append(p.idle, c)
}

// IdleCount returns the number of pooled containers.
func (p *Pool) IdleCount() int {
	return len(p.idle)
}
