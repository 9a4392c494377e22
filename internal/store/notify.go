package store

import "sync"

// Changes fans a "storage changed" signal out to subscribers.
// Signals are coalesced: a subscriber that has not consumed the previous
// signal sees one pending notification, never a backlog.
type Changes struct {
	mu   sync.Mutex
	next int
	subs map[int]chan struct{}
}

func NewChanges() *Changes {
	return &Changes{subs: make(map[int]chan struct{})}
}

// Subscribe returns a channel receiving change signals and a function that
// cancels the subscription and closes the channel.
func (c *Changes) Subscribe() (<-chan struct{}, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.next
	c.next++
	ch := make(chan struct{}, 1)
	c.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			delete(c.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

// Publish signals every subscriber without blocking.
func (c *Changes) Publish() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, ch := range c.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
