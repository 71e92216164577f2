package line

import (
	"strings"
	"sync"
)

// fakeConn is a Connection that records output and lets a test push input
// and signals at it.
type fakeConn struct {
	mu sync.Mutex

	out    []rune
	size   Size
	input  func([]rune)
	resize func(Size)
	signal func(Signal)

	rawErr   error
	raw      int
	restored int
	closed   bool
}

func newFakeConn() *fakeConn {
	return &fakeConn{size: Size{Width: 80, Height: 24}}
}

func (c *fakeConn) Write(out []rune) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.out = append(c.out, out...)
}

func (c *fakeConn) Size() Size {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size
}

func (c *fakeConn) SetInputHandler(h func([]rune)) func([]rune) {
	c.mu.Lock()
	defer c.mu.Unlock()
	prev := c.input
	c.input = h
	return prev
}

func (c *fakeConn) SetSizeHandler(h func(Size)) func(Size) {
	c.mu.Lock()
	defer c.mu.Unlock()
	prev := c.resize
	c.resize = h
	return prev
}

func (c *fakeConn) SetSignalHandler(h func(Signal)) func(Signal) {
	c.mu.Lock()
	defer c.mu.Unlock()
	prev := c.signal
	c.signal = h
	return prev
}

func (c *fakeConn) EnterRawMode() (func() error, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.rawErr != nil {
		return nil, c.rawErr
	}
	c.raw++
	return func() error {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.restored++
		return nil
	}, nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

// send delivers s as one chunk of input.
func (c *fakeConn) send(s string) {
	c.mu.Lock()
	h := c.input
	c.mu.Unlock()
	if h != nil {
		h([]rune(s))
	}
}

// keys delivers each key as its own chunk, as a person typing would.
func (c *fakeConn) keys(ks ...Key) {
	for _, k := range ks {
		c.send(string(k))
	}
}

func (c *fakeConn) raise(s Signal) {
	c.mu.Lock()
	h := c.signal
	c.mu.Unlock()
	if h != nil {
		h(s)
	}
}

func (c *fakeConn) setSize(s Size) {
	c.mu.Lock()
	c.size = s
	h := c.resize
	c.mu.Unlock()
	if h != nil {
		h(s)
	}
}

func (c *fakeConn) output() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return string(c.out)
}

func (c *fakeConn) clearOutput() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.out = nil
}

func (c *fakeConn) contains(s string) bool {
	return strings.Contains(c.output(), s)
}

// results collects what reads deliver.
type results struct {
	lines []string
	errs  []error
}

func (r *results) done(line string, err error) {
	r.lines = append(r.lines, line)
	r.errs = append(r.errs, err)
}

func (r *results) count() int {
	return len(r.lines)
}
