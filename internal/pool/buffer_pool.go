package pool

import (
	"bytes"
	"sync"
)

const (
	// ReportBufferDefaultSize is the initial capacity of pooled report buffers.
	ReportBufferDefaultSize = 4 * 1024 // 4KiB
	// ReportBufferMaxThreshold is the largest buffer kept for reuse.
	ReportBufferMaxThreshold = 1024 * 1024 // 1MiB
)

// BufferPool is a pool of bytes.Buffer values.
//
// Buffers whose capacity grew beyond maxThreshold are dropped on Put so a single
// large plot does not pin memory forever.
type BufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewBufferPool creates a pool whose buffers start with defaultSize capacity.
func NewBufferPool(defaultSize, maxThreshold int) *BufferPool {
	return &BufferPool{
		pool: sync.Pool{
			New: func() any {
				return bytes.NewBuffer(make([]byte, 0, defaultSize))
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves an empty buffer.
func (p *BufferPool) Get() *bytes.Buffer {
	buf, _ := p.pool.Get().(*bytes.Buffer)
	buf.Reset()

	return buf
}

// Put returns buf to the pool.
func (p *BufferPool) Put(buf *bytes.Buffer) {
	if buf == nil {
		return
	}
	if p.maxThreshold > 0 && buf.Cap() > p.maxThreshold {
		return
	}

	buf.Reset()
	p.pool.Put(buf)
}

var reportPool = NewBufferPool(ReportBufferDefaultSize, ReportBufferMaxThreshold)

// GetReportBuffer retrieves a buffer from the default report pool.
func GetReportBuffer() *bytes.Buffer {
	return reportPool.Get()
}

// PutReportBuffer returns a buffer to the default report pool.
func PutReportBuffer(buf *bytes.Buffer) {
	reportPool.Put(buf)
}
