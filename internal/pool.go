package internal

import (
	"bytes"
	"sync"
)

// BufferPool holds buffers used to format diagnostic reports.
var BufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer([]byte{})
	},
}

// FloatSlicePool holds scratch slices for step height candidates.
var FloatSlicePool = sync.Pool{
	New: func() interface{} {
		s := make([]float64, 0, 16)
		return &s
	},
}
