//go:build !gesturetrace

package gesture

const traceEnabled = false
