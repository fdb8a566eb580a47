// Package memory configures Go's soft memory limit in containers.
//
// Unlike GOMAXPROCS, which Go derives from cgroup CPU limits, GOMEMLIMIT is
// never set automatically. Decoding large photos can push the heap close to
// a container's limit, so the limit is derived from the container memory
// limit (usually passed through the Kubernetes Downward API):
//
//	env:
//	- name: MEMORY_LIMIT
//	  valueFrom:
//	    resourceFieldRef:
//	      resource: limits.memory
//	- name: MEMORY_RATIO
//	  value: "0.75"
//
// MEMORY_RATIO is the share given to the Go heap; the remainder stays
// available to libvips (CGO allocations) and the ffmpeg and exiftool
// subprocesses. An explicit GOMEMLIMIT always takes precedence.
package memory
