/*
Package workers sizes the optional parallel thumbnail pass.

# Overview

In containers the number of usable CPUs may be limited by cgroup
constraints. Go 1.19+ sets GOMAXPROCS from the container CPU limit while
runtime.NumCPU() still reports the host, so worker counts here are derived
from GOMAXPROCS:

	// Returns 2 on a 64-core node when the pod is limited to 2 CPUs
	n := workers.ForCPU(workers.MaxWorkers)

# Resolving the --workers flag

The CLI value (or THUMBNAIL_WORKERS) is passed through Resolve:

	workers.Resolve(1)  // 1, sequential (default)
	workers.Resolve(6)  // 6
	workers.Resolve(0)  // one per CPU, at most MaxWorkers
	workers.Resolve(-1) // 1

Automatic sizing is capped at MaxWorkers because every worker may hold a
decoded full-size image, and libvips is started with a concurrency level of
one per operation.
*/
package workers
