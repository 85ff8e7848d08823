package meshtopo

import (
	"errors"
	"fmt"

	"github.com/gogpu/meshtopo/internal/parallel"
)

// Job is one independent unit of mesh work, such as tracing one set of
// polylines or cutting one mesh. Jobs in a batch must not share a mesh.
type Job func() (*Mesh, error)

// Batch runs independent jobs on a worker pool sized by WithWorkers and
// returns their meshes in job order. A failed job leaves a nil entry; the
// returned error joins every job error, each prefixed with its index.
func Batch(jobs []Job, opts ...Option) ([]*Mesh, error) {
	o := buildOptions(opts)
	meshes := make([]*Mesh, len(jobs))
	errs := make([]error, len(jobs))

	pool := parallel.NewWorkerPool(min(o.workers, max(len(jobs), 1)))
	defer pool.Close()

	work := make([]func(), len(jobs))
	for i, job := range jobs {
		work[i] = func() {
			m, err := job()
			if err != nil {
				errs[i] = fmt.Errorf("job %d: %w", i, err)
				return
			}
			meshes[i] = m
		}
	}
	pool.ExecuteAll(work)
	return meshes, errors.Join(errs...)
}

// TraceAll traces every edge set independently and in parallel. Each set
// gets its own key index and halfedge tables.
func TraceAll(edgeSets [][]Polyline, opts ...Option) ([]*Mesh, error) {
	jobs := make([]Job, len(edgeSets))
	for i, edges := range edgeSets {
		jobs[i] = func() (*Mesh, error) {
			m, _, err := TraceFaces(edges, opts...)
			return m, err
		}
	}
	return Batch(jobs, opts...)
}
