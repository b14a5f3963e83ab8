package catalog

import (
	"context"
	"log/slog"
	"sync"

	"github.com/crewflow/console/pkg/api"
	"github.com/crewflow/console/pkg/log"
)

// Index is the flattened crew/task reference lookup derived from the
// catalog. It is loaded once per editing session, shared read-only, and
// never mutated by the flow model
type Index struct {
	tasks     map[api.TaskID]*api.TaskRef
	crews     map[api.CrewID]*api.CrewRef
	taskOrder []api.TaskID
	crewOrder []api.CrewID
}

var _ api.TaskResolver = (*Index)(nil)

// NewIndex creates an empty reference index
func NewIndex() *Index {
	return &Index{
		tasks: map[api.TaskID]*api.TaskRef{},
		crews: map[api.CrewID]*api.CrewRef{},
	}
}

// Load builds a reference index from the catalog. Crew task fetches fan
// out concurrently but merge in crew order, so first occurrence wins
// deterministically when the same task ID is delivered twice. A per-crew
// fetch failure is logged and skipped; the index is best-effort
func Load(ctx context.Context, p Provider) (*Index, error) {
	crews, err := p.ListCrews(ctx)
	if err != nil {
		return nil, err
	}

	type fetch struct {
		tasks []*api.TaskRef
		err   error
	}

	fetches := make([]fetch, len(crews))
	var wg sync.WaitGroup
	for i, crew := range crews {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tasks, err := p.ListTasksForCrew(ctx, crew.ID)
			fetches[i] = fetch{tasks: tasks, err: err}
		}()
	}
	wg.Wait()

	idx := NewIndex()
	for i, crew := range crews {
		idx.addCrew(crew)
		if fetches[i].err != nil {
			slog.Warn("Skipping crew after task fetch failure",
				log.CrewID(crew.ID),
				log.Error(fetches[i].err))
			continue
		}
		for _, task := range fetches[i].tasks {
			idx.addTask(task)
		}
	}
	return idx, nil
}

// addCrew merges a crew reference; an already-indexed ID is preserved
func (idx *Index) addCrew(crew *api.CrewRef) {
	if _, ok := idx.crews[crew.ID]; ok {
		return
	}
	idx.crews[crew.ID] = crew
	idx.crewOrder = append(idx.crewOrder, crew.ID)
}

// addTask merges a task reference, deduplicating by task ID. Later
// deliveries of the same ID never overwrite the established name and
// crew association
func (idx *Index) addTask(task *api.TaskRef) {
	if _, ok := idx.tasks[task.ID]; ok {
		return
	}
	idx.tasks[task.ID] = task
	idx.taskOrder = append(idx.taskOrder, task.ID)
}

// ResolveTask returns the task reference for an ID, if indexed
func (idx *Index) ResolveTask(id api.TaskID) (*api.TaskRef, bool) {
	task, ok := idx.tasks[id]
	return task, ok
}

// ResolveCrew returns the crew reference for an ID, if indexed
func (idx *Index) ResolveCrew(id api.CrewID) (*api.CrewRef, bool) {
	crew, ok := idx.crews[id]
	return crew, ok
}

// Tasks returns all indexed tasks in merge order
func (idx *Index) Tasks() []*api.TaskRef {
	res := make([]*api.TaskRef, len(idx.taskOrder))
	for i, id := range idx.taskOrder {
		res[i] = idx.tasks[id]
	}
	return res
}

// Crews returns all indexed crews in merge order
func (idx *Index) Crews() []*api.CrewRef {
	res := make([]*api.CrewRef, len(idx.crewOrder))
	for i, id := range idx.crewOrder {
		res[i] = idx.crews[id]
	}
	return res
}

// TaskCount returns the number of indexed tasks
func (idx *Index) TaskCount() int {
	return len(idx.tasks)
}
