package graph

import (
	"fmt"

	"github.com/crewflow/console/pkg/api"
	"github.com/crewflow/console/pkg/util"
)

// SyncStartingPoints inserts a starting point for every catalog task not
// already present, flagged inactive. The merge is additive and
// idempotent: existing entries are never removed and their flags are
// never overwritten, so re-issuing after a catalog reload is safe
func (s *Session) SyncStartingPoints() {
	known := util.Set[api.TaskID]{}
	for _, sp := range s.startPoints {
		known.Add(sp.TaskID)
	}

	for _, task := range s.res.Tasks() {
		if known.Contains(task.ID) {
			continue
		}
		sp := &api.StartingPoint{
			CrewID:   task.CrewID,
			TaskID:   task.ID,
			TaskName: task.Name,
		}
		if crew, ok := s.res.ResolveCrew(task.CrewID); ok {
			sp.CrewName = crew.Name
		}
		s.startPoints = append(s.startPoints, sp)
		known.Add(task.ID)
	}
}

// ToggleStartingPoint flips the entry-point flag for a task. An unknown
// task ID is reported but leaves the set untouched
func (s *Session) ToggleStartingPoint(taskID api.TaskID) error {
	for _, sp := range s.startPoints {
		if sp.TaskID == taskID {
			sp.IsStartPoint = !sp.IsStartPoint
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrStartingPointNotFound, taskID)
}

// ActiveStartingPoints returns the tasks flagged as flow entry points,
// which is exactly the set that is persisted
func (s *Session) ActiveStartingPoints() []*api.StartingPoint {
	var res []*api.StartingPoint
	for _, sp := range s.startPoints {
		if sp.IsStartPoint {
			res = append(res, s.refreshStartingPoint(sp))
		}
	}
	return res
}

// StartingPoints returns the full set, active and inactive, for editing
func (s *Session) StartingPoints() []*api.StartingPoint {
	res := make([]*api.StartingPoint, len(s.startPoints))
	for i, sp := range s.startPoints {
		res[i] = s.refreshStartingPoint(sp)
	}
	return res
}

// refreshStartingPoint re-derives display names from the catalog on read
func (s *Session) refreshStartingPoint(
	sp *api.StartingPoint,
) *api.StartingPoint {
	c := sp.Clone()
	if task, ok := s.res.ResolveTask(sp.TaskID); ok {
		c.TaskName = task.Name
		c.CrewID = task.CrewID
	}
	if crew, ok := s.res.ResolveCrew(c.CrewID); ok {
		c.CrewName = crew.Name
	}
	return c
}
