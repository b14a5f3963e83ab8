package api

type (
	// TaskRef is an immutable snapshot of a catalog task. The console only
	// reads these; the catalog is the source of truth
	TaskRef struct {
		ID     TaskID `json:"taskId"`
		Name   string `json:"taskName"`
		CrewID CrewID `json:"ownerCrewId"`
	}

	// CrewRef is an immutable snapshot of a catalog crew
	CrewRef struct {
		ID   CrewID `json:"crewId"`
		Name string `json:"crewName"`
	}

	// StartingPoint marks a catalog task as a candidate entry node for
	// flow execution. IsStartPoint is the only mutable field
	StartingPoint struct {
		CrewID       CrewID `json:"crewId"`
		TaskID       TaskID `json:"taskId"`
		TaskName     string `json:"taskName"`
		CrewName     string `json:"crewName"`
		IsStartPoint bool   `json:"isStartPoint"`
	}
)

// Clone returns a copy of the starting point
func (s *StartingPoint) Clone() *StartingPoint {
	res := *s
	return &res
}

// Equal compares two task references field by field
func (t *TaskRef) Equal(other *TaskRef) bool {
	if t == nil || other == nil {
		return t == other
	}
	return t.ID == other.ID &&
		t.Name == other.Name &&
		t.CrewID == other.CrewID
}

// Equal compares two starting points field by field
func (s *StartingPoint) Equal(other *StartingPoint) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.CrewID == other.CrewID &&
		s.TaskID == other.TaskID &&
		s.TaskName == other.TaskName &&
		s.CrewName == other.CrewName &&
		s.IsStartPoint == other.IsStartPoint
}
