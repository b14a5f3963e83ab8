package api

type (
	// FlowSummary provides list-level information about a stored flow
	FlowSummary struct {
		ID                 FlowID `json:"id"`
		Name               string `json:"name"`
		ListenerCount      int    `json:"listenerCount"`
		ActionCount        int    `json:"actionCount"`
		StartingPointCount int    `json:"startingPointCount"`
	}

	// FlowsListResponse contains a list of flow summaries
	FlowsListResponse struct {
		Flows []*FlowSummary `json:"flows"`
		Count int            `json:"count"`
	}

	// CrewsListResponse contains the crews known to the catalog
	CrewsListResponse struct {
		Crews []*CrewRef `json:"crews"`
		Count int        `json:"count"`
	}

	// TasksListResponse contains the tasks of a single crew
	TasksListResponse struct {
		Tasks []*TaskRef `json:"tasks"`
		Count int        `json:"count"`
	}

	// CreateSessionRequest opens an editing session, either over an
	// existing stored flow or a fresh one with the given name
	CreateSessionRequest struct {
		FlowID FlowID `json:"flow_id,omitempty"`
		Name   string `json:"name,omitempty"`
		CrewID CrewID `json:"crew_id,omitempty"`
	}

	// SessionResponse returns a session identifier along with the current
	// snapshot of the flow being edited
	SessionResponse struct {
		Flow      *FlowConfiguration `json:"flow"`
		SessionID string             `json:"session_id"`
		Issues    ValidationIssues   `json:"issues,omitempty"`
	}

	// SaveFlowResponse is returned when a session save succeeds. Warnings
	// carry non-blocking reference issues found during validation
	SaveFlowResponse struct {
		Flow     *FlowConfiguration `json:"flow"`
		Warnings ValidationIssues   `json:"warnings,omitempty"`
	}

	// ValidateFlowResponse reports save-time validation without saving
	ValidateFlowResponse struct {
		Issues ValidationIssues `json:"issues"`
		Valid  bool             `json:"valid"`
	}

	// AddListenerRequest creates a listener owned by the given crew
	AddListenerRequest struct {
		CrewID CrewID `json:"crew_id,omitempty"`
	}

	// RenameRequest carries a new name for a listener or flow
	RenameRequest struct {
		Name string `json:"name"`
	}

	// TaskIDsRequest carries a replacement task ID list
	TaskIDsRequest struct {
		TaskIDs []TaskID `json:"task_ids"`
	}

	// ConditionRequest carries a condition type change
	ConditionRequest struct {
		Type ConditionType `json:"type"`
	}

	// RouteConditionRequest carries a route condition expression
	RouteConditionRequest struct {
		Condition string `json:"condition"`
	}

	// QueryFlowsRequest filters stored flows by a JSON path match against
	// the serialized document
	QueryFlowsRequest struct {
		Path  string `json:"path"`
		Value string `json:"value"`
	}

	// ExportResponse reports where an export snapshot was written
	ExportResponse struct {
		Key string `json:"key"`
	}

	// HealthResponse provides service health information
	HealthResponse struct {
		Service string `json:"service"`
		Version string `json:"version"`
		Status  string `json:"status"`
	}

	// MessageResponse contains a simple message string
	MessageResponse struct {
		Message string `json:"message"`
	}

	// ErrorResponse contains error details for failed requests
	ErrorResponse struct {
		Error  string `json:"error"`
		Status int    `json:"status,omitempty"`
	}
)

// Summarize builds the list-level summary for a flow document
func (f *FlowConfiguration) Summarize() *FlowSummary {
	return &FlowSummary{
		ID:                 f.ID,
		Name:               f.Name,
		ListenerCount:      len(f.Listeners),
		ActionCount:        len(f.Actions),
		StartingPointCount: len(f.StartingPoints),
	}
}
