package store

import (
	"context"
	"encoding/json"

	"github.com/tidwall/gjson"

	"github.com/crewflow/console/pkg/api"
)

// QueryFlows returns summaries of the stored flows whose serialized
// document matches the request's JSON path and value. Paths use gjson
// syntax, so "listeners.#.name" matches against every listener name
func QueryFlows(
	ctx context.Context, s Store, req *api.QueryFlowsRequest,
) ([]*api.FlowSummary, error) {
	summaries, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	var res []*api.FlowSummary
	for _, summary := range summaries {
		doc, err := s.Get(ctx, summary.ID)
		if err != nil {
			return nil, err
		}
		ok, err := MatchFlow(doc, req.Path, req.Value)
		if err != nil {
			return nil, err
		}
		if ok {
			res = append(res, summary)
		}
	}
	return res, nil
}

// MatchFlow reports whether the serialized form of a flow document
// matches value at the given JSON path. Array results match when any
// element matches
func MatchFlow(
	doc *api.FlowConfiguration, path, value string,
) (bool, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return false, err
	}

	result := gjson.GetBytes(data, path)
	if !result.Exists() {
		return false, nil
	}
	if result.IsArray() {
		for _, item := range result.Array() {
			if item.String() == value {
				return true, nil
			}
		}
		return false, nil
	}
	return result.String() == value, nil
}
