package graphio

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/graphio/graphio-go/errors"
)

// Hop bounds accepted by the knowledge graph endpoints
const (
	MinHop = 0
	MaxHop = 10
)

// GraphResult is a traversal payload, returned exactly as the server sent
// it. Typical keys are "nodes" and "edges".
type GraphResult map[string]any

type graphListRequest struct {
	ElementIDList    []string `json:"elementIdList,omitempty"`
	ObjectTypeIDList []string `json:"objectTypeIdList,omitempty"`
	LinkTypeIDList   []string `json:"linkTypeIdList,omitempty"`
}

// KnowledgeGraph exposes the graph traversal endpoints of the ontology
// service. It is a thin pass-through; traversal itself runs server-side.
type KnowledgeGraph struct {
	client *Client
}

func validateHop(hop int) error {
	if hop < MinHop || hop > MaxHop {
		return errors.NewInvalidRequestError("hop must be between 0 and 10, got " + strconv.Itoa(hop))
	}
	return nil
}

// GraphByObjectTypeID traverses the graph outward from every object of the
// given type id, following links up to hop steps away
func (kg *KnowledgeGraph) GraphByObjectTypeID(ctx context.Context, objectTypeID string, hop int) (GraphResult, error) {
	if objectTypeID == "" {
		return nil, errors.NewInvalidRequestError("object type id is empty")
	}
	if err := validateHop(hop); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("object_type_id", objectTypeID)
	params.Set("hop", strconv.Itoa(hop))

	data, err := kg.client.getData(ctx, "/ontology/object-type", params, "knowledge graph by object type id")
	if err != nil {
		return nil, err
	}
	return decodeGraphResult(data, "knowledge graph by object type id")
}

// GraphByObjectTypeName resolves the name to a type id first, then
// traverses. Name resolution uses the same exact-name tiebreak as the
// ontology namespace.
func (kg *KnowledgeGraph) GraphByObjectTypeName(ctx context.Context, name string, hop int) (GraphResult, error) {
	if name == "" {
		return nil, errors.NewInvalidRequestError("object type name is empty")
	}
	if err := validateHop(hop); err != nil {
		return nil, err
	}

	handle, err := kg.client.Ontology.LoadObjectTypeByName(ctx, name)
	if err != nil {
		return nil, errors.Wrapf(err, "knowledge graph: resolve %q", name)
	}
	return kg.GraphByObjectTypeID(ctx, handle.ID(), hop)
}

// GraphByObjectAndLinkTypes fetches the subgraph spanned by explicit
// element, object type and link type id lists. At least one list must be
// non-empty.
func (kg *KnowledgeGraph) GraphByObjectAndLinkTypes(ctx context.Context, objectTypeIDs, linkTypeIDs, elementIDs []string) (GraphResult, error) {
	if len(objectTypeIDs) == 0 && len(linkTypeIDs) == 0 && len(elementIDs) == 0 {
		return nil, errors.NewInvalidRequestError("element list request is empty")
	}

	req := graphListRequest{
		ElementIDList:    elementIDs,
		ObjectTypeIDList: objectTypeIDs,
		LinkTypeIDList:   linkTypeIDs,
	}
	data, err := kg.client.postData(ctx, "/ontology/list", req, "knowledge graph by element list")
	if err != nil {
		return nil, err
	}
	return decodeGraphResult(data, "knowledge graph by element list")
}

func decodeGraphResult(data json.RawMessage, operation string) (GraphResult, error) {
	if len(data) == 0 {
		return GraphResult{}, nil
	}
	var result GraphResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, errors.Wrapf(err, "%s: decode data", operation)
	}
	return result, nil
}
