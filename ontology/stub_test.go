package ontology

import (
	"context"
	"sync"
)

// stubTransport records every call so tests can assert on wire shapes and
// on whether the network was touched at all.
type stubTransport struct {
	mu sync.Mutex

	types      []TypeInfo
	properties map[string][]PropertyInfo
	rows       []Row

	fetchErr  error
	selectErr error
	createErr error
	updateErr error
	deleteErr error

	fetchTypesCalls int
	fetchPropsCalls int
	selectCalls     []SelectRequest
	createCalls     [][]ObjectMessage
	updateCalls     [][]ObjectMessage
	deleteCalls     [][]ObjectMessage
}

func (s *stubTransport) FetchObjectTypes(ctx context.Context, name string) ([]TypeInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetchTypesCalls++
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	if name == "" {
		return s.types, nil
	}
	var out []TypeInfo
	for _, info := range s.types {
		if info.Name == name {
			out = append(out, info)
		}
	}
	if out == nil {
		// Mimic the server returning loose candidates for a name filter
		out = s.types
	}
	return out, nil
}

func (s *stubTransport) FetchObjectTypeByID(ctx context.Context, id string) (TypeInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fetchErr != nil {
		return TypeInfo{}, s.fetchErr
	}
	for _, info := range s.types {
		if info.ID == id {
			return info, nil
		}
	}
	return TypeInfo{}, s.fetchErr
}

func (s *stubTransport) FetchObjectTypeProperties(ctx context.Context, id string) ([]PropertyInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetchPropsCalls++
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	return s.properties[id], nil
}

func (s *stubTransport) ExecuteSelect(ctx context.Context, req SelectRequest) ([]Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectCalls = append(s.selectCalls, req)
	if s.selectErr != nil {
		return nil, s.selectErr
	}
	rows := s.rows
	if req.Limit > 0 && len(rows) > req.Limit {
		rows = rows[:req.Limit]
	}
	return rows, nil
}

func (s *stubTransport) SubmitCreate(ctx context.Context, messages []ObjectMessage) (map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.createCalls = append(s.createCalls, messages)
	if s.createErr != nil {
		return nil, s.createErr
	}
	return map[string]any{"inserted": len(messages)}, nil
}

func (s *stubTransport) SubmitUpdate(ctx context.Context, messages []ObjectMessage) (map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updateCalls = append(s.updateCalls, messages)
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	return map[string]any{"updated": len(messages)}, nil
}

func (s *stubTransport) SubmitDelete(ctx context.Context, messages []ObjectMessage) (map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteCalls = append(s.deleteCalls, messages)
	if s.deleteErr != nil {
		return nil, s.deleteErr
	}
	return map[string]any{"deleted": len(messages)}, nil
}

func (s *stubTransport) selectCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.selectCalls)
}

func (s *stubTransport) lastSelect() SelectRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectCalls[len(s.selectCalls)-1]
}
