package execution

import "github.com/dukex/planeditor/pkg/models"

// Annotate returns copies of nodes with their execution state, tokens and cached result
// filled in. The input nodes are left untouched, so annotations never reach undo history.
func (s *Store) Annotate(nodes []*models.Node) []*models.Node {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Node, 0, len(nodes))

	for _, node := range nodes {
		annotated := node.Clone()
		annotated.Data.ExecutionState = ""
		annotated.Data.Tokens = nil
		annotated.Data.Result = s.results[node.ID].Clone()

		tokens := s.stepTokens(node.ID)
		if len(tokens) > 0 {
			annotated.Data.ExecutionState = tokens[0].Status
			annotated.Data.Tokens = make([]*models.Token, 0, len(tokens))

			for _, token := range tokens {
				annotated.Data.Tokens = append(annotated.Data.Tokens, token.Clone())
			}
		}

		out = append(out, annotated)
	}

	return out
}
