// internal/handlers/groups.go
package handlers

import (
	"encoding/json"
	"net/http"
	"sort"
)

type groupSummary struct {
	Name  string `json:"name"`
	Users int    `json:"users"`
	Owner string `json:"owner,omitempty"`
}

// ListGroupsHandler returns every active group with its member count and
// owner connection ID, sorted by name. Display-only.
func ListGroupsHandler(srv *GolfServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		snapshot := srv.Registry.Snapshot()
		summaries := make([]groupSummary, 0, len(snapshot))
		for name, g := range snapshot {
			summaries = append(summaries, groupSummary{
				Name:  name,
				Users: g.Len(),
				Owner: g.OwnerID(),
			})
		}
		sort.Slice(summaries, func(i, j int) bool {
			return summaries[i].Name < summaries[j].Name
		})

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(summaries)
	}
}
