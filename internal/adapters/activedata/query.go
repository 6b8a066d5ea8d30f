package activedata

import (
	"encoding/json"

	"github.com/renato0307/covdir/internal/domain"
)

// changesetIDLength is how many characters of the revision the service indexes
const changesetIDLength = 12

// query is the JSON body posted to <endpoint>/query
type query struct {
	Format  string   `json:"format"`
	From    string   `json:"from"`
	GroupBy []string `json:"groupby,omitempty"`
	Limit   int      `json:"limit"`
	Where   where    `json:"where"`
}

type where struct {
	And []map[string]map[string]string `json:"and"`
}

// queryResponse is the envelope of a successful or failed query
type queryResponse struct {
	Cause    json.RawMessage         `json:"cause,omitempty"`
	Data     []domain.CoverageRecord `json:"data"`
	Template string                  `json:"template,omitempty"`
	Type     string                  `json:"type,omitempty"`
}

// failed reports whether the service answered with an error object
func (r queryResponse) failed() bool {
	return r.Type == "ERROR" || r.Template != ""
}

func (r queryResponse) errorMessage() string {
	if r.Template != "" {
		return r.Template
	}
	if len(r.Cause) > 0 {
		return string(r.Cause)
	}
	return "query failed"
}

// buildDirectoryQuery returns the query listing the entries directly under path
func buildDirectoryQuery(revision, path, repoSource string) query {
	changeset := revision
	if len(changeset) > changesetIDLength {
		changeset = changeset[:changesetIDLength]
	}

	return query{
		Format:  "list",
		From:    "coverage-summary",
		GroupBy: []string{"source.file.name"},
		Limit:   10000,
		Where: where{And: []map[string]map[string]string{
			{"eq": {"repo.branch.name": repoSource}},
			{"eq": {"repo.changeset.id12": changeset}},
			{"prefix": {"source.file.name": path}},
		}},
	}
}
