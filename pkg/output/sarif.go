package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/suzuki-shunsuke/refurb/pkg/diag"
	"github.com/suzuki-shunsuke/refurb/pkg/sarif"
)

const ruleEngineError = "engine-error"

func writeSARIF(w io.Writer, items []diag.Item, opts *Options) error {
	log := sarif.Log{
		Schema:  sarif.Schema,
		Version: sarif.Version,
		Runs: []sarif.Run{
			{
				Tool: sarif.Tool{
					Driver: sarif.Driver{
						Name:           "refurb",
						InformationURI: "https://github.com/suzuki-shunsuke/refurb",
						Version:        opts.Version,
						Rules:          buildRules(opts),
					},
				},
				Results: buildResults(items),
			},
		},
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(log); err != nil {
		return fmt.Errorf("encode SARIF: %w", err)
	}
	return nil
}

func buildRules(opts *Options) []sarif.Rule {
	rules := make([]sarif.Rule, 0, len(opts.Checks)+1)
	for _, c := range opts.Checks {
		m := c.Meta()
		rule := sarif.Rule{
			ID:               m.ErrorCode().String(),
			Name:             m.Name,
			ShortDescription: sarif.Message{Text: m.Message},
		}
		if m.Doc != "" {
			rule.FullDescription = &sarif.Message{Text: m.Doc}
		}
		if len(m.Categories) != 0 {
			rule.Properties = &sarif.Properties{Tags: m.Categories}
		}
		rules = append(rules, rule)
	}
	return append(rules, sarif.Rule{
		ID: ruleEngineError,
		ShortDescription: sarif.Message{
			Text: "The engine failed to build the syntax tree",
		},
	})
}

func buildResults(items []diag.Item) []sarif.Result {
	results := make([]sarif.Result, 0, len(items))
	for _, item := range items {
		d, ok := item.(*diag.Diagnostic)
		if !ok {
			results = append(results, sarif.Result{
				RuleID:  ruleEngineError,
				Level:   "error",
				Message: sarif.Message{Text: item.String()},
			})
			continue
		}
		result := sarif.Result{
			RuleID:  d.ErrorCode().String(),
			Level:   "warning",
			Message: sarif.Message{Text: d.Message},
		}
		if d.Filename != "" {
			result.Locations = []sarif.Location{
				{
					PhysicalLocation: sarif.PhysicalLocation{
						ArtifactLocation: sarif.ArtifactLocation{
							URI: d.Filename,
						},
						Region: sarif.Region{
							StartLine:   d.Line,
							StartColumn: d.Column,
						},
					},
				},
			}
		}
		results = append(results, result)
	}
	return results
}
