// Package validate checks generated dashboards and rules: every PromQL
// expression must parse and reference only known metrics.
package validate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/prometheus/prometheus/promql/parser"

	"github.com/donaldgifford/sorare-listing-bot/tools/dashgen/rules"
)

// histogramSuffixes are the series a histogram metric exposes.
var histogramSuffixes = []string{"_bucket", "_count", "_sum"}

// Result collects validation findings. Errors fail generation; warnings
// are informational.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether no errors were found.
func (r Result) Ok() bool {
	return len(r.Errors) == 0
}

func (r *Result) merge(o Result) {
	r.Errors = append(r.Errors, o.Errors...)
	r.Warnings = append(r.Warnings, o.Warnings...)
}

// Expr parses expr and checks every selected metric against known.
func Expr(where, expr string, known map[string]bool) Result {
	var res Result

	parsed, err := parser.ParseExpr(expr)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("%s: parsing %q: %v", where, expr, err))
		return res
	}

	parser.Inspect(parsed, func(node parser.Node, _ []parser.Node) error {
		vs, ok := node.(*parser.VectorSelector)
		if !ok || vs.Name == "" {
			return nil
		}
		if !isKnown(vs.Name, known) {
			res.Errors = append(res.Errors, fmt.Sprintf("%s: unknown metric %q", where, vs.Name))
		}
		return nil
	})

	return res
}

func isKnown(name string, known map[string]bool) bool {
	if known[name] {
		return true
	}
	for _, suffix := range histogramSuffixes {
		if base, ok := strings.CutSuffix(name, suffix); ok && known[base] {
			return true
		}
	}
	return false
}

// panelTargets is the subset of the dashboard JSON model inspected here.
type panelTargets struct {
	Title   string         `json:"title"`
	Type    string         `json:"type"`
	Panels  []panelTargets `json:"panels"`
	Targets []struct {
		Expr string `json:"expr"`
	} `json:"targets"`
}

// Dashboard validates every query target of dash.
func Dashboard(dash dashboard.Dashboard, known map[string]bool) Result {
	var res Result

	data, err := json.Marshal(dash)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("marshaling dashboard: %v", err))
		return res
	}

	var model struct {
		Panels []panelTargets `json:"panels"`
	}
	if err := json.Unmarshal(data, &model); err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("decoding dashboard: %v", err))
		return res
	}

	var walk func(ps []panelTargets)
	walk = func(ps []panelTargets) {
		for _, p := range ps {
			walk(p.Panels)
			if p.Type == "row" {
				continue
			}
			if len(p.Targets) == 0 {
				res.Warnings = append(res.Warnings, fmt.Sprintf("panel %q has no targets", p.Title))
			}
			for _, t := range p.Targets {
				res.merge(Expr("panel "+p.Title, t.Expr, known))
			}
		}
	}
	walk(model.Panels)

	return res
}

// Rules validates every expression of the rule CRs. Recorded series are
// added to known so alerts may reference them.
func Rules(known map[string]bool, crs ...rules.PrometheusRule) Result {
	var res Result

	all := make(map[string]bool, len(known))
	for k, v := range known {
		all[k] = v
	}
	for _, cr := range crs {
		for _, g := range cr.Spec.Groups {
			for _, r := range g.Rules {
				if r.Record != "" {
					all[r.Record] = true
				}
			}
		}
	}

	for _, cr := range crs {
		for _, g := range cr.Spec.Groups {
			for _, r := range g.Rules {
				name := r.Record
				if name == "" {
					name = r.Alert
				}
				if name == "" {
					res.Errors = append(res.Errors, fmt.Sprintf("group %s: rule without record or alert name", g.Name))
					continue
				}
				res.merge(Expr(cr.Metadata.Name+"/"+name, r.Expr, all))
			}
		}
	}

	return res
}
