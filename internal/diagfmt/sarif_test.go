package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/Aern-do/unnamedc/internal/diag"
	"github.com/Aern-do/unnamedc/internal/source"
)

func TestSarifStructure(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/proj")
	id := fs.Add("/proj/src/a.un", []byte("let s = \"x\\q\";\n@"), 0)

	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.LexInvalidEscape, id, source.NewSpan(11, 12), "invalid escape sequence"))
	bag.Add(diag.NewError(diag.LexInvalidToken, id, source.NewSpan(15, 16), "invalid token").
		WithNote(source.NewSpan(15, 16), "remove this character"))
	bag.Add(diag.NewError(diag.LexInvalidToken, id, source.NewSpan(15, 16), "invalid token"))

	var buf bytes.Buffer
	meta := SarifRunMeta{ToolName: "unnamedc", ToolVersion: "1.2.3", InvocationArgs: []string{"tokenize", "src"}}
	if err := Sarif(&buf, bag, fs, meta); err != nil {
		t.Fatalf("Sarif() error: %v", err)
	}

	var log sarifLog
	if err := json.Unmarshal(buf.Bytes(), &log); err != nil {
		t.Fatalf("invalid SARIF: %v\n%s", err, buf.String())
	}
	if log.Version != "2.1.0" || len(log.Runs) != 1 {
		t.Fatalf("unexpected envelope: version=%s runs=%d", log.Version, len(log.Runs))
	}

	run := log.Runs[0]
	if run.Tool.Driver.Name != "unnamedc" || run.Tool.Driver.Version != "1.2.3" {
		t.Errorf("unexpected driver %+v", run.Tool.Driver)
	}
	// правила уникальны и отсортированы по коду
	rules := run.Tool.Driver.Rules
	if len(rules) != 2 || rules[0].ID != "LEX1001" || rules[1].ID != "LEX1004" {
		t.Errorf("unexpected rules %+v", rules)
	}
	if len(run.Invocations) != 1 || run.Invocations[0].ExecutionSuccessful {
		t.Errorf("run with errors must not be successful: %+v", run.Invocations)
	}
	if len(run.Results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(run.Results))
	}

	first := run.Results[0]
	if first.RuleID != "LEX1004" || first.Level != "error" {
		t.Errorf("unexpected result %+v", first)
	}
	loc := first.Locations[0].PhysicalLocation
	if loc.ArtifactLocation.URI != "src/a.un" {
		t.Errorf("unexpected uri %q", loc.ArtifactLocation.URI)
	}
	if loc.Region.StartLine != 1 || loc.Region.StartColumn != 12 || loc.Region.ByteOffset != 11 || loc.Region.ByteLength != 1 {
		t.Errorf("unexpected region %+v", loc.Region)
	}

	second := run.Results[1]
	if len(second.RelatedLocations) != 1 || second.RelatedLocations[0].Message.Text != "remove this character" {
		t.Errorf("notes must become related locations: %+v", second.RelatedLocations)
	}
	if second.Locations[0].PhysicalLocation.Region.StartLine != 2 {
		t.Errorf("expected line 2, got %+v", second.Locations[0].PhysicalLocation.Region)
	}
}

func TestSarifSuccessfulRun(t *testing.T) {
	var buf bytes.Buffer
	if err := Sarif(&buf, diag.NewBag(1), source.NewFileSet(), SarifRunMeta{}); err != nil {
		t.Fatalf("Sarif() error: %v", err)
	}
	var log sarifLog
	if err := json.Unmarshal(buf.Bytes(), &log); err != nil {
		t.Fatalf("invalid SARIF: %v", err)
	}
	run := log.Runs[0]
	if run.Tool.Driver.Name != "unnamedc" {
		t.Errorf("default tool name expected, got %q", run.Tool.Driver.Name)
	}
	if !run.Invocations[0].ExecutionSuccessful || len(run.Results) != 0 {
		t.Errorf("empty run must succeed with no results: %+v", run)
	}
}
