package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// runSurveyForTest wires stdin/stdout buffers onto the survey command and
// runs it. Flags left empty fall back to the prompt answers in stdin.
func runSurveyForTest(t *testing.T, stdin string) (string, error) {
	t.Helper()
	var out strings.Builder
	surveyCmd.SetIn(strings.NewReader(stdin))
	surveyCmd.SetOut(&out)
	surveyCmd.SetErr(&out)
	t.Cleanup(func() {
		surveyCmd.SetIn(nil)
		surveyCmd.SetOut(nil)
		surveyCmd.SetErr(nil)
	})
	err := runSurvey(surveyCmd, nil)
	return out.String(), err
}

func assertEmptyReport(t *testing.T, reportPath, out string) {
	t.Helper()
	data, err := os.ReadFile(reportPath)
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	report := string(data)
	if !strings.Contains(report, "No open access papers were found for this query.") {
		t.Error("empty-run notice missing from report")
	}
	if !strings.Contains(report, "SUMMARY: 0 accepted of 0 attempted") {
		t.Error("summary line missing from report")
	}
	if strings.Contains(report, "PAPER #") {
		t.Error("empty report contains paper blocks")
	}
	// The search stage must never start for a zero-count run.
	if strings.Contains(out, "Searching for:") {
		t.Error("zero-count run reached the search stage")
	}
}

func TestSurveyPromptedZeroCount(t *testing.T) {
	// All three prompts only fire when their flags were not set explicitly.
	surveyCmd.Flags().Set("topic", "")
	surveyCmd.Flags().Set("output", "")
	countFlag := surveyCmd.Flags().Lookup("count")
	countFlag.Value.Set(countFlag.DefValue)
	countFlag.Changed = false

	reportPath := filepath.Join(t.TempDir(), "report.txt")
	stdin := "quantum sensing\n0\n" + reportPath + "\n"

	out, err := runSurveyForTest(t, stdin)
	if err != nil {
		t.Fatalf("runSurvey: %v", err)
	}
	assertEmptyReport(t, reportPath, out)
}

func TestSurveyExplicitZeroCount(t *testing.T) {
	reportPath := filepath.Join(t.TempDir(), "report.txt")
	flags := surveyCmd.Flags()
	for name, value := range map[string]string{
		"topic":  "quantum sensing",
		"count":  "0",
		"output": reportPath,
	} {
		if err := flags.Set(name, value); err != nil {
			t.Fatal(err)
		}
	}
	t.Cleanup(func() {
		flags.Set("topic", "")
		flags.Set("output", "")
		countFlag := flags.Lookup("count")
		countFlag.Value.Set(countFlag.DefValue)
		countFlag.Changed = false
	})

	out, err := runSurveyForTest(t, "")
	if err != nil {
		t.Fatalf("runSurvey: %v", err)
	}
	assertEmptyReport(t, reportPath, out)
}
