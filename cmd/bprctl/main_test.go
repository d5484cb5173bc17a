package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bpr-hq/bpr-dashboard/internal/core/domain"
)

func newTestCmd() (*cobra.Command, *bytes.Buffer) {
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	return cmd, &out
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const departmentYAML = `department: sales
targets:
  - title: New customers
    target: 100
    achieved: 80
  - title: Upsells
    target: 300
    achieved: 60
power_moves:
  - name: Discovery calls
    frequency: weekly
    target_per_cycle: 4
    progress: 3
`

func TestRunToken(t *testing.T) {
	tokenUser, tokenSecret, tokenIssuer, tokenTTL = "user-1", "s3cret", "bpr-test", time.Hour
	t.Cleanup(func() { tokenUser, tokenSecret, tokenIssuer, tokenTTL = "", "", "", 24*time.Hour })

	cmd, out := newTestCmd()
	require.NoError(t, runToken(cmd, nil))

	raw := bytes.TrimSpace(out.Bytes())
	parsed, err := jwt.Parse(string(raw), func(*jwt.Token) (interface{}, error) {
		return []byte("s3cret"), nil
	}, jwt.WithIssuer("bpr-test"))
	require.NoError(t, err)

	sub, err := parsed.Claims.GetSubject()
	require.NoError(t, err)
	assert.Equal(t, "user-1", sub)
}

func TestRunToken_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	tokenUser, tokenSecret, tokenTTL = "user-1", "", time.Hour
	t.Cleanup(func() { tokenUser, tokenTTL = "", 24*time.Hour })

	cmd, _ := newTestCmd()
	err := runToken(cmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestRunScore_Text(t *testing.T) {
	scoreScoringFile, scoreJSON = "", false
	path := writeFile(t, "sales.yaml", departmentYAML)

	cmd, out := newTestCmd()
	require.NoError(t, runScore(cmd, []string{path}))

	text := out.String()
	assert.Contains(t, text, "Average: 50% (Caution, yellow)")
	assert.Contains(t, text, "On track: 1 of 2 targets")
	assert.Contains(t, text, "Power moves: 75% across 1")
	assert.Contains(t, text, "Upsells")
}

func TestRunScore_JSONWithWeighting(t *testing.T) {
	scoreScoringFile = writeFile(t, "scoring.yaml", "weighting: target\n")
	scoreJSON = true
	t.Cleanup(func() { scoreScoringFile, scoreJSON = "", false })

	path := writeFile(t, "sales.yaml", departmentYAML)
	cmd, out := newTestCmd()
	require.NoError(t, runScore(cmd, []string{path}))

	var score domain.DepartmentScore
	require.NoError(t, json.Unmarshal(out.Bytes(), &score))
	assert.Equal(t, "sales", score.Department)
	// (80*100 + 20*300) / 400
	assert.Equal(t, 35, score.AverageScore)
	assert.Equal(t, domain.StatusBehind, score.Status)
	assert.Equal(t, 2, score.TotalTargets)
}

func TestRunScore_Errors(t *testing.T) {
	scoreScoringFile, scoreJSON = "", false
	cmd, _ := newTestCmd()

	err := runScore(cmd, []string{filepath.Join(t.TempDir(), "missing.yaml")})
	assert.ErrorContains(t, err, "read")

	bad := writeFile(t, "bad.yaml", "targets: [oops")
	err = runScore(cmd, []string{bad})
	assert.ErrorContains(t, err, "parse")

	scoreScoringFile = writeFile(t, "scoring.yaml", "weighting: median\n")
	t.Cleanup(func() { scoreScoringFile = "" })
	err = runScore(cmd, []string{writeFile(t, "ok.yaml", departmentYAML)})
	assert.ErrorContains(t, err, "weighting")
}

func TestPeriodCommands(t *testing.T) {
	t.Cleanup(func() { periodDate, periodShift = "", 0 })

	tests := []struct {
		name  string
		run   func(*cobra.Command, []string) error
		args  []string
		date  string
		shift int
		want  string
	}{
		{"quarter", runQuarter, nil, "2026-05-17", 0, "Q2 2026: 2026-04-01 .. 2026-07-01\n"},
		{"week from sunday", runWeek, nil, "2026-05-17", 0, "2026-05-11\n"},
		{"this week", runPeriod, []string{"this-week"}, "2026-05-17", 0, "this-week: 2026-05-11 .. 2026-05-18\n"},
		{"last month", runPeriod, []string{"last-month"}, "2026-05-17", 0, "last-month: 2026-04-01 .. 2026-05-01\n"},
		{"this month shifted back", runPeriod, []string{"this-month"}, "2026-05-17", -2, "this-month: 2026-03-01 .. 2026-04-01\n"},
		{"quarter period", runPeriod, []string{"this-quarter"}, "2026-11-02", 0, "this-quarter: 2026-10-01 .. 2027-01-01\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			periodDate, periodShift = tt.date, tt.shift
			cmd, out := newTestCmd()
			require.NoError(t, tt.run(cmd, tt.args))
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestPeriodCommands_Errors(t *testing.T) {
	t.Cleanup(func() { periodDate = "" })
	cmd, _ := newTestCmd()

	periodDate = "17/05/2026"
	assert.ErrorContains(t, runWeek(cmd, nil), "YYYY-MM-DD")

	periodDate = "2026-05-17"
	assert.ErrorIs(t, runPeriod(cmd, []string{"fortnight"}), domain.ErrInvalidPeriod)
}

func TestRootCommandTree(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"token", "score", "quarter", "week", "period"} {
		assert.True(t, names[want], want)
	}
}
