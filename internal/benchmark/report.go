// Package benchmark drives the compiled biomcp binary as a subprocess
// across a fixed command suite and compares the result against a
// persisted baseline (spec §4.5, grounded on original_source's
// src/cli/benchmark/run.rs).
package benchmark

// SchemaVersion is the benchmark report schema version, bumped whenever
// the report shape changes in a way old baselines can't be diffed against.
const SchemaVersion = 1

// SuiteVersion identifies the fixed case list below; bump it whenever
// cases are added, removed, or have their argument vectors changed.
const SuiteVersion = "2026-02-17"

// CaseKind distinguishes a case that should succeed from one that should
// fail fast with a documented contract violation.
type CaseKind string

const (
	CaseSuccess         CaseKind = "success"
	CaseContractFailure CaseKind = "contract_failure"
)

// CaseStatus is the outcome of running one case's iterations.
type CaseStatus string

const (
	StatusOK               CaseStatus = "ok"
	StatusFailed           CaseStatus = "failed"
	StatusTransientFailure CaseStatus = "transient_failure"
)

// Mode selects the full suite or the "core"/"contract_core"-tagged subset.
type Mode string

const (
	ModeFull  Mode = "full"
	ModeQuick Mode = "quick"
)

// CommandReport is the per-case metrics record.
type CommandReport struct {
	ID                 string     `json:"id"`
	Kind               CaseKind   `json:"kind"`
	Command            string     `json:"command"`
	Tags               []string   `json:"tags,omitempty"`
	Status             CaseStatus `json:"status"`
	Iterations         int        `json:"iterations"`
	ColdLatencyMs      *float64   `json:"cold_latency_ms,omitempty"`
	WarmLatencyMs      *float64   `json:"warm_latency_ms,omitempty"`
	MarkdownBytes      *uint64    `json:"markdown_bytes,omitempty"`
	JSONBytes          *uint64    `json:"json_bytes,omitempty"`
	FailFastLatencyMs  *float64   `json:"fail_fast_latency_ms,omitempty"`
	ExitCode           *int       `json:"exit_code,omitempty"`
	StderrExcerpt      *string    `json:"stderr_excerpt,omitempty"`
}

// Environment is the benchmark run's host environment snapshot.
type Environment struct {
	OS       string  `json:"os"`
	Arch     string  `json:"arch"`
	Hostname *string `json:"hostname,omitempty"`
}

// Summary is a roll-up of the per-case statuses and regressions.
type Summary struct {
	TotalCases        int `json:"total_cases"`
	OKCases           int `json:"ok_cases"`
	FailedCases       int `json:"failed_cases"`
	TransientFailures int `json:"transient_failures"`
	RegressionCount   int `json:"regression_count"`
}

// Regression is one detected metric regression against a baseline.
type Regression struct {
	CommandID     string   `json:"command_id"`
	Metric        string   `json:"metric"`
	BaselineValue string   `json:"baseline_value"`
	CurrentValue  string   `json:"current_value"`
	DeltaPct      *float64 `json:"delta_pct,omitempty"`
	Message       string   `json:"message"`
}

// TransientFailure is a case classified as a transient upstream failure
// rather than a regression.
type TransientFailure struct {
	CommandID string `json:"command_id"`
	Message   string `json:"message"`
}

// RunReport is the complete value record produced by one benchmark run
// (spec §4.5 "A run's report is a value record containing...").
type RunReport struct {
	SchemaVersion     int                `json:"schema_version"`
	SuiteVersion      string             `json:"suite_version"`
	SuiteHash         string             `json:"suite_hash"`
	CLIVersion        string             `json:"cli_version"`
	GeneratedAt       string             `json:"generated_at"`
	Environment       Environment        `json:"environment"`
	Mode              Mode               `json:"mode"`
	Iterations        int                `json:"iterations"`
	BaselinePath      *string            `json:"baseline_path,omitempty"`
	Commands          []CommandReport    `json:"commands"`
	Regressions       []Regression       `json:"regressions"`
	TransientFailures []TransientFailure `json:"transient_failures"`
	Summary           Summary            `json:"summary"`
}
