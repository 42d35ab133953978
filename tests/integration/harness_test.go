package integration

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sdejongh/gengold/pkg/compare"
	"github.com/sdejongh/gengold/pkg/harness"
	"github.com/sdejongh/gengold/pkg/models"
	"github.com/sdejongh/gengold/pkg/report"
)

// TestMain lets the test binary double as a fake generator when the
// harness under test re-executes it
func TestMain(m *testing.M) {
	if os.Getenv("GENGOLD_FAKE_GENERATOR") == "1" {
		runFakeGenerator()
		return
	}
	os.Exit(m.Run())
}

// runFakeGenerator emulates the generator CLI: it writes a small
// output tree under the --output_dir flag and exits
func runFakeGenerator() {
	if os.Getenv("GENGOLD_FAKE_GENERATOR_FAIL") == "1" {
		fmt.Fprintln(os.Stderr, "fake generator: simulated failure")
		os.Exit(3)
	}

	var outputDir string
	for _, arg := range os.Args[1:] {
		if strings.HasPrefix(arg, "--output_dir=") {
			outputDir = strings.TrimPrefix(arg, "--output_dir=")
		}
	}
	if outputDir == "" {
		fmt.Fprintln(os.Stderr, "fake generator: no --output_dir flag")
		os.Exit(2)
	}

	files := map[string]string{
		"service.go":       "package service\n",
		"client/client.go": "package client\n",
		"api.proto":        "syntax = \"proto3\";\n",
	}
	for name, content := range files {
		path := filepath.Join(outputDir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			fmt.Fprintln(os.Stderr, "fake generator:", err)
			os.Exit(2)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			fmt.Fprintln(os.Stderr, "fake generator:", err)
			os.Exit(2)
		}
	}
	os.Exit(0)
}

// TestHelper provides utilities for integration tests
type TestHelper struct {
	t           *testing.T
	tempDir     string
	outputDir   string
	baselineDir string
}

// NewTestHelper creates a new integration test helper
func NewTestHelper(t *testing.T) *TestHelper {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "gengold-integration-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	outputDir := filepath.Join(tempDir, "output")
	baselineDir := filepath.Join(tempDir, "baseline")

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		t.Fatalf("failed to create output dir: %v", err)
	}
	if err := os.MkdirAll(baselineDir, 0755); err != nil {
		t.Fatalf("failed to create baseline dir: %v", err)
	}

	return &TestHelper{
		t:           t,
		tempDir:     tempDir,
		outputDir:   outputDir,
		baselineDir: baselineDir,
	}
}

// Cleanup removes all temporary files
func (h *TestHelper) Cleanup() {
	os.RemoveAll(h.tempDir)
}

// CreateOutputFile creates a file in the output directory
func (h *TestHelper) CreateOutputFile(name, content string) {
	h.t.Helper()
	path := filepath.Join(h.outputDir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		h.t.Fatalf("failed to create parent dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		h.t.Fatalf("failed to create output file: %v", err)
	}
}

// CreateBaselineFile creates a baseline expectation for the given
// generated path
func (h *TestHelper) CreateBaselineFile(name, content string) {
	h.t.Helper()
	path := filepath.Join(h.baselineDir, name+".baseline")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		h.t.Fatalf("failed to create parent dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		h.t.Fatalf("failed to create baseline file: %v", err)
	}
}

// NewHarness creates a harness with the default comparator and suffix
func (h *TestHelper) NewHarness() *harness.Harness {
	comparator := compare.NewBaselineComparator(compare.NewVolatileSet(nil))
	return harness.New(comparator, ".baseline")
}

// VerifyFixture builds a comparison-only fixture over the helper trees
func (h *TestHelper) VerifyFixture() *models.Fixture {
	return &models.Fixture{
		ID:          "integration-verify",
		OutputDir:   h.outputDir,
		BaselineDir: h.baselineDir,
	}
}

// CheckFixture builds a full-run fixture using the test binary as
// the generator
func (h *TestHelper) CheckFixture() *models.Fixture {
	return &models.Fixture{
		ID:          "integration-check",
		Generator:   os.Args[0],
		ProtoFiles:  []string{"api.proto"},
		OutputDir:   h.outputDir,
		BaselineDir: h.baselineDir,
	}
}

func TestVerify_AllMatched(t *testing.T) {
	helper := NewTestHelper(t)
	defer helper.Cleanup()

	helper.CreateOutputFile("service.go", "package service\n")
	helper.CreateOutputFile("client/client.go", "package client\n")
	helper.CreateBaselineFile("service.go", "package service\n")
	helper.CreateBaselineFile("client/client.go", "package client\n")

	rep, err := helper.NewHarness().Verify(context.Background(), helper.VerifyFixture())
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}

	if rep.Status != models.StatusPass {
		t.Errorf("Status = %s, want pass; warnings: %v", rep.Status, rep.Verdict.Warnings)
	}
	if rep.Verdict.FilesCompared != 2 {
		t.Errorf("FilesCompared = %d, want 2", rep.Verdict.FilesCompared)
	}
	if rep.Verdict.FilesMatched != 2 {
		t.Errorf("FilesMatched = %d, want 2", rep.Verdict.FilesMatched)
	}
}

func TestVerify_ContentMismatch(t *testing.T) {
	helper := NewTestHelper(t)
	defer helper.Cleanup()

	helper.CreateOutputFile("service.go", "package service\n\nvar V = 2\n")
	helper.CreateBaselineFile("service.go", "package service\n\nvar V = 1\n")

	rep, err := helper.NewHarness().Verify(context.Background(), helper.VerifyFixture())
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}

	if rep.Status != models.StatusFail {
		t.Errorf("Status = %s, want fail", rep.Status)
	}
	if rep.Verdict.FilesMismatched != 1 {
		t.Errorf("FilesMismatched = %d, want 1", rep.Verdict.FilesMismatched)
	}

	// The mismatched file is reported both directly and as a leftover
	// baseline entry
	if rep.Verdict.FilesUnmatched != 1 {
		t.Errorf("FilesUnmatched = %d, want 1", rep.Verdict.FilesUnmatched)
	}

	found := false
	for _, warning := range rep.Verdict.Warnings {
		if strings.Contains(warning.Message, "line 3 differs") {
			found = true
		}
	}
	if !found {
		t.Errorf("missing line diff warning, got: %v", rep.Verdict.Warnings)
	}
}

func TestVerify_MissingBaseline(t *testing.T) {
	helper := NewTestHelper(t)
	defer helper.Cleanup()

	helper.CreateOutputFile("service.go", "package service\n")
	helper.CreateOutputFile("extra.go", "package service\n")
	helper.CreateBaselineFile("service.go", "package service\n")

	rep, err := helper.NewHarness().Verify(context.Background(), helper.VerifyFixture())
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}

	if rep.Status != models.StatusFail {
		t.Errorf("Status = %s, want fail", rep.Status)
	}
	if rep.Verdict.FilesMissing != 1 {
		t.Errorf("FilesMissing = %d, want 1", rep.Verdict.FilesMissing)
	}
}

func TestVerify_NeverGeneratedBaseline(t *testing.T) {
	helper := NewTestHelper(t)
	defer helper.Cleanup()

	helper.CreateOutputFile("service.go", "package service\n")
	helper.CreateBaselineFile("service.go", "package service\n")
	helper.CreateBaselineFile("client/client.go", "package client\n")

	rep, err := helper.NewHarness().Verify(context.Background(), helper.VerifyFixture())
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}

	if rep.Status != models.StatusFail {
		t.Errorf("Status = %s, want fail", rep.Status)
	}
	if len(rep.Verdict.Unmatched) != 1 || rep.Verdict.Unmatched[0] != "client/client.go" {
		t.Errorf("Unmatched = %v, want [client/client.go]", rep.Verdict.Unmatched)
	}
}

func TestVerify_VolatileFileExempt(t *testing.T) {
	helper := NewTestHelper(t)
	defer helper.Cleanup()

	helper.CreateOutputFile("api.proto", "syntax = \"proto3\"; // regenerated\n")
	helper.CreateBaselineFile("api.proto", "syntax = \"proto3\";\n")

	rep, err := helper.NewHarness().Verify(context.Background(), helper.VerifyFixture())
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}

	if rep.Status != models.StatusPass {
		t.Errorf("volatile file should not fail the run: %s, warnings: %v", rep.Status, rep.Verdict.Warnings)
	}
}

func TestVerify_ExcludePatterns(t *testing.T) {
	helper := NewTestHelper(t)
	defer helper.Cleanup()

	helper.CreateOutputFile("service.go", "package service\n")
	helper.CreateOutputFile("build.log", "noise\n")
	helper.CreateBaselineFile("service.go", "package service\n")

	fixture := helper.VerifyFixture()
	fixture.ExcludePatterns = []string{"*.log"}

	rep, err := helper.NewHarness().Verify(context.Background(), fixture)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}

	if rep.Status != models.StatusPass {
		t.Errorf("excluded file should not fail the run: %s, warnings: %v", rep.Status, rep.Verdict.Warnings)
	}
	if rep.Verdict.FilesCompared != 1 {
		t.Errorf("FilesCompared = %d, want 1", rep.Verdict.FilesCompared)
	}
}

func TestCheck_EndToEnd(t *testing.T) {
	t.Setenv("GENGOLD_FAKE_GENERATOR", "1")

	helper := NewTestHelper(t)
	defer helper.Cleanup()

	helper.CreateBaselineFile("service.go", "package service\n")
	helper.CreateBaselineFile("client/client.go", "package client\n")
	helper.CreateBaselineFile("api.proto", "stale proto baseline\n")

	rep, err := helper.NewHarness().Check(context.Background(), helper.CheckFixture())
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}

	if rep.Status != models.StatusPass {
		t.Errorf("Status = %s, want pass; warnings: %v", rep.Status, rep.Verdict.Warnings)
	}
	if rep.Verdict.FilesCompared != 3 {
		t.Errorf("FilesCompared = %d, want 3", rep.Verdict.FilesCompared)
	}
}

func TestCheck_ClearsStaleOutput(t *testing.T) {
	t.Setenv("GENGOLD_FAKE_GENERATOR", "1")

	helper := NewTestHelper(t)
	defer helper.Cleanup()

	helper.CreateOutputFile("stale.go", "package stale\n")
	helper.CreateBaselineFile("service.go", "package service\n")
	helper.CreateBaselineFile("client/client.go", "package client\n")
	helper.CreateBaselineFile("api.proto", "syntax = \"proto3\";\n")

	rep, err := helper.NewHarness().Check(context.Background(), helper.CheckFixture())
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}

	if rep.Status != models.StatusPass {
		t.Errorf("stale output should be cleared before the run: %s, warnings: %v", rep.Status, rep.Verdict.Warnings)
	}
	if _, err := os.Stat(filepath.Join(helper.outputDir, "stale.go")); !os.IsNotExist(err) {
		t.Error("stale.go should have been removed")
	}
}

func TestCheck_GeneratorFailure(t *testing.T) {
	t.Setenv("GENGOLD_FAKE_GENERATOR", "1")
	t.Setenv("GENGOLD_FAKE_GENERATOR_FAIL", "1")

	helper := NewTestHelper(t)
	defer helper.Cleanup()

	rep, err := helper.NewHarness().Check(context.Background(), helper.CheckFixture())
	if err == nil {
		t.Fatal("Check should fail when the generator exits non-zero")
	}

	if rep == nil {
		t.Fatal("report should be non-nil even on error")
	}
	if rep.Status != models.StatusError {
		t.Errorf("Status = %s, want error", rep.Status)
	}
	if !strings.Contains(rep.GeneratorOutput, "simulated failure") {
		t.Errorf("generator stderr not captured: %q", rep.GeneratorOutput)
	}
}

func TestCheck_ReportFormats(t *testing.T) {
	t.Setenv("GENGOLD_FAKE_GENERATOR", "1")

	helper := NewTestHelper(t)
	defer helper.Cleanup()

	helper.CreateBaselineFile("service.go", "package service\n")
	helper.CreateBaselineFile("client/client.go", "package client\n")
	helper.CreateBaselineFile("api.proto", "syntax = \"proto3\";\n")

	rep, err := helper.NewHarness().Check(context.Background(), helper.CheckFixture())
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}

	var human bytes.Buffer
	if err := report.WriteReport(&human, rep, "human"); err != nil {
		t.Fatalf("human report failed: %v", err)
	}
	if !strings.Contains(human.String(), "Status: pass") {
		t.Errorf("human report missing status: %q", human.String())
	}

	var jsonOut bytes.Buffer
	if err := report.WriteReport(&jsonOut, rep, "json"); err != nil {
		t.Fatalf("json report failed: %v", err)
	}
	if !strings.Contains(jsonOut.String(), `"pass": true`) {
		t.Errorf("json report missing verdict: %q", jsonOut.String())
	}
}
