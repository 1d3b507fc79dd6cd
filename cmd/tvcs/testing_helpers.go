package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/utkarsh5026/tvcs/pkg/repository/scpath"
	"github.com/utkarsh5026/tvcs/pkg/repository/sourcerepo"
)

// TestHelper provides utilities for CLI command testing
type TestHelper struct {
	t       *testing.T
	tempDir string
	repo    *sourcerepo.SourceRepository
}

// NewTestHelper creates a new test helper with automatic cleanup
func NewTestHelper(t *testing.T) *TestHelper {
	t.Helper()

	tempDir := t.TempDir()

	return &TestHelper{
		t:       t,
		tempDir: tempDir,
	}
}

// InitRepo initializes a test repository
func (th *TestHelper) InitRepo() *sourcerepo.SourceRepository {
	th.t.Helper()

	repoPath, err := scpath.NewRepositoryPath(th.tempDir)
	if err != nil {
		th.t.Fatalf("failed to create repo path: %v", err)
	}

	repo, err := sourcerepo.Initialize(repoPath)
	if err != nil {
		th.t.Fatalf("failed to initialize repo: %v", err)
	}

	th.repo = repo
	return repo
}

// TempDir returns the temporary directory path
func (th *TestHelper) TempDir() string {
	return th.tempDir
}

// WriteFile creates a test file with content
func (th *TestHelper) WriteFile(name, content string) string {
	th.t.Helper()

	filePath := filepath.Join(th.tempDir, name)

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		th.t.Fatalf("failed to create directory %s: %v", dir, err)
	}

	if err := os.WriteFile(filePath, []byte(content), 0644); err != nil {
		th.t.Fatalf("failed to write file %s: %v", filePath, err)
	}

	return filePath
}

// Run executes the root command with -C pointing at the test directory and
// returns what it wrote to stdout.
func (th *TestHelper) Run(args ...string) (string, error) {
	th.t.Helper()
	return th.RunWithInput(nil, args...)
}

// RunWithInput is Run with stdin attached.
func (th *TestHelper) RunWithInput(stdin io.Reader, args ...string) (string, error) {
	th.t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if stdin != nil {
		cmd.SetIn(stdin)
	}
	cmd.SetArgs(append([]string{"-C", th.tempDir}, args...))

	err := cmd.Execute()
	return stdout.String(), err
}

// Repo returns the initialized repository (must call InitRepo first)
func (th *TestHelper) Repo() *sourcerepo.SourceRepository {
	if th.repo == nil {
		th.t.Fatal("repository not initialized, call InitRepo() first")
	}
	return th.repo
}
