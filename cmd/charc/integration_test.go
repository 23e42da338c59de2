package main

import (
	"errors"
	"os"
	"slices"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

// IntegrationTestSpec is one end-to-end charc case.
type IntegrationTestSpec struct {
	Name        string   `yaml:"name"`
	Input       string   `yaml:"input"`
	Args        []string `yaml:"args"`
	Expect      []string `yaml:"expect"`
	ExpectOrder []string `yaml:"expect_order"`
	ExpectNot   []string `yaml:"expect_not"`
	ExpectErr   []string `yaml:"expect_err"`
	Fail        bool     `yaml:"fail"`
	Skip        string   `yaml:"skip"`
}

// IntegrationTestFile is the layout of testdata/integration.yaml.
type IntegrationTestFile struct {
	Tests []IntegrationTestSpec `yaml:"tests"`
}

func loadIntegrationTests(t *testing.T) []IntegrationTestSpec {
	t.Helper()
	data, err := os.ReadFile("../../testdata/integration.yaml")
	if err != nil {
		t.Fatalf("failed to read integration.yaml: %v", err)
	}
	var file IntegrationTestFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		t.Fatalf("failed to parse integration.yaml: %v", err)
	}
	if len(file.Tests) == 0 {
		t.Fatal("integration.yaml has no tests")
	}
	return file.Tests
}

// normalizeOutput trims trailing blanks from each line.
func normalizeOutput(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

func TestIntegration(t *testing.T) {
	for _, tc := range loadIntegrationTests(t) {
		t.Run(tc.Name, func(t *testing.T) {
			if tc.Skip != "" {
				t.Skip(tc.Skip)
			}
			isolate(t)
			testFile := writeSource(t, tc.Input)

			out, errOut, err := execute(t, append(slices.Clone(tc.Args), testFile)...)
			if tc.Fail {
				if !errors.Is(err, ErrParseFailed) {
					t.Fatalf("expected ErrParseFailed, got %v", err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v\nstderr:\n%s", err, errOut)
			}

			out = normalizeOutput(out)
			for _, want := range tc.Expect {
				if !strings.Contains(out, want) {
					t.Errorf("stdout missing %q:\n%s", want, out)
				}
			}
			rest := out
			for _, want := range tc.ExpectOrder {
				i := strings.Index(rest, want)
				if i < 0 {
					t.Errorf("stdout missing %q (in order):\n%s", want, out)
					break
				}
				rest = rest[i+len(want):]
			}
			for _, unwanted := range tc.ExpectNot {
				if strings.Contains(out, unwanted) {
					t.Errorf("stdout should not contain %q:\n%s", unwanted, out)
				}
			}
			for _, want := range tc.ExpectErr {
				if !strings.Contains(errOut, want) {
					t.Errorf("stderr missing %q:\n%s", want, errOut)
				}
			}
		})
	}
}

// TestIntegrationDParseIsStable feeds the -dparse output back into charc
// and checks the second print matches the first.
func TestIntegrationDParseIsStable(t *testing.T) {
	for _, tc := range loadIntegrationTests(t) {
		if tc.Fail || tc.Skip != "" || !slices.Contains(tc.Args, "--dparse") {
			continue
		}
		t.Run(tc.Name, func(t *testing.T) {
			isolate(t)
			first, _, err := execute(t, "--dparse", writeSource(t, tc.Input))
			if err != nil {
				t.Fatalf("first pass: %v", err)
			}
			resetFlags()
			second, _, err := execute(t, "--dparse", writeSource(t, first))
			if err != nil {
				t.Fatalf("second pass: %v\ninput:\n%s", err, first)
			}
			if first != second {
				t.Errorf("output changed on reparse:\nfirst:\n%s\nsecond:\n%s", first, second)
			}
		})
	}
}
