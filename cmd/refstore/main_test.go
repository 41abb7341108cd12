package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/vango-dev/refstore/internal/errors"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	errors.DisableColors()

	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestValidateCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantErr  bool
		wantText string
	}{
		{"valid", []string{"--email=user@example.com", "--password=secret"}, false, "credentials are valid"},
		{"bad email", []string{"--email=user@", "--password=secret"}, true, "email is invalid"},
		{"missing both", nil, true, "password is a required field"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, err := execute(t, append([]string{"validate"}, tt.args...)...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("validate error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && errors.Code(err) != "E300" {
				t.Errorf("error code = %q, want E300", errors.Code(err))
			}
			if !strings.Contains(stdout+stderr+errString(err), tt.wantText) {
				t.Errorf("output missing %q\nstdout: %s\nstderr: %s", tt.wantText, stdout, stderr)
			}
		})
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func TestRenderCommand(t *testing.T) {
	stdout, _, err := execute(t, "render")
	if err != nil {
		t.Fatalf("render error = %v", err)
	}
	for _, want := range []string{"hello world", `id="login_form"`, "Theme: light"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("render output missing %q", want)
		}
	}

	stdout, _, err = execute(t, "render", "--page", "--title=Login")
	if err != nil {
		t.Fatalf("render --page error = %v", err)
	}
	if !strings.Contains(stdout, "<title>Login</title>") || !strings.Contains(stdout, "<!DOCTYPE html>") {
		t.Errorf("render --page output is not a document:\n%s", stdout)
	}
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := execute(t, "version", "--short")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if strings.TrimSpace(stdout) != version {
		t.Errorf("version --short = %q, want %q", stdout, version)
	}
}
