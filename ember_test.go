package ember_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ember2d/ember"
)

func writeGame(t *testing.T, source string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "main.lua"), []byte(source), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestRun_SuccessfulGame(t *testing.T) {
	dir := writeGame(t, `
		local ember = require("ember")
		return function()
			ember.quit(0)
		end
	`)

	if code := ember.Run([]string{"ember", dir}); code != 0 {
		t.Errorf("Run = %d, want 0", code)
	}
}

func TestRun_GameFailure(t *testing.T) {
	dir := writeGame(t, `
		local ember = require("ember")
		return function()
			ember.quit(3)
		end
	`)

	if code := ember.Run([]string{"ember", dir}); code != 1 {
		t.Errorf("Run = %d, want 1", code)
	}
}

func TestRun_MissingGame(t *testing.T) {
	dir := t.TempDir()

	if code := ember.Run([]string{"ember", filepath.Join(dir, "nope")}); code != 1 {
		t.Errorf("Run = %d, want 1", code)
	}
}

func TestRun_RestartLoop(t *testing.T) {
	// First segment requests a restart carrying a value; the second sees
	// it and quits cleanly. A bug in restart handling either loops
	// forever or exits nonzero.
	dir := writeGame(t, `
		local ember = require("ember")
		return function()
			if ember.restart == nil then
				ember.quit("restart", {generation = 1})
			elseif ember.restart.generation == 1 then
				ember.quit(0)
			else
				ember.quit(1)
			end
		end
	`)

	if code := ember.Run([]string{"ember", dir}); code != 0 {
		t.Errorf("Run = %d, want 0", code)
	}
}

func TestRun_VersionFlag(t *testing.T) {
	var out bytes.Buffer

	code := ember.Run([]string{"ember", "--version"}, ember.WithStdout(&out))
	if code != 0 {
		t.Fatalf("Run = %d, want 0", code)
	}
	if !strings.Contains(out.String(), ember.Version) {
		t.Errorf("version output %q does not contain %q", out.String(), ember.Version)
	}
}
