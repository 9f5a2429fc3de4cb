package main

import (
	"bytes"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseCommand(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	cfg := "log_file: /var/log/chia/debug.log\nhandlers:\n  wallet_add_coin_handler:\n    min_mojos_amount: 1000000000000\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"parse", "--config", cfgPath, filepath.Join("..", "..", "internal", "parser", "testdata", "wallet_add_coin_nominal.txt")})
	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"[USER/LOW/WALLET] Just received 2 XCH 💰",
		"[USER/LOW/WALLET] Just sent 0.3 XCH 💸",
		"Hi! 👋 Here's what happened in the last 24 hours:",
		"Received 💰: 2 XCH",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output misses %q:\n%s", want, got)
		}
	}
}

func TestParseCommand_StatsDisabled(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("log_file: /x.log\ndaily_stats:\n  enable: false\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	logPath := filepath.Join(dir, "debug.log")
	if err := os.WriteFile(logPath, []byte("nothing interesting\n"), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"parse", "-c", cfgPath, logPath})
	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("expected no output, got %q", out.String())
	}
}

func TestRunCommand_InvalidConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("daily_stats:\n  frequency_hours: -1\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"run", "--config", cfgPath})
	if err := root.Execute(); err == nil || !strings.Contains(err.Error(), "frequency_hours") {
		t.Errorf("expected a validation error, got %v", err)
	}
}

func TestConstructorsAreDocumented(t *testing.T) {
	root := filepath.Join("..", "..", "internal")
	fset := token.NewFileSet()
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return err
		}
		file, err := parser.ParseFile(fset, path, nil, parser.ParseComments)
		if err != nil {
			return err
		}
		for _, decl := range file.Decls {
			fn, ok := decl.(*ast.FuncDecl)
			if !ok || !fn.Name.IsExported() || fn.Doc != nil {
				continue
			}
			name := fn.Name.Name
			if (fn.Recv == nil && strings.HasPrefix(name, "New")) || (strings.HasPrefix(name, "Consume") && strings.HasSuffix(name, "Messages")) {
				t.Errorf("%s: %s has no doc comment", fset.Position(fn.Pos()), name)
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk sources: %v", err)
	}
}
