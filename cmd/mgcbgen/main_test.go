package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxelspace/mgcbgen/internal/config"
	"github.com/voxelspace/mgcbgen/internal/domain"
	"github.com/voxelspace/mgcbgen/internal/template"
	"github.com/voxelspace/mgcbgen/pkg/version"
)

func writeAssets(t *testing.T, root string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		full := filepath.Join(root, filepath.FromSlash(p))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte("asset"), 0644))
	}
}

func testConfig(t *testing.T, root, output string) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Content.Root = root
	cfg.Content.Manifest = output
	cfg.Traversal.Order = string(domain.OrderLexical)
	require.NoError(t, cfg.Validate())
	return cfg
}

func TestGenerate(t *testing.T) {
	root := t.TempDir() + "/"
	writeAssets(t, root, "textures/hero.png", "shaders/glow.fx", "readme.txt")

	t.Run("writes manifest", func(t *testing.T) {
		output := filepath.Join(t.TempDir(), "Content.mgcb")
		var stdout bytes.Buffer

		result, err := generate(context.Background(), testConfig(t, root, output), domain.CommonOptions{}, &stdout)
		require.NoError(t, err)

		data, err := os.ReadFile(output)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), template.Header))
		assert.Contains(t, string(data), "/build:textures/hero.png\n")
		assert.Contains(t, string(data), "/build:shaders/glow.fx\n")
		assert.NotContains(t, string(data), "readme.txt")
		assert.Equal(t, 2, result.Matched)
		assert.Empty(t, stdout.String())
	})

	t.Run("dry run prints to stdout", func(t *testing.T) {
		output := filepath.Join(t.TempDir(), "Content.mgcb")
		var stdout bytes.Buffer

		_, err := generate(context.Background(), testConfig(t, root, output), domain.CommonOptions{DryRun: true}, &stdout)
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(stdout.String(), template.Header))
		assert.Contains(t, stdout.String(), "#begin shaders/glow.fx\n")
		_, statErr := os.Stat(output)
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("with progress and atomic write", func(t *testing.T) {
		output := filepath.Join(t.TempDir(), "Content.mgcb")

		result, err := generate(context.Background(), testConfig(t, root, output), domain.CommonOptions{Progress: true, Atomic: true}, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Equal(t, 3, result.Scanned)
	})

	t.Run("missing root", func(t *testing.T) {
		output := filepath.Join(t.TempDir(), "Content.mgcb")
		cfg := testConfig(t, filepath.Join(t.TempDir(), "nope"), output)

		_, err := generate(context.Background(), cfg, domain.CommonOptions{}, &bytes.Buffer{})
		assert.ErrorIs(t, err, domain.ErrContentRootNotFound)
	})
}

func TestRootCmd_Execute(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	root := t.TempDir() + "/"
	output := filepath.Join(t.TempDir(), "Content.mgcb")
	writeAssets(t, root, "a.png")

	var stderr bytes.Buffer
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs([]string{root, output, "--order", "lexical"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), template.Header+"\n#begin a.png\n"))
	assert.Contains(t, stderr.String(), "Manifest written")
}

func TestTemplatesCmd(t *testing.T) {
	var out bytes.Buffer
	templatesCmd.SetOut(&out)
	templatesCmd.Run(templatesCmd, nil)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], ".fx")
	assert.Contains(t, lines[1], "EffectImporter")
	assert.Contains(t, lines[2], ".png")
	assert.Contains(t, lines[2], "TextureProcessor")
}

func TestTemplatesCmd_Source(t *testing.T) {
	var out bytes.Buffer
	templatesCmd.SetOut(&out)
	showSrc = true
	t.Cleanup(func() { showSrc = false })

	templatesCmd.Run(templatesCmd, nil)

	s := out.String()
	assert.Contains(t, s, "--- .png ---\n")
	assert.Contains(t, s, "--- .fx ---\n")
	assert.Equal(t, 2, strings.Count(s, "/build:{{{path}}}"))
}

func TestDescribeFailure(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		prefix string
	}{
		{"missing root", fmt.Errorf("%w: ./Content/", domain.ErrContentRootNotFound), "cannot scan content root: "},
		{"unreadable directory", domain.NewTraversalError("./Content/sub", os.ErrPermission), "cannot scan content root: "},
		{"write failure", domain.NewWriteError("Content.mgcb", "open", os.ErrPermission), "cannot write manifest: "},
		{"other", context.Canceled, "generate Content.mgcb: "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := describeFailure(fmt.Errorf("generate Content.mgcb: %w", tt.err))
			assert.ErrorIs(t, err, tt.err)
			assert.True(t, strings.HasPrefix(err.Error(), tt.prefix), err.Error())
		})
	}
}

func TestRootCmd_MissingRoot(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	missing := filepath.Join(t.TempDir(), "nope") + "/"
	output := filepath.Join(t.TempDir(), "Content.mgcb")

	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{missing, output})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrContentRootNotFound)
	assert.True(t, strings.HasPrefix(err.Error(), "cannot scan content root: "), err.Error())
}

func TestConfigFileStatus(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	file := filepath.Join(t.TempDir(), "mgcbgen.yaml")
	require.NoError(t, os.WriteFile(file, []byte("content:\n  root: ./Assets/\n"), 0644))

	assert.Equal(t, "OK ("+file+")", configFileStatus(file))

	none := configFileStatus("")
	assert.True(t, strings.HasPrefix(none, "none (using defaults; create ./mgcbgen.yaml or "))
	assert.Contains(t, none, config.ConfigFilePath())
	assert.Equal(t, none, configFileStatus(filepath.Join(t.TempDir(), "gone.yaml")))
}

func TestVersionCmd(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	versionCmd.Run(versionCmd, nil)

	assert.Equal(t, version.Full()+"\n", out.String())
}

func TestWriteConfig(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, writeConfig(&out, config.Default()))

	s := out.String()
	assert.Contains(t, s, "content:\n  root: ./Content/\n")
	assert.Contains(t, s, "path_mode: literal")
	assert.Contains(t, s, "order: filesystem")
}

func TestCheckContentRoot(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.png")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	assert.NoError(t, checkContentRoot(dir))
	assert.ErrorIs(t, checkContentRoot(file), domain.ErrContentRootNotDir)
	assert.ErrorIs(t, checkContentRoot(filepath.Join(dir, "missing")), domain.ErrContentRootNotFound)
}

func TestCheckWritePermissions(t *testing.T) {
	dir := t.TempDir()

	assert.True(t, checkWritePermissions(dir))
	assert.False(t, checkWritePermissions(filepath.Join(dir, "missing")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
