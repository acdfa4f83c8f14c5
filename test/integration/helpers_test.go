//go:build integration

package integration_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// setupTestEnv isolates config and returns a directory for generated mods.
func setupTestEnv(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	t.Setenv("FABRICGEN_HOME", t.TempDir())
	t.Setenv("FABRICGEN_TEMPLATE_REPO", "")
	return t.TempDir()
}

// templateRepo is a local stand-in for the Fabric example mod repository.
type templateRepo struct {
	Dir         string
	FirstCommit string
}

// setupTemplateRepo creates a git repository shaped like the example mod:
// master carries a 1.16 layout over two commits, and the 1.19 branch adds a
// client entrypoint with its own mixins file.
func setupTemplateRepo(t *testing.T) *templateRepo {
	t.Helper()
	dir := t.TempDir()
	repo := &templateRepo{Dir: dir}

	git(t, dir, "init", "-q")
	git(t, dir, "checkout", "-q", "-b", "master")
	writeFile(t, filepath.Join(dir, "gradle.properties"), gradleProperties("1.16.5"))
	writeFile(t, filepath.Join(dir, "src/main/java/net/fabricmc/example/ExampleMod.java"), exampleModJava)
	writeFile(t, filepath.Join(dir, "src/main/java/net/fabricmc/example/mixin/ExampleMixin.java"), exampleMixinJava)
	writeFile(t, filepath.Join(dir, "src/main/resources/fabric.mod.json"), fabricModJSON116)
	writeFile(t, filepath.Join(dir, "src/main/resources/modid.mixins.json"), mixinsJSON("ExampleMixin"))
	writeFile(t, filepath.Join(dir, "src/main/resources/assets/modid/icon.png"), "png")
	git(t, dir, "add", ".")
	git(t, dir, "commit", "-q", "-m", "initial")
	repo.FirstCommit = strings.TrimSpace(gitOutput(t, dir, "rev-parse", "HEAD"))

	writeFile(t, filepath.Join(dir, "README.md"), "# Fabric Example Mod\n")
	git(t, dir, "add", ".")
	git(t, dir, "commit", "-q", "-m", "readme")

	git(t, dir, "checkout", "-q", "-b", "1.19")
	writeFile(t, filepath.Join(dir, "gradle.properties"), gradleProperties("1.19"))
	writeFile(t, filepath.Join(dir, "src/main/java/net/fabricmc/example/ExampleClient.java"), exampleClientJava)
	writeFile(t, filepath.Join(dir, "src/main/java/net/fabricmc/example/mixin/client/ExampleClientMixin.java"), exampleClientMixinJava)
	writeFile(t, filepath.Join(dir, "src/main/resources/fabric.mod.json"), fabricModJSON119)
	writeFile(t, filepath.Join(dir, "src/main/resources/modid.client.mixins.json"), clientMixinsJSON)
	git(t, dir, "add", ".")
	git(t, dir, "commit", "-q", "-m", "1.19")
	git(t, dir, "checkout", "-q", "master")

	return repo
}

func gradleProperties(mc string) string {
	return "org.gradle.jvmargs=-Xmx1G\n" +
		"minecraft_version=" + mc + "\n" +
		"mod_version=1.0.0\n" +
		"maven_group=com.example\n" +
		"archives_base_name=fabric-example-mod\n"
}

const exampleModJava = `package net.fabricmc.example;

import net.fabricmc.api.ModInitializer;

public class ExampleMod implements ModInitializer {
	public static final String MOD_ID = "modid";

	@Override
	public void onInitialize() {
		System.out.println("Hello Fabric world!");
	}
}
`

const exampleMixinJava = `package net.fabricmc.example.mixin;

import net.fabricmc.example.ExampleMod;

public class ExampleMixin {
}
`

const exampleClientJava = `package net.fabricmc.example;

import net.fabricmc.api.ClientModInitializer;

public class ExampleClient implements ClientModInitializer {
	@Override
	public void onInitializeClient() {
		ExampleMod.class.getName();
	}
}
`

const exampleClientMixinJava = `package net.fabricmc.example.mixin.client;

public class ExampleClientMixin {
}
`

const fabricModJSON116 = `{
  "schemaVersion": 1,
  "id": "modid",
  "version": "${version}",
  "name": "Example Mod",
  "description": "This is an example description! Tell everyone what your mod is about!",
  "authors": ["Me!"],
  "icon": "assets/modid/icon.png",
  "entrypoints": {
    "main": ["net.fabricmc.example.ExampleMod"]
  },
  "mixins": ["modid.mixins.json"]
}
`

const fabricModJSON119 = `{
  "schemaVersion": 1,
  "id": "modid",
  "version": "${version}",
  "name": "Example Mod",
  "description": "This is an example description! Tell everyone what your mod is about!",
  "authors": ["Me!"],
  "icon": "assets/modid/icon.png",
  "entrypoints": {
    "main": ["net.fabricmc.example.ExampleMod"],
    "client": [{"value": "net.fabricmc.example.ExampleClient"}]
  },
  "mixins": [
    "modid.mixins.json",
    {"config": "modid.client.mixins.json", "environment": "client"}
  ]
}
`

func mixinsJSON(mixin string) string {
	return `{
  "required": true,
  "package": "net.fabricmc.example.mixin",
  "mixins": ["` + mixin + `"]
}
`
}

const clientMixinsJSON = `{
  "required": true,
  "package": "net.fabricmc.example.mixin.client",
  "client": ["ExampleClientMixin"]
}
`

func git(t *testing.T, dir string, args ...string) {
	t.Helper()
	gitOutput(t, dir, args...)
}

func gitOutput(t *testing.T, dir string, args ...string) string {
	t.Helper()
	full := append([]string{"-c", "user.name=test", "-c", "user.email=test@example.com", "-c", "commit.gpgsign=false"}, args...)
	cmd := exec.Command("git", full...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %v: %v\n%s", args, err, out)
	}
	return string(out)
}

// writeFile creates a file with the given content, creating parent dirs.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}

// assertFileNotContains fails if the file contains substr.
func assertFileNotContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if strings.Contains(string(data), substr) {
		t.Errorf("file %s still contains %q.\nContents:\n%s", path, substr, string(data))
	}
}
