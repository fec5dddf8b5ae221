package render

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/provisioner/internal/adapters/command"
	"github.com/felixgeelhaar/provisioner/internal/domain/step"
)

func sampleSteps() []step.Step {
	return []step.Step{
		step.NewWriteFile("/etc/app/config.yml", "debug: true\n").WithPermissions("0644").WithOwner("root:root"),
		step.NewWriteFile("/etc/motd", "welcome\n"),
		step.NewInstallPackages("nginx"),
		step.NewEnableService("nginx"),
		step.NewRunCommand("echo done"),
	}
}

type cloudConfigDoc struct {
	PackageUpdate bool     `yaml:"package_update"`
	Packages      []string `yaml:"packages"`
	WriteFiles    []struct {
		Path        string  `yaml:"path"`
		Content     string  `yaml:"content"`
		Permissions *string `yaml:"permissions"`
		Owner       *string `yaml:"owner"`
	} `yaml:"write_files"`
	RunCmd []string `yaml:"runcmd"`
}

func TestCloudConfig(t *testing.T) {
	t.Parallel()

	out, err := CloudConfig(sampleSteps()...)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(out), "#cloud-config\n"))

	var doc cloudConfigDoc
	require.NoError(t, yaml.Unmarshal(out, &doc))

	assert.True(t, doc.PackageUpdate)
	assert.Equal(t, []string{"nginx"}, doc.Packages)
	assert.Equal(t, []string{"systemctl enable --now nginx", "echo done"}, doc.RunCmd)

	require.Len(t, doc.WriteFiles, 2)
	first := doc.WriteFiles[0]
	assert.Equal(t, "/etc/app/config.yml", first.Path)
	assert.Equal(t, "debug: true\n", first.Content)
	require.NotNil(t, first.Permissions)
	assert.Equal(t, "0644", *first.Permissions)
	require.NotNil(t, first.Owner)
	assert.Equal(t, "root:root", *first.Owner)

	second := doc.WriteFiles[1]
	assert.Nil(t, second.Permissions, "absent permissions must not be rendered")
	assert.Nil(t, second.Owner, "absent owner must not be rendered")
}

func TestCloudConfig_OmitsAbsentKeys(t *testing.T) {
	t.Parallel()

	out, err := CloudConfig(step.NewWriteFile("/etc/motd", "hi"))
	require.NoError(t, err)

	text := string(out)
	assert.NotContains(t, text, "permissions")
	assert.NotContains(t, text, "owner")
	assert.NotContains(t, text, "packages")
	assert.NotContains(t, text, "runcmd")
}

func TestCloudConfig_Empty(t *testing.T) {
	t.Parallel()

	out, err := CloudConfig()
	require.NoError(t, err)
	assert.Equal(t, "#cloud-config\n", string(out))
}

func TestCloudConfig_EmptyPackageStep(t *testing.T) {
	t.Parallel()

	out, err := CloudConfig(step.NewInstallPackages())
	require.NoError(t, err)
	assert.Equal(t, "#cloud-config\n", string(out))
}

func TestCloudConfig_Deterministic(t *testing.T) {
	t.Parallel()

	a, err := CloudConfig(sampleSteps()...)
	require.NoError(t, err)
	b, err := CloudConfig(sampleSteps()...)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestScript(t *testing.T) {
	t.Parallel()

	script := Script(sampleSteps()...)

	assert.True(t, strings.HasPrefix(script, "#!/bin/sh\nset -eu\n"))
	assert.Contains(t, script, "# Write /etc/app/config.yml\nmkdir -p")
	assert.Contains(t, script, "# Enable service nginx\nsystemctl enable --now nginx\n")

	writeIdx := strings.Index(script, "# Write /etc/app/config.yml")
	motdIdx := strings.Index(script, "# Write /etc/motd")
	pkgIdx := strings.Index(script, "# Install packages: nginx")
	assert.Less(t, writeIdx, motdIdx)
	assert.Less(t, motdIdx, pkgIdx)

	assert.Equal(t, script, Script(sampleSteps()...))
}

func TestScript_MultilineDescriptionStaysComment(t *testing.T) {
	t.Parallel()

	script := Script(step.NewRunCommand("echo a\necho b"))
	assert.Contains(t, script, "# Run echo a\n# echo b\necho a\necho b\n")
}

func TestChecks(t *testing.T) {
	t.Parallel()

	checks := Checks(sampleSteps()...)
	require.Len(t, checks, 5)

	assert.Equal(t, "Write /etc/app/config.yml", checks[0].Description)
	assert.True(t, checks[0].HasPredicate)
	assert.Contains(t, checks[0].Predicate, step.Fingerprint("debug: true\n"))

	assert.Equal(t, "Run echo done", checks[4].Description)
	assert.False(t, checks[4].HasPredicate)
	assert.Empty(t, checks[4].Predicate)
}

func TestChecksText(t *testing.T) {
	t.Parallel()

	text := ChecksText(Checks(step.NewEnableService("ssh"), step.NewRunCommand("true")))
	assert.Equal(t,
		"# Enable service ssh\nsystemctl is-enabled --quiet ssh && systemctl is-active --quiet ssh\n\n# Run true\n# (no check)\n",
		text)
}

func TestScript_ExecutesIdempotently(t *testing.T) {
	t.Parallel()
	for _, tool := range []string{"sh", "sha256sum", "base64"} {
		if _, err := exec.LookPath(tool); err != nil {
			t.Skipf("%s not available", tool)
		}
	}

	dir := t.TempDir()
	steps := []step.Step{
		step.NewWriteFile(filepath.Join(dir, "a", "one.txt"), "one\n").WithPermissions("0640"),
		step.NewWriteFile(filepath.Join(dir, "b", "two.txt"), "two'\n"),
	}
	script := Script(steps...)
	runner := command.NewRealRunner()

	for run := 0; run < 2; run++ {
		result, err := runner.Run(context.Background(), "sh", "-c", script)
		require.NoError(t, err)
		require.True(t, result.Success(), "run %d failed: %s", run, result.Stderr)
	}

	got, err := os.ReadFile(filepath.Join(dir, "b", "two.txt"))
	require.NoError(t, err)
	assert.Equal(t, "two'\n", string(got))

	for _, c := range Checks(steps...) {
		result, err := runner.Run(context.Background(), "sh", "-c", c.Predicate)
		require.NoError(t, err)
		assert.True(t, result.Success(), "check %q failed", c.Description)
	}
}
