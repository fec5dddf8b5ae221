package step

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloudInitFragment_Merge(t *testing.T) {
	t.Parallel()

	a := NewWriteFile("/etc/a", "a").WithPermissions("0600").CloudInit()
	b := NewInstallPackages("nginx", "curl").CloudInit()
	c := NewInstallPackages("curl", "jq").CloudInit()
	d := NewEnableService("nginx").CloudInit()

	merged := a.Merge(b).Merge(c).Merge(d)

	assert.True(t, merged.PackageUpdate)
	assert.Equal(t, []string{"nginx", "curl", "jq"}, merged.Packages)
	require.Len(t, merged.WriteFiles, 1)
	assert.Equal(t, "/etc/a", merged.WriteFiles[0].Path)
	require.NotNil(t, merged.WriteFiles[0].Permissions)
	assert.Equal(t, "0600", *merged.WriteFiles[0].Permissions)
	assert.Nil(t, merged.WriteFiles[0].Owner)
	assert.Equal(t, []string{"systemctl enable --now nginx"}, merged.RunCmd)
}

func TestCloudInitFragment_MergeDoesNotAlias(t *testing.T) {
	t.Parallel()

	a := NewWriteFile("/etc/a", "a").WithOwner("root").CloudInit()
	b := CloudInitFragment{RunCmd: []string{"true"}}

	merged := a.Merge(b)
	*merged.WriteFiles[0].Owner = "nobody"
	merged.RunCmd[0] = "false"

	assert.Equal(t, "root", *a.WriteFiles[0].Owner)
	assert.Equal(t, "true", b.RunCmd[0])
}

func TestCloudInitFragment_MergeOrder(t *testing.T) {
	t.Parallel()

	first := NewWriteFile("/one", "1").CloudInit()
	second := NewWriteFile("/two", "2").CloudInit()

	merged := first.Merge(second)
	require.Len(t, merged.WriteFiles, 2)
	assert.Equal(t, "/one", merged.WriteFiles[0].Path)
	assert.Equal(t, "/two", merged.WriteFiles[1].Path)
}

func TestCloudInitFragment_IsEmpty(t *testing.T) {
	t.Parallel()

	assert.True(t, CloudInitFragment{}.IsEmpty())
	assert.True(t, CloudInitFragment{}.Merge(CloudInitFragment{}).IsEmpty())
	assert.False(t, NewEnableService("ssh").CloudInit().IsEmpty())
}
