package kubeconfig

import (
	"testing"

	"github.com/common-fate/grab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const existingKubeconfig = `---
clusters:
- name: "existing-cluster"
  cluster:
    server: https://existing-cluster
    proxy-url: http://proxy:3128
contexts:
- context:
    cluster: "existing-cluster"
    namespace: "existing-namespace"
  name: "existing-context"
- context:
    cluster: "existing-cluster"
    namespace: "unused-namespace"
  name: "unused-context"
current-context: "existing-context"
users:
- name: "existing-credential"
  user:
    password: "existing-password"
    username: "existing-user"
`

func TestParseKeepsOrder(t *testing.T) {
	c, err := Parse([]byte(existingKubeconfig))
	require.NoError(t, err)

	assert.Equal(t, "v1", c.APIVersion)
	assert.Equal(t, "Config", c.Kind)
	assert.Equal(t, "existing-context", c.CurrentContext)
	require.Len(t, c.Contexts, 2)
	assert.Equal(t, "existing-context", c.Contexts[0].Name)
	assert.Equal(t, "unused-context", c.Contexts[1].Name)
	assert.Equal(t, "existing-user", c.GetUser("existing-credential").User.Username)
}

func TestParseEmpty(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "blank", doc: ""},
		{name: "empty lists", doc: "clusters: []\ncontexts: []\nusers: []\n"},
		{name: "null lists", doc: "clusters:\ncontexts:\nusers:\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.ErrorIs(t, err, errIsEmpty)
		})
	}
}

func TestParseInvalidYAML(t *testing.T) {
	_, err := Parse([]byte("clusters: [\n"))
	assert.Error(t, err)
}

func TestEditContext(t *testing.T) {
	c, err := Parse([]byte(existingKubeconfig))
	require.NoError(t, err)

	c.SetContextNamespace("existing-context", "new-namespace")
	c.SetContextCluster("brand-new", "k8s")

	require.Len(t, c.Contexts, 3)
	assert.Equal(t, Context{Cluster: "existing-cluster", Namespace: "new-namespace"}, c.Contexts[0].Context)
	assert.Equal(t, "brand-new", c.Contexts[2].Name)
	assert.Equal(t, Context{Cluster: "k8s"}, c.Contexts[2].Context)
}

func TestSetCluster(t *testing.T) {
	tests := []struct {
		name    string
		cluster string
		set     Cluster
		want    Cluster
		wantLen int
	}{
		{
			name:    "new cluster is appended",
			cluster: "k8s",
			set:     Cluster{Server: "https://localhost:6443", InsecureSkipTLSVerify: grab.Ptr(true)},
			want:    Cluster{Server: "https://localhost:6443", InsecureSkipTLSVerify: grab.Ptr(true)},
			wantLen: 2,
		},
		{
			name:    "existing cluster keeps unrelated fields",
			cluster: "existing-cluster",
			set:     Cluster{Server: "https://localhost:6443", InsecureSkipTLSVerify: grab.Ptr(false)},
			want: Cluster{
				Server:                "https://localhost:6443",
				ProxyURL:              "http://proxy:3128",
				InsecureSkipTLSVerify: grab.Ptr(false),
			},
			wantLen: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Parse([]byte(existingKubeconfig))
			require.NoError(t, err)

			err = c.SetCluster(tt.cluster, tt.set)
			require.NoError(t, err)

			assert.Len(t, c.Clusters, tt.wantLen)
			assert.Equal(t, tt.want, c.GetCluster(tt.cluster).Cluster)
		})
	}
}

func TestSetClusterOverridesInsecureFlag(t *testing.T) {
	c := New()
	require.NoError(t, c.SetCluster("k8s", Cluster{Server: "https://a", InsecureSkipTLSVerify: grab.Ptr(true)}))
	require.NoError(t, c.SetCluster("k8s", Cluster{Server: "https://b", InsecureSkipTLSVerify: grab.Ptr(false)}))

	got := c.GetCluster("k8s").Cluster
	assert.Equal(t, "https://b", got.Server)
	require.NotNil(t, got.InsecureSkipTLSVerify)
	assert.False(t, *got.InsecureSkipTLSVerify)
}

func TestSetClusterReplacesTrust(t *testing.T) {
	c := New()
	require.NoError(t, c.SetCluster("k8s", Cluster{
		Server:                   "https://a",
		CertificateAuthority:     "/etc/ca.crt",
		CertificateAuthorityData: "Y2E=",
		ProxyURL:                 "http://proxy:3128",
		InsecureSkipTLSVerify:    grab.Ptr(false),
	}))

	require.NoError(t, c.SetCluster("k8s", Cluster{Server: "https://b", InsecureSkipTLSVerify: grab.Ptr(true)}))
	assert.Equal(t, Cluster{
		Server:                "https://b",
		ProxyURL:              "http://proxy:3128",
		InsecureSkipTLSVerify: grab.Ptr(true),
	}, c.GetCluster("k8s").Cluster)
	assert.NoError(t, WithConsistentTLS(c))

	require.NoError(t, c.SetCluster("k8s", Cluster{Server: "https://c", CertificateAuthorityData: "bmV3"}))
	assert.Equal(t, Cluster{
		Server:                   "https://c",
		ProxyURL:                 "http://proxy:3128",
		CertificateAuthorityData: "bmV3",
	}, c.GetCluster("k8s").Cluster)
}

func TestAddUser(t *testing.T) {
	c := New()
	assert.ErrorIs(t, c.AddUser(nil), errIsNil)
	assert.ErrorIs(t, c.AddUser(&UserConfig{Name: "empty"}), errIsEmpty)

	require.NoError(t, c.AddUser(&UserConfig{Name: "bob", User: AuthInfo{Token: "t"}}))
	assert.Error(t, c.AddUser(&UserConfig{Name: "bob", User: AuthInfo{Token: "other"}}))
	assert.Len(t, c.Users, 1)
}

func TestMarshalEmptyCollections(t *testing.T) {
	c := New()
	c.EditContext("k8s", func(*Context) {})
	c.UseContext("k8s")

	out, err := c.Marshal()
	require.NoError(t, err)

	s := string(out)
	assert.Contains(t, s, "apiVersion: v1\n")
	assert.Contains(t, s, "kind: Config\n")
	assert.Contains(t, s, "clusters: []\n")
	assert.Contains(t, s, "users: []\n")
	assert.Contains(t, s, "preferences: {}\n")
	assert.Contains(t, s, "current-context: k8s\n")
	assert.Contains(t, s, "- context: {}\n  name: k8s\n")
}

func TestParseKeepsExtensions(t *testing.T) {
	c, err := Parse([]byte(`---
contexts:
- context:
    cluster: "k8s"
  name: "k8s"
extensions:
- name: "example.com/owner"
  extension:
    team: "payments"
`))
	require.NoError(t, err)
	require.NotNil(t, c.Extensions)

	b, err := c.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(b), "example.com/owner")

	again, err := Parse(b)
	require.NoError(t, err)
	assert.Equal(t, c.Extensions, again.Extensions)
}
