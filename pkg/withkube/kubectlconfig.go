package withkube

import (
	"github.com/common-fate/clio"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/tools/clientcmd/api"
)

// readKubectlConfig returns the configuration kubectl itself would use, from
// KUBECONFIG or ~/.kube/config, with referenced certificate files inlined so
// the document can be stored on its own.
func readKubectlConfig() ([]byte, error) {
	loader := clientcmd.NewDefaultClientConfigLoadingRules()
	loader.WarnIfAllMissing = true
	loader.Warner = func(err error) {
		clio.Debug(err)
	}
	config, err := loader.Load()
	if err != nil {
		return nil, err
	}
	if err := api.FlattenConfig(config); err != nil {
		return nil, err
	}
	return clientcmd.Write(*config)
}
