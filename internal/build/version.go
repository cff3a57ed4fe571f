package build

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
	BuiltBy = "unknown"
)

// BinaryName is the name withkube is installed as.
const BinaryName = "withkube"

// ConfigFolderName is the folder in the home directory withkube keeps its
// config and keyring in.
var ConfigFolderName = ".withkube"

func IsDev() bool {
	return Version == "dev"
}

// KeyringServiceName returns the keyring service credentials are stored
// under. Development builds use their own so they never touch real
// credentials.
func KeyringServiceName() string {
	if IsDev() {
		return "dwithkube-credentials"
	}
	return "withkube-credentials"
}
