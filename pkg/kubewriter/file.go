package kubewriter

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/common-fate/withkube/pkg/kubeconfig"
	"github.com/segmentio/ksuid"
)

const (
	// permission for user to read/write.
	userReadWritePerm = 0600
	// permission for user to read/write, others to read.
	worldReadablePerm = 0644
	workspacePerm     = 0700
)

// FileOptions controls where and how a kubeconfig file is written.
type FileOptions struct {
	// Workspace is the directory files are written to. It is created when
	// missing.
	Workspace string
	// Restricted limits the file to its owner.
	Restricted bool
}

func (o FileOptions) perm() fs.FileMode {
	if o.Restricted {
		return userReadWritePerm
	}
	return worldReadablePerm
}

// WriteTemp writes c to a new uniquely named file in the workspace and
// returns its path. The caller removes the file.
func WriteTemp(c *kubeconfig.Config, opts FileOptions, log Logger) (string, error) {
	log = orNop(log)
	b, err := c.Marshal()
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(opts.Workspace); errors.Is(err, fs.ErrNotExist) {
		log.Infof("[withkube] creating missing workspace to write temporary kubeconfig")
		if err := os.MkdirAll(opts.Workspace, workspacePerm); err != nil {
			return "", fmt.Errorf("[withkube] creating workspace %s: %w", opts.Workspace, err)
		}
	}

	path := filepath.Join(opts.Workspace, ".kube"+ksuid.New().String()+"config")
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, opts.perm())
	if err != nil {
		return "", fmt.Errorf("[withkube] writing kubeconfig: %w", err)
	}
	defer f.Close()

	// the umask may have removed bits from the requested mode
	if err := f.Chmod(opts.perm()); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("[withkube] writing kubeconfig: %w", err)
	}
	if _, err := f.Write(b); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("[withkube] writing kubeconfig: %w", err)
	}
	return path, nil
}
