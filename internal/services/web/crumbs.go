package web

import (
	"embed"

	"github.com/louisbranch/crumbtrail/internal/breadcrumb/crumbfile"
)

// DefaultCrumbsFile names the embedded definition file.
const DefaultCrumbsFile = "crumbs.yaml"

//go:embed crumbs.yaml
var crumbsFS embed.FS

// DefaultCrumbs loads the breadcrumb definitions compiled into the binary.
func DefaultCrumbs() (*crumbfile.Store, error) {
	return crumbfile.NewStoreFS(crumbsFS, DefaultCrumbsFile, crumbfile.Strict(true))
}
