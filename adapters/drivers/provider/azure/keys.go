package azure

import (
	"strings"

	"github.com/mlopsworks/azmlops/domain/model"
)

// authKeysValue renders the service keys as the comma-separated value the
// scoring bootstrap reads from AZMLOPS_AUTH_KEYS.
func authKeysValue(svc *model.Service) string {
	return strings.Join(svc.Keys(), ",")
}
