// Package azure implements the Azure provider driver. It provisions the
// workspace scope (resource group, storage account, key vault, ML workspace),
// compute targets (AmlCompute pools and attached AKS clusters), container
// images (pushed straight to a registry, no local daemon) and scoring
// services (AKS deployments or ACI container groups).
package azure

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	providerdrv "github.com/mlopsworks/azmlops/adapters/drivers/provider"
	"github.com/mlopsworks/azmlops/internal/logging"
)

// driver implements the Azure provider driver.
type driver struct {
	TokenCredential azcore.TokenCredential
	AzureTenantID   string
}

// ID returns the provider identifier.
func (d *driver) ID() string { return "azure" }

// init registers the Azure driver.
func init() {
	providerdrv.Register("azure", func(settings map[string]string) (providerdrv.Driver, error) {
		get := func(k string) string {
			if settings == nil {
				return ""
			}
			return strings.TrimSpace(settings[k])
		}

		authMethod := get("AZURE_AUTH_METHOD")
		if authMethod == "" {
			authMethod = "azure_cli"
		}

		var cred azcore.TokenCredential
		var err error
		switch authMethod {
		case "client_secret":
			tenantID := get("AZURE_TENANT_ID")
			clientID := get("AZURE_CLIENT_ID")
			clientSecret := get("AZURE_CLIENT_SECRET")
			if tenantID == "" || clientID == "" || clientSecret == "" {
				return nil, fmt.Errorf("client_secret auth requires AZURE_TENANT_ID, AZURE_CLIENT_ID, AZURE_CLIENT_SECRET")
			}
			cred, err = azidentity.NewClientSecretCredential(tenantID, clientID, clientSecret, nil)
		case "managed_identity":
			clientID := get("AZURE_CLIENT_ID")
			opts := &azidentity.ManagedIdentityCredentialOptions{}
			if clientID != "" {
				opts.ID = azidentity.ClientID(clientID)
			}
			cred, err = azidentity.NewManagedIdentityCredential(opts)
		case "workload_identity":
			tenantID := get("AZURE_TENANT_ID")
			clientID := get("AZURE_CLIENT_ID")
			tokenFile := get("AZURE_FEDERATED_TOKEN_FILE")
			if tenantID == "" || clientID == "" || tokenFile == "" {
				return nil, fmt.Errorf("workload_identity auth requires AZURE_TENANT_ID, AZURE_CLIENT_ID, AZURE_FEDERATED_TOKEN_FILE")
			}
			cred, err = azidentity.NewWorkloadIdentityCredential(&azidentity.WorkloadIdentityCredentialOptions{
				TenantID:      tenantID,
				ClientID:      clientID,
				TokenFilePath: tokenFile,
			})
		case "azure_cli":
			cred, err = azidentity.NewAzureCLICredential(nil)
		default:
			return nil, fmt.Errorf("unsupported AZURE_AUTH_METHOD: %s", authMethod)
		}
		if err != nil {
			return nil, fmt.Errorf("create Azure credential: %w", err)
		}

		return &driver{
			TokenCredential: cred,
			AzureTenantID:   get("AZURE_TENANT_ID"),
		}, nil
	})
}

// resourceTags returns the common tags stamped on every Azure resource this
// driver creates.
func resourceTags(workspaceName string) map[string]*string {
	return map[string]*string{
		"managed-by": to.Ptr("azmlops"),
		"workspace":  to.Ptr(workspaceName),
	}
}

// isAzureNotFound reports whether err is an ARM 404 response.
func isAzureNotFound(err error) bool {
	var responseErr *azcore.ResponseError
	return errors.As(err, &responseErr) && responseErr.StatusCode == http.StatusNotFound
}

func azureShorterErrorString(err error) string {
	errstr := err.Error()
	var responseErr *azcore.ResponseError
	if errors.As(err, &responseErr) {
		errstr = fmt.Sprintf("%d %s (%s)", responseErr.StatusCode, http.StatusText(responseErr.StatusCode), responseErr.ErrorCode)
	}
	return errstr
}

// withMethodLogger emits a START log line and returns a context carrying the
// method-scoped logger, plus a cleanup function emitting END:OK or
// END:FAILED.
//
// Usage:
//
//	ctx, cleanup := d.withMethodLogger(ctx, "WorkspaceProvision")
//	defer func() { cleanup(err) }()
func (d *driver) withMethodLogger(ctx context.Context, method string) (context.Context, func(err error)) {
	startAt := time.Now()

	driverName := "Azure." + method
	logger := logging.FromContext(ctx).With("driver", driverName)
	ctx = logging.WithLogger(ctx, logger)

	logger.Info(ctx, "Azure:"+method+":START")

	cleanup := func(err error) {
		elapsed := time.Since(startAt).Seconds()
		if err == nil {
			logger.Info(ctx, "Azure:"+method+":END:OK", "elapsed", elapsed)
		} else {
			logger.Warn(ctx, "Azure:"+method+":END:FAILED", "err", azureShorterErrorString(err), "elapsed", elapsed)
		}
	}

	return ctx, cleanup
}
