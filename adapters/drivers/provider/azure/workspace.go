package azure

import (
	"context"
	"fmt"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/keyvault/armkeyvault"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/machinelearning/armmachinelearning/v3"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/storage/armstorage"
	"github.com/mlopsworks/azmlops/domain/model"
	"github.com/mlopsworks/azmlops/internal/logging"
	"github.com/mlopsworks/azmlops/internal/naming"
)

// WorkspaceStatus reports whether the ML workspace exists.
func (d *driver) WorkspaceStatus(ctx context.Context, ws *model.Workspace) (*model.WorkspaceStatus, error) {
	mlClient, err := armmachinelearning.NewWorkspacesClient(ws.SubscriptionID, d.TokenCredential, nil)
	if err != nil {
		return nil, fmt.Errorf("new ML workspaces client: %w", err)
	}

	res, err := mlClient.Get(ctx, ws.ResourceGroup, ws.Name, nil)
	if err != nil {
		if isAzureNotFound(err) {
			return &model.WorkspaceStatus{Provisioned: false}, nil
		}
		return nil, fmt.Errorf("get ML workspace %s: %w", ws.Name, err)
	}

	state := ""
	if res.Properties != nil && res.Properties.ProvisioningState != nil {
		state = string(*res.Properties.ProvisioningState)
	}
	return &model.WorkspaceStatus{Provisioned: true, State: state}, nil
}

// WorkspaceProvision creates the resource group, storage account, key vault
// and ML workspace. Each resource is reused when it already exists.
func (d *driver) WorkspaceProvision(ctx context.Context, ws *model.Workspace, opts ...model.WorkspaceProvisionOption) (err error) {
	ctx, cleanup := d.withMethodLogger(ctx, "WorkspaceProvision")
	defer func() { cleanup(err) }()

	ctx, cancel := context.WithTimeout(ctx, 30*time.Minute)
	defer cancel()

	if err = d.ensureResourceGroup(ctx, ws); err != nil {
		return err
	}

	storageID, err := d.ensureStorageAccount(ctx, ws)
	if err != nil {
		return err
	}
	ws.StorageAccount = storageID

	vaultID, err := d.ensureKeyVault(ctx, ws)
	if err != nil {
		return err
	}
	ws.KeyVault = vaultID

	return d.ensureMLWorkspace(ctx, ws)
}

// WorkspaceDeprovision deletes the ML workspace. With the force option the
// whole resource group is removed instead.
func (d *driver) WorkspaceDeprovision(ctx context.Context, ws *model.Workspace, opts ...model.WorkspaceDeprovisionOption) (err error) {
	ctx, cleanup := d.withMethodLogger(ctx, "WorkspaceDeprovision")
	defer func() { cleanup(err) }()

	ctx, cancel := context.WithTimeout(ctx, 30*time.Minute)
	defer cancel()

	options := &model.WorkspaceDeprovisionOptions{}
	for _, o := range opts {
		o(options)
	}

	if options.Force {
		return d.deleteResourceGroup(ctx, ws)
	}

	mlClient, err := armmachinelearning.NewWorkspacesClient(ws.SubscriptionID, d.TokenCredential, nil)
	if err != nil {
		return fmt.Errorf("new ML workspaces client: %w", err)
	}

	poller, err := mlClient.BeginDelete(ctx, ws.ResourceGroup, ws.Name, nil)
	if err != nil {
		if isAzureNotFound(err) {
			return nil
		}
		return fmt.Errorf("begin delete ML workspace %s: %w", ws.Name, err)
	}
	if _, err = poller.PollUntilDone(ctx, nil); err != nil {
		return fmt.Errorf("delete ML workspace %s: %w", ws.Name, err)
	}
	return nil
}

// ensureResourceGroup creates the resource group if missing (idempotent).
func (d *driver) ensureResourceGroup(ctx context.Context, ws *model.Workspace) error {
	logger := logging.FromContext(ctx).With("resource_group", ws.ResourceGroup, "location", ws.Location)

	groupsClient, err := armresources.NewResourceGroupsClient(ws.SubscriptionID, d.TokenCredential, nil)
	if err != nil {
		return fmt.Errorf("new resource groups client: %w", err)
	}

	_, err = groupsClient.CreateOrUpdate(ctx, ws.ResourceGroup, armresources.ResourceGroup{
		Location: to.Ptr(ws.Location),
		Tags:     resourceTags(ws.Name),
	}, nil)
	if err != nil {
		return fmt.Errorf("create resource group %s: %w", ws.ResourceGroup, err)
	}
	logger.Info(ctx, "resource group ensured")
	return nil
}

// deleteResourceGroup removes the resource group and everything in it
// (idempotent).
func (d *driver) deleteResourceGroup(ctx context.Context, ws *model.Workspace) error {
	logger := logging.FromContext(ctx).With("resource_group", ws.ResourceGroup)

	groupsClient, err := armresources.NewResourceGroupsClient(ws.SubscriptionID, d.TokenCredential, nil)
	if err != nil {
		return fmt.Errorf("new resource groups client: %w", err)
	}

	if _, err := groupsClient.Get(ctx, ws.ResourceGroup, nil); err != nil {
		// Treat not-found as already deleted.
		return nil
	}

	logger.Info(ctx, "deleting resource group")
	poller, err := groupsClient.BeginDelete(ctx, ws.ResourceGroup, nil)
	if err != nil {
		return fmt.Errorf("begin delete resource group %s: %w", ws.ResourceGroup, err)
	}
	if _, err := poller.PollUntilDone(ctx, nil); err != nil {
		return fmt.Errorf("delete resource group %s: %w", ws.ResourceGroup, err)
	}
	logger.Info(ctx, "resource group deleted")
	return nil
}

// ensureStorageAccount creates the workspace-scoped storage account if
// missing and returns its ARM resource ID.
func (d *driver) ensureStorageAccount(ctx context.Context, ws *model.Workspace) (string, error) {
	accountName := naming.StorageAccountName(ws.ResourceGroup, ws.Name)
	logger := logging.FromContext(ctx).With("storage_account", accountName)

	accountsClient, err := armstorage.NewAccountsClient(ws.SubscriptionID, d.TokenCredential, nil)
	if err != nil {
		return "", fmt.Errorf("new storage accounts client: %w", err)
	}

	props, err := accountsClient.GetProperties(ctx, ws.ResourceGroup, accountName, nil)
	if err == nil {
		logger.Info(ctx, "storage account reused")
		return *props.ID, nil
	}
	if !isAzureNotFound(err) {
		return "", fmt.Errorf("get storage account %s: %w", accountName, err)
	}

	logger.Info(ctx, "creating storage account")
	poller, err := accountsClient.BeginCreate(ctx, ws.ResourceGroup, accountName, armstorage.AccountCreateParameters{
		SKU: &armstorage.SKU{
			Name: to.Ptr(armstorage.SKUNameStandardLRS),
		},
		Kind:     to.Ptr(armstorage.KindStorageV2),
		Location: to.Ptr(ws.Location),
		Tags:     resourceTags(ws.Name),
		Properties: &armstorage.AccountPropertiesCreateParameters{
			AllowBlobPublicAccess:  to.Ptr(false),
			MinimumTLSVersion:      to.Ptr(armstorage.MinimumTLSVersionTLS12),
			EnableHTTPSTrafficOnly: to.Ptr(true),
		},
	}, nil)
	if err != nil {
		return "", fmt.Errorf("begin create storage account %s: %w", accountName, err)
	}
	res, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("create storage account %s: %w", accountName, err)
	}
	logger.Info(ctx, "storage account created")
	return *res.ID, nil
}

// ensureKeyVault creates the workspace-scoped key vault if missing and
// returns its ARM resource ID.
func (d *driver) ensureKeyVault(ctx context.Context, ws *model.Workspace) (string, error) {
	vaultName := naming.KeyVaultName(ws.ResourceGroup, ws.Name)
	logger := logging.FromContext(ctx).With("key_vault", vaultName)

	if d.AzureTenantID == "" {
		return "", fmt.Errorf("AZURE_TENANT_ID is required in workspace settings to create a key vault")
	}

	vaultsClient, err := armkeyvault.NewVaultsClient(ws.SubscriptionID, d.TokenCredential, nil)
	if err != nil {
		return "", fmt.Errorf("new key vaults client: %w", err)
	}

	vault, err := vaultsClient.Get(ctx, ws.ResourceGroup, vaultName, nil)
	if err == nil {
		logger.Info(ctx, "key vault reused")
		return *vault.ID, nil
	}
	if !isAzureNotFound(err) {
		return "", fmt.Errorf("get key vault %s: %w", vaultName, err)
	}

	logger.Info(ctx, "creating key vault")
	poller, err := vaultsClient.BeginCreateOrUpdate(ctx, ws.ResourceGroup, vaultName, armkeyvault.VaultCreateOrUpdateParameters{
		Location: to.Ptr(ws.Location),
		Tags:     resourceTags(ws.Name),
		Properties: &armkeyvault.VaultProperties{
			TenantID: to.Ptr(d.AzureTenantID),
			SKU: &armkeyvault.SKU{
				Family: to.Ptr(armkeyvault.SKUFamilyA),
				Name:   to.Ptr(armkeyvault.SKUNameStandard),
			},
			EnableRbacAuthorization: to.Ptr(true),
			AccessPolicies:          []*armkeyvault.AccessPolicyEntry{},
		},
	}, nil)
	if err != nil {
		return "", fmt.Errorf("begin create key vault %s: %w", vaultName, err)
	}
	res, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("create key vault %s: %w", vaultName, err)
	}
	logger.Info(ctx, "key vault created")
	return *res.ID, nil
}

// ensureMLWorkspace creates the ML workspace if missing and records its
// provisioning state on ws.
func (d *driver) ensureMLWorkspace(ctx context.Context, ws *model.Workspace) error {
	logger := logging.FromContext(ctx).With("workspace", ws.Name)

	mlClient, err := armmachinelearning.NewWorkspacesClient(ws.SubscriptionID, d.TokenCredential, nil)
	if err != nil {
		return fmt.Errorf("new ML workspaces client: %w", err)
	}

	existing, err := mlClient.Get(ctx, ws.ResourceGroup, ws.Name, nil)
	if err == nil {
		if existing.Properties != nil && existing.Properties.ProvisioningState != nil {
			ws.State = string(*existing.Properties.ProvisioningState)
		}
		logger.Info(ctx, "ML workspace reused", "state", ws.State)
		return nil
	}
	if !isAzureNotFound(err) {
		return fmt.Errorf("get ML workspace %s: %w", ws.Name, err)
	}

	logger.Info(ctx, "creating ML workspace")
	poller, err := mlClient.BeginCreateOrUpdate(ctx, ws.ResourceGroup, ws.Name, armmachinelearning.Workspace{
		Location: to.Ptr(ws.Location),
		Tags:     resourceTags(ws.Name),
		Identity: &armmachinelearning.ManagedServiceIdentity{
			Type: to.Ptr(armmachinelearning.ManagedServiceIdentityTypeSystemAssigned),
		},
		Properties: &armmachinelearning.WorkspaceProperties{
			FriendlyName:   to.Ptr(ws.Name),
			StorageAccount: to.Ptr(ws.StorageAccount),
			KeyVault:       to.Ptr(ws.KeyVault),
		},
	}, nil)
	if err != nil {
		return fmt.Errorf("begin create ML workspace %s: %w", ws.Name, err)
	}
	res, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return fmt.Errorf("create ML workspace %s: %w", ws.Name, err)
	}
	if res.Properties != nil && res.Properties.ProvisioningState != nil {
		ws.State = string(*res.Properties.ProvisioningState)
	}
	logger.Info(ctx, "ML workspace created", "state", ws.State)
	return nil
}
