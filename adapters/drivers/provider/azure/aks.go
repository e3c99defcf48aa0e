package azure

import (
	"context"
	"fmt"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/containerservice/armcontainerservice"
	"github.com/mlopsworks/azmlops/adapters/kube"
	"github.com/mlopsworks/azmlops/domain/model"
	"github.com/mlopsworks/azmlops/internal/logging"
	"github.com/mlopsworks/azmlops/internal/scoring"
)

// servingNamespace is the Kubernetes namespace all scoring workloads run in.
const servingNamespace = "azmlops"

// ensureAKSCluster creates the AKS cluster backing an aks compute target if
// it does not exist, and returns the cluster's ARM resource ID.
func (d *driver) ensureAKSCluster(ctx context.Context, ws *model.Workspace, ct *model.ComputeTarget) (string, error) {
	logger := logging.FromContext(ctx).With("cluster", ct.Name)

	aksClient, err := armcontainerservice.NewManagedClustersClient(ws.SubscriptionID, d.TokenCredential, nil)
	if err != nil {
		return "", fmt.Errorf("new AKS client: %w", err)
	}

	existing, err := aksClient.Get(ctx, ws.ResourceGroup, ct.Name, nil)
	if err == nil {
		logger.Info(ctx, "AKS cluster reused")
		return *existing.ID, nil
	}
	if !isAzureNotFound(err) {
		return "", fmt.Errorf("get AKS cluster %s: %w", ct.Name, err)
	}

	nodeCount := ct.MinNodes
	if nodeCount <= 0 {
		nodeCount = 1
	}
	vmSize := ct.VMSize
	if vmSize == "" {
		vmSize = "Standard_DS2_v2"
	}

	logger.Info(ctx, "creating AKS cluster", "vm_size", vmSize, "node_count", nodeCount)
	poller, err := aksClient.BeginCreateOrUpdate(ctx, ws.ResourceGroup, ct.Name, armcontainerservice.ManagedCluster{
		Location: to.Ptr(ws.Location),
		Tags:     resourceTags(ws.Name),
		Identity: &armcontainerservice.ManagedClusterIdentity{
			Type: to.Ptr(armcontainerservice.ResourceIdentityTypeSystemAssigned),
		},
		Properties: &armcontainerservice.ManagedClusterProperties{
			DNSPrefix: to.Ptr(ct.Name),
			AgentPoolProfiles: []*armcontainerservice.ManagedClusterAgentPoolProfile{
				{
					Name:   to.Ptr("nodepool1"),
					Count:  to.Ptr(nodeCount),
					VMSize: to.Ptr(vmSize),
					OSType: to.Ptr(armcontainerservice.OSTypeLinux),
					Type:   to.Ptr(armcontainerservice.AgentPoolTypeVirtualMachineScaleSets),
					Mode:   to.Ptr(armcontainerservice.AgentPoolModeSystem),
				},
			},
		},
	}, nil)
	if err != nil {
		return "", fmt.Errorf("begin create AKS cluster %s: %w", ct.Name, err)
	}
	res, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("create AKS cluster %s: %w", ct.Name, err)
	}
	logger.Info(ctx, "AKS cluster created")
	return *res.ID, nil
}

// deleteAKSCluster removes the AKS cluster backing an aks compute target
// (idempotent).
func (d *driver) deleteAKSCluster(ctx context.Context, ws *model.Workspace, ct *model.ComputeTarget) error {
	aksClient, err := armcontainerservice.NewManagedClustersClient(ws.SubscriptionID, d.TokenCredential, nil)
	if err != nil {
		return fmt.Errorf("new AKS client: %w", err)
	}

	poller, err := aksClient.BeginDelete(ctx, ws.ResourceGroup, ct.Name, nil)
	if err != nil {
		if isAzureNotFound(err) {
			return nil
		}
		return fmt.Errorf("begin delete AKS cluster %s: %w", ct.Name, err)
	}
	if _, err := poller.PollUntilDone(ctx, nil); err != nil {
		return fmt.Errorf("delete AKS cluster %s: %w", ct.Name, err)
	}
	return nil
}

// aksKubeClient builds a Kubernetes client from the cluster's admin
// credentials.
func (d *driver) aksKubeClient(ctx context.Context, ws *model.Workspace, ct *model.ComputeTarget) (*kube.Client, error) {
	aksClient, err := armcontainerservice.NewManagedClustersClient(ws.SubscriptionID, d.TokenCredential, nil)
	if err != nil {
		return nil, fmt.Errorf("new AKS client: %w", err)
	}

	creds, err := aksClient.ListClusterAdminCredentials(ctx, ws.ResourceGroup, ct.Name, nil)
	if err != nil {
		return nil, fmt.Errorf("list AKS admin credentials for %s: %w", ct.Name, err)
	}
	if len(creds.Kubeconfigs) == 0 || creds.Kubeconfigs[0].Value == nil {
		return nil, fmt.Errorf("AKS cluster %s returned no kubeconfig", ct.Name)
	}

	return kube.NewClientFromKubeconfig(ctx, creds.Kubeconfigs[0].Value, &kube.Options{UserAgent: "azmlops"})
}

// deployAKSService rolls out the scoring workload onto the attached AKS
// cluster and waits for the LoadBalancer address.
func (d *driver) deployAKSService(ctx context.Context, ws *model.Workspace, svc *model.Service, img *model.Image, ct *model.ComputeTarget) error {
	logger := logging.FromContext(ctx).With("service", svc.Name, "cluster", ct.Name)

	client, err := d.aksKubeClient(ctx, ws, ct)
	if err != nil {
		return err
	}

	if err := client.CreateNamespace(ctx, servingNamespace); err != nil {
		return err
	}

	workload := &kube.ServingWorkload{
		Name:     svc.Name,
		Image:    img.Ref,
		Replicas: svc.Replicas,
		Port:     scoring.ServingPort,
		CPU:      svc.CPU,
		MemoryGB: svc.MemoryGB,
		Env: map[string]string{
			"AZMLOPS_SERVICE_NAME": svc.Name,
		},
	}
	if svc.AuthEnabled {
		workload.SecretEnv = map[string]string{
			"AZMLOPS_AUTH_KEYS": authKeysValue(svc),
		}
	}

	if err := client.ApplyServingDeployment(ctx, servingNamespace, workload); err != nil {
		return err
	}
	if err := client.ApplyServingService(ctx, servingNamespace, workload); err != nil {
		return err
	}

	addr, err := client.WaitForServiceIngress(ctx, servingNamespace, svc.Name, 10*time.Minute)
	if err != nil {
		return err
	}

	svc.ScoringURI = fmt.Sprintf("http://%s/score", addr)
	svc.SwaggerURI = fmt.Sprintf("http://%s/swagger.json", addr)
	logger.Info(ctx, "AKS service deployed", "scoring_uri", svc.ScoringURI)
	return nil
}

// statusAKSService probes the scoring workload on the attached AKS cluster.
func (d *driver) statusAKSService(ctx context.Context, ws *model.Workspace, svc *model.Service, ct *model.ComputeTarget) (*model.ServiceStatus, error) {
	client, err := d.aksKubeClient(ctx, ws, ct)
	if err != nil {
		return nil, err
	}

	exists, ready, err := client.ServingWorkloadExists(ctx, servingNamespace, svc.Name)
	if err != nil {
		return nil, err
	}
	if !exists {
		return &model.ServiceStatus{Available: false}, nil
	}
	status := &model.ServiceStatus{
		Available:  ready > 0,
		State:      fmt.Sprintf("%d replicas ready", ready),
		ScoringURI: svc.ScoringURI,
		SwaggerURI: svc.SwaggerURI,
	}
	// Recover the endpoint from the LoadBalancer ingress so a record loaded
	// without URIs still resolves to the running service.
	if addr, err := client.ServiceIngress(ctx, servingNamespace, svc.Name); err == nil && addr != "" {
		status.ScoringURI = fmt.Sprintf("http://%s/score", addr)
		status.SwaggerURI = fmt.Sprintf("http://%s/swagger.json", addr)
	}
	return status, nil
}

// deleteAKSService removes the scoring workload from the attached AKS
// cluster (idempotent).
func (d *driver) deleteAKSService(ctx context.Context, ws *model.Workspace, svc *model.Service, ct *model.ComputeTarget) error {
	client, err := d.aksKubeClient(ctx, ws, ct)
	if err != nil {
		return err
	}
	return client.DeleteServingWorkload(ctx, servingNamespace, svc.Name)
}
