package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/containerinstance/armcontainerinstance/v2"
	"github.com/mlopsworks/azmlops/domain/model"
	"github.com/mlopsworks/azmlops/internal/logging"
	"github.com/mlopsworks/azmlops/internal/naming"
)

// aciPort is the public port an ACI scoring service listens on. ACI exposes
// container ports directly without mapping, so the scoring bootstrap is told
// to bind this port via AZMLOPS_PORT.
const aciPort int32 = 80

// deployACIService creates or replaces a public container group running the
// scoring image.
func (d *driver) deployACIService(ctx context.Context, ws *model.Workspace, svc *model.Service, img *model.Image) error {
	logger := logging.FromContext(ctx).With("service", svc.Name)

	groupsClient, err := armcontainerinstance.NewContainerGroupsClient(ws.SubscriptionID, d.TokenCredential, nil)
	if err != nil {
		return fmt.Errorf("new container groups client: %w", err)
	}

	env := []*armcontainerinstance.EnvironmentVariable{
		{Name: to.Ptr("AZMLOPS_SERVICE_NAME"), Value: to.Ptr(svc.Name)},
		{Name: to.Ptr("AZMLOPS_PORT"), Value: to.Ptr(fmt.Sprintf("%d", aciPort))},
	}
	if svc.AuthEnabled {
		env = append(env, &armcontainerinstance.EnvironmentVariable{
			Name:        to.Ptr("AZMLOPS_AUTH_KEYS"),
			SecureValue: to.Ptr(authKeysValue(svc)),
		})
	}

	cpu := svc.CPU
	if cpu <= 0 {
		cpu = 1
	}
	memoryGB := svc.MemoryGB
	if memoryGB <= 0 {
		memoryGB = 1
	}
	dnsLabel := naming.DNSLabel(ws.ResourceGroup, svc.Name)

	group := armcontainerinstance.ContainerGroup{
		Location: to.Ptr(ws.Location),
		Tags:     resourceTags(ws.Name),
		Properties: &armcontainerinstance.ContainerGroupPropertiesProperties{
			OSType:        to.Ptr(armcontainerinstance.OperatingSystemTypesLinux),
			RestartPolicy: to.Ptr(armcontainerinstance.ContainerGroupRestartPolicyAlways),
			Containers: []*armcontainerinstance.Container{
				{
					Name: to.Ptr(svc.Name),
					Properties: &armcontainerinstance.ContainerProperties{
						Image:                to.Ptr(img.Ref),
						Ports:                []*armcontainerinstance.ContainerPort{{Port: to.Ptr(aciPort), Protocol: to.Ptr(armcontainerinstance.ContainerNetworkProtocolTCP)}},
						EnvironmentVariables: env,
						Resources: &armcontainerinstance.ResourceRequirements{
							Requests: &armcontainerinstance.ResourceRequests{
								CPU:        to.Ptr(cpu),
								MemoryInGB: to.Ptr(memoryGB),
							},
						},
					},
				},
			},
			IPAddress: &armcontainerinstance.IPAddress{
				Type:         to.Ptr(armcontainerinstance.ContainerGroupIPAddressTypePublic),
				DNSNameLabel: to.Ptr(dnsLabel),
				Ports:        []*armcontainerinstance.Port{{Port: to.Ptr(aciPort), Protocol: to.Ptr(armcontainerinstance.ContainerGroupNetworkProtocolTCP)}},
			},
		},
	}

	logger.Info(ctx, "creating container group", "dns_label", dnsLabel)
	poller, err := groupsClient.BeginCreateOrUpdate(ctx, ws.ResourceGroup, svc.Name, group, nil)
	if err != nil {
		return fmt.Errorf("begin create container group %s: %w", svc.Name, err)
	}
	res, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return fmt.Errorf("create container group %s: %w", svc.Name, err)
	}

	fqdn := ""
	if res.Properties != nil && res.Properties.IPAddress != nil {
		if res.Properties.IPAddress.Fqdn != nil {
			fqdn = *res.Properties.IPAddress.Fqdn
		} else if res.Properties.IPAddress.IP != nil {
			fqdn = *res.Properties.IPAddress.IP
		}
	}
	if fqdn == "" {
		return fmt.Errorf("container group %s has no public address", svc.Name)
	}

	svc.ScoringURI = fmt.Sprintf("http://%s/score", fqdn)
	svc.SwaggerURI = fmt.Sprintf("http://%s/swagger.json", fqdn)
	logger.Info(ctx, "ACI service deployed", "scoring_uri", svc.ScoringURI)
	return nil
}

// statusACIService probes the container group backing an ACI service.
func (d *driver) statusACIService(ctx context.Context, ws *model.Workspace, svc *model.Service) (*model.ServiceStatus, error) {
	groupsClient, err := armcontainerinstance.NewContainerGroupsClient(ws.SubscriptionID, d.TokenCredential, nil)
	if err != nil {
		return nil, fmt.Errorf("new container groups client: %w", err)
	}

	res, err := groupsClient.Get(ctx, ws.ResourceGroup, svc.Name, nil)
	if err != nil {
		if isAzureNotFound(err) {
			return &model.ServiceStatus{Available: false}, nil
		}
		return nil, fmt.Errorf("get container group %s: %w", svc.Name, err)
	}

	state := ""
	if res.Properties != nil && res.Properties.ProvisioningState != nil {
		state = *res.Properties.ProvisioningState
	}
	status := &model.ServiceStatus{
		Available:  state == "Succeeded",
		State:      state,
		ScoringURI: svc.ScoringURI,
		SwaggerURI: svc.SwaggerURI,
	}
	// Recover the endpoint from the live container group so a record loaded
	// without URIs still resolves to the running service.
	fqdn := ""
	if res.Properties != nil && res.Properties.IPAddress != nil {
		if res.Properties.IPAddress.Fqdn != nil {
			fqdn = *res.Properties.IPAddress.Fqdn
		} else if res.Properties.IPAddress.IP != nil {
			fqdn = *res.Properties.IPAddress.IP
		}
	}
	if fqdn != "" {
		status.ScoringURI = fmt.Sprintf("http://%s/score", fqdn)
		status.SwaggerURI = fmt.Sprintf("http://%s/swagger.json", fqdn)
	}
	return status, nil
}

// deleteACIService removes the container group (idempotent).
func (d *driver) deleteACIService(ctx context.Context, ws *model.Workspace, svc *model.Service) error {
	groupsClient, err := armcontainerinstance.NewContainerGroupsClient(ws.SubscriptionID, d.TokenCredential, nil)
	if err != nil {
		return fmt.Errorf("new container groups client: %w", err)
	}

	poller, err := groupsClient.BeginDelete(ctx, ws.ResourceGroup, svc.Name, nil)
	if err != nil {
		if isAzureNotFound(err) {
			return nil
		}
		return fmt.Errorf("begin delete container group %s: %w", svc.Name, err)
	}
	if _, err := poller.PollUntilDone(ctx, nil); err != nil {
		return fmt.Errorf("delete container group %s: %w", svc.Name, err)
	}
	return nil
}
