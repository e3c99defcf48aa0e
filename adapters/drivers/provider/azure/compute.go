package azure

import (
	"context"
	"fmt"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/machinelearning/armmachinelearning/v3"
	"github.com/mlopsworks/azmlops/domain/model"
	"github.com/mlopsworks/azmlops/internal/logging"
)

// nodeIdleTimeBeforeScaleDown is the ISO8601 idle period before AmlCompute
// scales a node down.
const nodeIdleTimeBeforeScaleDown = "PT120S"

// ComputeStatus reports whether the compute target exists in the workspace.
func (d *driver) ComputeStatus(ctx context.Context, ws *model.Workspace, ct *model.ComputeTarget) (*model.ComputeStatus, error) {
	computeClient, err := armmachinelearning.NewComputeClient(ws.SubscriptionID, d.TokenCredential, nil)
	if err != nil {
		return nil, fmt.Errorf("new compute client: %w", err)
	}

	res, err := computeClient.Get(ctx, ws.ResourceGroup, ws.Name, ct.Name, nil)
	if err != nil {
		if isAzureNotFound(err) {
			return &model.ComputeStatus{Provisioned: false}, nil
		}
		return nil, fmt.Errorf("get compute %s: %w", ct.Name, err)
	}

	state := ""
	if res.Properties != nil {
		if base := res.Properties.GetCompute(); base != nil && base.ProvisioningState != nil {
			state = string(*base.ProvisioningState)
		}
	}
	return &model.ComputeStatus{Provisioned: true, State: state}, nil
}

// ComputeProvision creates the compute target. An existing target with the
// same name is reused as-is.
func (d *driver) ComputeProvision(ctx context.Context, ws *model.Workspace, ct *model.ComputeTarget, opts ...model.ComputeProvisionOption) (err error) {
	ctx, cleanup := d.withMethodLogger(ctx, "ComputeProvision")
	defer func() { cleanup(err) }()

	ctx, cancel := context.WithTimeout(ctx, 45*time.Minute)
	defer cancel()

	logger := logging.FromContext(ctx).With("compute", ct.Name, "kind", string(ct.Kind))

	computeClient, err := armmachinelearning.NewComputeClient(ws.SubscriptionID, d.TokenCredential, nil)
	if err != nil {
		return fmt.Errorf("new compute client: %w", err)
	}

	existing, err := computeClient.Get(ctx, ws.ResourceGroup, ws.Name, ct.Name, nil)
	if err == nil {
		if existing.Properties != nil {
			if base := existing.Properties.GetCompute(); base != nil && base.ProvisioningState != nil {
				ct.State = string(*base.ProvisioningState)
			}
		}
		logger.Info(ctx, "compute target reused", "state", ct.State)
		return nil
	}
	if !isAzureNotFound(err) {
		return fmt.Errorf("get compute %s: %w", ct.Name, err)
	}

	var properties armmachinelearning.ComputeClassification
	switch ct.Kind {
	case model.ComputeKindCPU, model.ComputeKindGPU:
		if err = d.validateVMSize(ctx, ws, ct.VMSize); err != nil {
			return err
		}
		properties = &armmachinelearning.AmlCompute{
			ComputeLocation: to.Ptr(ws.Location),
			Properties: &armmachinelearning.AmlComputeProperties{
				VMSize:     to.Ptr(ct.VMSize),
				VMPriority: to.Ptr(armmachinelearning.VMPriorityDedicated),
				OSType:     to.Ptr(armmachinelearning.OsTypeLinux),
				ScaleSettings: &armmachinelearning.ScaleSettings{
					MinNodeCount:                to.Ptr(ct.MinNodes),
					MaxNodeCount:                to.Ptr(ct.MaxNodes),
					NodeIdleTimeBeforeScaleDown: to.Ptr(nodeIdleTimeBeforeScaleDown),
				},
			},
		}
	case model.ComputeKindAKS:
		clusterID, aksErr := d.ensureAKSCluster(ctx, ws, ct)
		if aksErr != nil {
			return aksErr
		}
		properties = &armmachinelearning.AKS{
			ResourceID: to.Ptr(clusterID),
		}
	default:
		return fmt.Errorf("%w: unsupported compute kind %q", model.ErrComputeTargetInvalid, ct.Kind)
	}

	logger.Info(ctx, "creating compute target", "vm_size", ct.VMSize)
	poller, err := computeClient.BeginCreateOrUpdate(ctx, ws.ResourceGroup, ws.Name, ct.Name, armmachinelearning.ComputeResource{
		Properties: properties,
	}, nil)
	if err != nil {
		return fmt.Errorf("begin create compute %s: %w", ct.Name, err)
	}
	res, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return fmt.Errorf("create compute %s: %w", ct.Name, err)
	}
	if res.Properties != nil {
		if base := res.Properties.GetCompute(); base != nil && base.ProvisioningState != nil {
			ct.State = string(*base.ProvisioningState)
		}
	}
	logger.Info(ctx, "compute target created", "state", ct.State)
	return nil
}

// ComputeDeprovision deletes the compute target. Managed pools are deleted;
// attached AKS clusters are detached unless the force option is set, in
// which case the underlying cluster is deleted too.
func (d *driver) ComputeDeprovision(ctx context.Context, ws *model.Workspace, ct *model.ComputeTarget, opts ...model.ComputeDeprovisionOption) (err error) {
	ctx, cleanup := d.withMethodLogger(ctx, "ComputeDeprovision")
	defer func() { cleanup(err) }()

	ctx, cancel := context.WithTimeout(ctx, 45*time.Minute)
	defer cancel()

	options := &model.ComputeDeprovisionOptions{}
	for _, o := range opts {
		o(options)
	}

	computeClient, err := armmachinelearning.NewComputeClient(ws.SubscriptionID, d.TokenCredential, nil)
	if err != nil {
		return fmt.Errorf("new compute client: %w", err)
	}

	action := armmachinelearning.UnderlyingResourceActionDelete
	if ct.Kind == model.ComputeKindAKS && !options.Force {
		action = armmachinelearning.UnderlyingResourceActionDetach
	}

	poller, err := computeClient.BeginDelete(ctx, ws.ResourceGroup, ws.Name, ct.Name, action, nil)
	if err != nil {
		if isAzureNotFound(err) {
			return nil
		}
		return fmt.Errorf("begin delete compute %s: %w", ct.Name, err)
	}
	if _, err = poller.PollUntilDone(ctx, nil); err != nil {
		return fmt.Errorf("delete compute %s: %w", ct.Name, err)
	}

	if ct.Kind == model.ComputeKindAKS && options.Force {
		return d.deleteAKSCluster(ctx, ws, ct)
	}
	return nil
}
