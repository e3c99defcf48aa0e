package azure

import (
	"context"
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/compute/armcompute/v7"
	"github.com/mlopsworks/azmlops/domain/model"
	"github.com/mlopsworks/azmlops/internal/logging"
)

// validateVMSize checks that the requested VM size is offered and not
// restricted in the workspace location before an AmlCompute pool is created.
func (d *driver) validateVMSize(ctx context.Context, ws *model.Workspace, vmSize string) error {
	if vmSize == "" {
		return fmt.Errorf("%w: vm size is empty", model.ErrComputeTargetInvalid)
	}

	logger := logging.FromContext(ctx).With("vm_size", vmSize, "location", ws.Location)

	skusClient, err := armcompute.NewResourceSKUsClient(ws.SubscriptionID, d.TokenCredential, nil)
	if err != nil {
		return fmt.Errorf("new resource SKUs client: %w", err)
	}

	filter := fmt.Sprintf("location eq '%s'", ws.Location)
	pager := skusClient.NewListPager(&armcompute.ResourceSKUsClientListOptions{Filter: to.Ptr(filter)})

	var skus []*armcompute.ResourceSKU
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("list resource SKUs: %w", err)
		}
		skus = append(skus, page.Value...)
	}

	sku, found := findVMSKU(skus, vmSize, ws.Location)
	if !found {
		return fmt.Errorf("%w: vm size %s is not offered in %s", model.ErrComputeTargetInvalid, vmSize, ws.Location)
	}
	if restricted(sku, ws.Location) {
		return fmt.Errorf("%w: vm size %s is restricted in %s", model.ErrComputeTargetInvalid, vmSize, ws.Location)
	}

	logger.Debug(ctx, "vm size validated")
	return nil
}

// findVMSKU returns the virtualMachines SKU matching name in location.
func findVMSKU(skus []*armcompute.ResourceSKU, name, location string) (*armcompute.ResourceSKU, bool) {
	for _, sku := range skus {
		if sku == nil || sku.Name == nil || sku.ResourceType == nil {
			continue
		}
		if !strings.EqualFold(*sku.ResourceType, "virtualMachines") {
			continue
		}
		if !strings.EqualFold(*sku.Name, name) {
			continue
		}
		for _, loc := range sku.Locations {
			if loc != nil && strings.EqualFold(*loc, location) {
				return sku, true
			}
		}
	}
	return nil, false
}

// restricted reports whether the SKU carries a location restriction covering
// the given location (e.g. NotAvailableForSubscription).
func restricted(sku *armcompute.ResourceSKU, location string) bool {
	for _, r := range sku.Restrictions {
		if r == nil {
			continue
		}
		if r.Type != nil && *r.Type == armcompute.ResourceSKURestrictionsTypeLocation {
			if r.RestrictionInfo == nil {
				return true
			}
			for _, loc := range r.RestrictionInfo.Locations {
				if loc != nil && strings.EqualFold(*loc, location) {
					return true
				}
			}
		}
	}
	return false
}
