package azure

import (
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/compute/armcompute/v7"
)

func vmSKU(name string, locations []string, restrictedLocs []string) *armcompute.ResourceSKU {
	sku := &armcompute.ResourceSKU{
		Name:         to.Ptr(name),
		ResourceType: to.Ptr("virtualMachines"),
	}
	for _, l := range locations {
		sku.Locations = append(sku.Locations, to.Ptr(l))
	}
	if len(restrictedLocs) > 0 {
		info := &armcompute.ResourceSKURestrictionInfo{}
		for _, l := range restrictedLocs {
			info.Locations = append(info.Locations, to.Ptr(l))
		}
		sku.Restrictions = []*armcompute.ResourceSKURestrictions{
			{
				Type:            to.Ptr(armcompute.ResourceSKURestrictionsTypeLocation),
				RestrictionInfo: info,
			},
		}
	}
	return sku
}

func TestFindVMSKU(t *testing.T) {
	skus := []*armcompute.ResourceSKU{
		vmSKU("Standard_D2_v2", []string{"eastus", "westus"}, nil),
		vmSKU("Standard_NC6", []string{"eastus"}, nil),
		{Name: to.Ptr("Standard_D2_v2"), ResourceType: to.Ptr("disks")},
	}

	tests := []struct {
		name     string
		size     string
		location string
		want     bool
	}{
		{"found", "Standard_D2_v2", "eastus", true},
		{"found case insensitive", "standard_d2_v2", "EastUS", true},
		{"wrong location", "Standard_NC6", "westus", false},
		{"unknown size", "Standard_X1", "eastus", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, found := findVMSKU(skus, tt.size, tt.location)
			if found != tt.want {
				t.Errorf("findVMSKU(%q, %q) = %v, want %v", tt.size, tt.location, found, tt.want)
			}
		})
	}
}

func TestRestricted(t *testing.T) {
	open := vmSKU("Standard_D2_v2", []string{"eastus"}, nil)
	if restricted(open, "eastus") {
		t.Errorf("unrestricted SKU reported restricted")
	}

	blocked := vmSKU("Standard_NC6", []string{"eastus", "westus"}, []string{"eastus"})
	if !restricted(blocked, "eastus") {
		t.Errorf("restricted SKU not reported in restricted location")
	}
	if restricted(blocked, "westus") {
		t.Errorf("restricted SKU reported in unrestricted location")
	}
}
