package repository

import "container_loading/internal/app/ds"

// StandardContainerTypes is the default ISO container catalog. Dimensions are
// internal, in cm; weights in kg; capacity in m3.
func StandardContainerTypes() []ds.ContainerType {
	return []ds.ContainerType{
		{Code: "20GP", Name: "20' General Purpose", InternalLength: 590, InternalWidth: 235, InternalHeight: 239, MaxPayload: 28200, TareWeight: 2200, CubicCapacity: 33.2, RentalCost: 1500},
		{Code: "40GP", Name: "40' General Purpose", InternalLength: 1203, InternalWidth: 235, InternalHeight: 239, MaxPayload: 26700, TareWeight: 3750, CubicCapacity: 67.7, RentalCost: 2800},
		{Code: "40HC", Name: "40' High Cube", InternalLength: 1203, InternalWidth: 235, InternalHeight: 269, MaxPayload: 26500, TareWeight: 3900, CubicCapacity: 76.4, RentalCost: 3000},
		{Code: "45HC", Name: "45' High Cube", InternalLength: 1355, InternalWidth: 235, InternalHeight: 269, MaxPayload: 27700, TareWeight: 4800, CubicCapacity: 86.0, RentalCost: 3600},
		{Code: "20RF", Name: "20' Reefer", InternalLength: 544, InternalWidth: 229, InternalHeight: 226, MaxPayload: 27400, TareWeight: 3080, CubicCapacity: 28.3, RentalCost: 2600},
	}
}

// StandardShippingRoutes is the default route catalog. Ports are UN/LOCODEs.
func StandardShippingRoutes() []ds.ShippingRoute {
	return []ds.ShippingRoute{
		{OriginPort: "CNSHA", DestinationPort: "NLRTM", TransitDays: 32, DistanceKm: 19500, BaseHandlingCost: 350, DocumentationFee: 75, InsuranceRate: 0.005},
		{OriginPort: "CNSHA", DestinationPort: "USLAX", TransitDays: 16, DistanceKm: 10500, BaseHandlingCost: 300, DocumentationFee: 65, InsuranceRate: 0.004},
		{OriginPort: "SGSIN", DestinationPort: "DEHAM", TransitDays: 28, DistanceKm: 15800, BaseHandlingCost: 380, DocumentationFee: 80, InsuranceRate: 0.0045},
		{OriginPort: "VNSGN", DestinationPort: "JPTYO", TransitDays: 9, DistanceKm: 4300, BaseHandlingCost: 220, DocumentationFee: 50, InsuranceRate: 0.003},
		{OriginPort: "USNYC", DestinationPort: "GBFXT", TransitDays: 10, DistanceKm: 5600, BaseHandlingCost: 310, DocumentationFee: 70, InsuranceRate: 0.0035},
	}
}
