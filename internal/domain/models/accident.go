// internal/domain/models/accident.go
package models

// Column names used by the accident CSV files. The files are maintained
// outside this application and are only ever read.
const (
	ColAccidentLocation = "Accident_Location"
	ColRoadType         = "Road_Type"
	ColAccidentSpot     = "Accident_Spot"
	ColMainCause        = "Main_Cause"
	ColSeverity         = "Severity"

	ColDistrictName   = "DISTRICTNAME"
	ColTotalAccidents = "TotalAccidents"
)

// ClusterColumns are the nominal columns that are label-encoded and fed
// to k-means, in encoding order.
var ClusterColumns = []string{
	ColAccidentSpot,
	ColAccidentLocation,
	ColMainCause,
	ColSeverity,
	ColRoadType,
}
