package domain

import "time"

type LicenseFields struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	VehicleType string `json:"vehicleType"`
	VehicleMake string `json:"vehicleMake"`
	Address     string `json:"address"`
}

type LicenseRecord struct {
	ID            int64
	LicenseNumber string
	FirstName     string
	LastName      string
	FullName      string
	VehicleType   string
	VehicleMake   string
	Address       string
	Status        string
	IssueDate     time.Time
	ExpiryDate    time.Time
}

// Empty reports whether the record carries no identifying data at all.
func (r LicenseRecord) Empty() bool {
	return r.ID == 0 &&
		r.LicenseNumber == "" &&
		r.FirstName == "" &&
		r.LastName == "" &&
		r.FullName == "" &&
		r.VehicleType == "" &&
		r.VehicleMake == "" &&
		r.Address == ""
}

func (r LicenseRecord) HolderName() string {
	if r.FirstName != "" && r.LastName != "" {
		return r.FirstName + " " + r.LastName
	}
	if r.FullName != "" {
		return r.FullName
	}
	return "Not specified"
}

type LicenseState int

const (
	LicenseUnknown LicenseState = iota
	LicenseAbsent
	LicensePresent
)

func (s LicenseState) String() string {
	switch s {
	case LicenseAbsent:
		return "absent"
	case LicensePresent:
		return "present"
	default:
		return "unknown"
	}
}

// LicenseStatus is the tri-state answer to "does this session own a license".
// Degraded marks an Absent that came from a failed lookup rather than from the server.
type LicenseStatus struct {
	State    LicenseState
	Record   *LicenseRecord
	Degraded bool
}

func UnknownLicense() LicenseStatus {
	return LicenseStatus{State: LicenseUnknown}
}

func AbsentLicense() LicenseStatus {
	return LicenseStatus{State: LicenseAbsent}
}

func DegradedLicense() LicenseStatus {
	return LicenseStatus{State: LicenseAbsent, Degraded: true}
}

func PresentLicense(record LicenseRecord) LicenseStatus {
	return LicenseStatus{State: LicensePresent, Record: &record}
}

func (s LicenseStatus) Present() bool {
	return s.State == LicensePresent
}

var VehicleTypes = []string{"Car", "Motorcycle", "Truck", "Bus"}
