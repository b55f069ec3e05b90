package hid

// The vendor variant exposes three generic 64-byte reports instead of the
// typed gamepad report: input (ID 1), output (ID 2) and feature (ID 3).
// User space fills the 63-byte payload out-of-band through a custom
// control code instead of the typed update path.

// VendorReportSize is the total size of each vendor report, report ID
// byte included.
const VendorReportSize = 64

// Vendor report IDs.
const (
	VendorReportInput   = 1
	VendorReportOutput  = 2
	VendorReportFeature = 3
)

// VendorAttributes are the identifiers of the vendor-report variant.
var VendorAttributes = Attributes{
	VendorID:      0x1234,
	ProductID:     0xABCD,
	VersionNumber: 0x0001,
}

// VendorReportDescriptor declares the three 64-byte vendor-defined reports.
var VendorReportDescriptor = []byte{
	0x05, 0x01, // Usage Page (Generic Desktop)
	0x09, 0x05, // Usage (Game Pad)
	0xA1, 0x01, // Collection (Application)

	// Report ID 1 - Input
	0x85, 0x01, //   Report ID (1)
	0x15, 0x00, //   Logical Minimum (0)
	0x26, 0xFF, 0x00, // Logical Maximum (255)
	0x75, 0x08, //   Report Size (8)
	0x95, 0x40, //   Report Count (64)
	0x09, 0x01, //   Usage (Pointer)
	0x81, 0x02, //   Input (Data,Var,Abs)

	// Report ID 2 - Output
	0x85, 0x02, //   Report ID (2)
	0x75, 0x08, //   Report Size (8)
	0x95, 0x40, //   Report Count (64)
	0x09, 0x02, //   Usage (2)
	0x91, 0x02, //   Output (Data,Var,Abs)

	// Report ID 3 - Feature
	0x85, 0x03, //   Report ID (3)
	0x75, 0x08, //   Report Size (8)
	0x95, 0x40, //   Report Count (64)
	0x09, 0x03, //   Usage (3)
	0xB1, 0x02, //   Feature (Data,Var,Abs)

	0xC0, // End Collection
}
