package jamf

// Device is one computer record from the inventory endpoint. Only the
// sections the advisor consumes are modeled; every field is optional in
// the API response and keeps its zero value when absent, which downstream
// aggregation treats as "unknown" or "disabled" rather than an error.
type Device struct {
	ID              string          `json:"id"`
	General         General         `json:"general"`
	OperatingSystem OperatingSystem `json:"operatingSystem"`
	Security        Security        `json:"security"`
}

// General holds the GENERAL inventory section fields we care about.
type General struct {
	Name string `json:"name"`
}

// OperatingSystem holds the OPERATING_SYSTEM inventory section fields.
type OperatingSystem struct {
	Version string `json:"version"`
}

// Security holds the SECURITY inventory section fields.
type Security struct {
	FileVaultEnabled bool `json:"fileVaultEnabled"`
	FirewallEnabled  bool `json:"firewallEnabled"`
}

// inventoryPage is the envelope returned by /api/v1/computers-inventory.
type inventoryPage struct {
	TotalCount int      `json:"totalCount"`
	Results    []Device `json:"results"`
}

// tokenResponse is the envelope returned by /api/v1/auth/token.
type tokenResponse struct {
	Token   string `json:"token"`
	Expires string `json:"expires"`
}
