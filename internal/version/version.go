package version

// Version is the semantic version of the dssadmin CLI and SDK.
const Version = "0.1.0"
